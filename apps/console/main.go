// UE Profile Console - UEプロファイル管理コンソール
package main

import (
	"os"

	"github.com/lvdund/ueprofiles/apps/console/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
