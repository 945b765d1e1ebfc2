package csv

import (
	"errors"
	"fmt"
	"os"

	"github.com/lvdund/ueprofiles/apps/console/internal/record"
)

// WriteProfileFile はUEプロファイルをCSVファイルに書き出す。
// 既存のファイルは上書きされる。
func WriteProfileFile(path string, docs []record.Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return WriteProfileCSV(f, docs)
}
