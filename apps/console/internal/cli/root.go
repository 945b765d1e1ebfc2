// Package cli は管理コンソールのコマンドラインインターフェースを提供する。
// サブコマンドなしで起動した場合はTUIを実行する。
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lvdund/ueprofiles/apps/console/internal/api"
	"github.com/lvdund/ueprofiles/apps/console/internal/config"
	"github.com/lvdund/ueprofiles/apps/console/internal/console"
	"github.com/lvdund/ueprofiles/apps/console/internal/store"
	"github.com/lvdund/ueprofiles/apps/console/internal/tui"
	"github.com/lvdund/ueprofiles/apps/console/internal/ui"
)

// ErrNotLoggedIn は保存済みの資格情報がない場合のエラー
var ErrNotLoggedIn = errors.New("not logged in, run 'ueconsole login' first")

// env はコマンド実行中に共有する状態を保持する。
type env struct {
	rt *console.Runtime
}

// Execute はコマンドを実行し、終了コードを返す。
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	e := &env{}
	defer e.close()

	root := newRootCmd(e)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", ui.ErrorMessage(err))
		return 1
	}
	return 0
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "ueconsole",
		Short: "UE profile admin console",
		Long: `ueconsole manages UE subscriber profiles stored in the UE profile service.

Run without a sub-command to start the terminal UI.

Configuration is read from the environment:
  PROFILE_API_URL   UE profile service base URL
  VALKEY_ADDR       credential store (empty keeps the login in memory)
  CONSOLE_PROFILE   credential slot name`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			connectErr := e.rt.ConnectCredentials(cmd.Context())
			return tui.Run(e.rt, connectErr)
		},
	}

	root.AddCommand(
		newLoginCmd(e),
		newLogoutCmd(e),
		newRegisterCmd(e),
		newListCmd(e),
		newGenerateCmd(e),
		newDeleteCmd(e),
		newExportCmd(e),
	)
	return root
}

func (e *env) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	rt, err := console.New(cfg)
	if err != nil {
		return err
	}
	e.rt = rt
	return nil
}

// connect はサブコマンド用に資格情報の保存先へ接続する。
func (e *env) connect(ctx context.Context) error {
	return e.rt.ConnectCredentials(ctx)
}

// session は保存済みの資格情報を返す。
func (e *env) session(ctx context.Context) (*api.Session, error) {
	if err := e.connect(ctx); err != nil {
		return nil, err
	}
	sess, err := e.rt.Sessions.Resume(ctx)
	if errors.Is(err, store.ErrCredentialNotFound) {
		return nil, ErrNotLoggedIn
	}
	return sess, err
}

func (e *env) close() {
	if e.rt != nil {
		_ = e.rt.Close()
	}
}
