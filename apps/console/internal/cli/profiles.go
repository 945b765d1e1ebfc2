package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lvdund/ueprofiles/apps/console/internal/csv"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/apps/console/internal/ui/profile"
	"github.com/lvdund/ueprofiles/apps/console/internal/validation"
)

func newListCmd(e *env) *cobra.Command {
	var search string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List UE profiles grouped by creation date",
		Long: `Lists UE profiles grouped by creation date.

Examples:
  ueconsole list
  ueconsole list --search 20893
  ueconsole list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.load(cmd.Context(), search); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				return writeJSON(out, e.rt.Catalog.Filtered())
			}
			writeGroups(out, e)
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive SUPI substring")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the filtered records as JSON")
	return cmd
}

func newGenerateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "generate N",
		Short: "Generate N UE profiles on the service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := validation.ParseGenerateCount(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			sess, err := e.session(ctx)
			if err != nil {
				return err
			}
			generated, err := e.rt.Adapter.Generate(ctx, sess, n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d profiles (%d total)\n", generated, len(e.rt.Catalog.Raw()))
			return nil
		},
	}
}

func newDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete SUPI",
		Short: "Delete a UE profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := e.session(ctx)
			if err != nil {
				return err
			}
			if err := e.rt.Adapter.Delete(ctx, sess, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newExportCmd(e *env) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export UE profiles to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.load(cmd.Context(), search); err != nil {
				return err
			}
			docs := e.rt.Catalog.Filtered()
			if err := csv.WriteProfileFile(args[0], docs); err != nil {
				return err
			}
			e.rt.Audit.LogExport(len(docs), args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d profiles to %s\n", len(docs), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive SUPI substring")
	return cmd
}

// load は一覧を再取得し、検索語を適用する。
func (e *env) load(ctx context.Context, search string) error {
	sess, err := e.session(ctx)
	if err != nil {
		return err
	}
	if err := e.rt.Adapter.Reload(ctx, sess); err != nil {
		return err
	}
	e.rt.Catalog.SetSearchTerm(search)
	if search != "" {
		e.rt.Audit.LogSearch(search, len(e.rt.Catalog.Filtered()))
	}
	return nil
}

func writeJSON(w io.Writer, docs []record.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

func writeGroups(w io.Writer, e *env) {
	groups := e.rt.Catalog.Groups()
	if len(groups) == 0 {
		fmt.Fprintln(w, "No UE profiles found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(profile.Columns, "\t"))
	for _, row := range profile.BuildRows(groups) {
		if row.IsHeader() {
			fmt.Fprintf(tw, "%s\n", profile.HeaderText(row))
			continue
		}
		fmt.Fprintln(tw, strings.Join(profile.Cells(row.Record), "\t"))
	}
	tw.Flush()
}
