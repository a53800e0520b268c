package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the calendar",
	}
	cmd.AddCommand(newExportICSCmd(app))
	return cmd
}

func newExportICSCmd(app *App) *cobra.Command {
	var from, to, out string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Write events in a date range as an iCalendar file",
		Long: `Write events in a date range as an iCalendar (RFC 5545) file.

Recurring events are written once with an RRULE and EXDATEs, so any
series with an occurrence in the range is included whole.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			start, err := parseDay(from, now)
			if err != nil {
				return err
			}
			end := start.AddDate(0, 0, 30)
			if to != "" {
				if end, err = parseDay(to, now); err != nil {
					return err
				}
			}
			if end.Before(start) {
				return fmt.Errorf("--to %s is before --from %s", end.Format(dateLayout), start.Format(dateLayout))
			}

			if out == "" || out == "-" {
				_, err := app.Export.ExportICS(cmdContext(cmd), start, end, cmd.OutOrStdout())
				return err
			}

			var buf bytes.Buffer
			n, err := app.Export.ExportICS(cmdContext(cmd), start, end, &buf)
			if err != nil {
				return err
			}
			if err := writeFileAtomic(out, buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d events to %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "today", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, inclusive (default 30 days after --from)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

// writeFileAtomic replaces path via a temp file in the same directory so a
// calendar app watching the file never reads a partial export.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".dayweave-*.ics")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing export: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
