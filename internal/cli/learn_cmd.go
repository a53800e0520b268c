package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/dayweave/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newLearnCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Import and inspect learned concentration and durations",
	}

	cmd.AddCommand(
		newLearnImportCmd(app),
		newLearnShowCmd(app),
	)

	return cmd
}

func newLearnImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace learning data from a YAML file (- for stdin)",
		Example: `  dayweave learn import analytics.yaml

  # analytics.yaml
  concentration:
    - {hour: 9, score: 0.9}
  durations:
    - {task_name: Reading, average_duration: 42, sample_size: 5, accuracy: 0.8}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening learning file: %w", err)
				}
				defer f.Close()
				r = f
			}

			res, err := app.Learning.Import(cmdContext(cmd), r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d concentration scores and %d durations\n",
				res.ConcentrationCount, res.DurationCount)
			return nil
		},
	}
}

func newLearnShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show stored learning data",
		RunE: func(cmd *cobra.Command, args []string) error {
			signals, err := app.Learning.Signals(cmdContext(cmd))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLearning(signals))
			return nil
		},
	}
}
