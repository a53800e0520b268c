package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dayweave/internal/cli/formatter"
	"github.com/alexanderramin/dayweave/internal/domain"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change scheduling preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSettings(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show settings",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showSettings(cmd, app)
			},
		},
		newSettingsSetCmd(app),
	)

	return cmd
}

func showSettings(cmd *cobra.Command, app *App) error {
	s, err := app.Settings.Get(cmdContext(cmd))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(s))
	return nil
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var (
		chronotype string
		workMin    int
		breakMin   int
		wake       string
		sleep      string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings; unset flags keep their current value",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			s, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			changed := cmd.Flags().Changed
			if changed("chronotype") {
				s.Chronotype = domain.Chronotype(strings.ToLower(chronotype))
			}
			if changed("work") {
				s.WorkSessionMin = workMin
			}
			if changed("break") {
				s.BreakMin = breakMin
			}
			if changed("wake") {
				if s.WakeTime, err = domain.ParseWallClock(wake); err != nil {
					return err
				}
			}
			if changed("sleep") {
				if s.SleepTime, err = domain.ParseWallClock(sleep); err != nil {
					return err
				}
			}

			if err := app.Settings.Update(ctx, s); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSettings(s))
			return nil
		},
	}

	cmd.Flags().StringVar(&chronotype, "chronotype", "", "morning or evening")
	cmd.Flags().IntVar(&workMin, "work", 0, "work session length in minutes")
	cmd.Flags().IntVar(&breakMin, "break", 0, "break length in minutes")
	cmd.Flags().StringVar(&wake, "wake", "", "wake time, HH:MM")
	cmd.Flags().StringVar(&sleep, "sleep", "", "sleep time, HH:MM")
	return cmd
}
