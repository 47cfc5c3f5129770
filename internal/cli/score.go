package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/momentum/internal/app"
	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/pkg/logger"
)

func newScoreCommand(root *rootOptions) *cobra.Command {
	var (
		m          model.Moment
		winExp     float64
		daysAfter  int
		daysBefore int
	)
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one moment against Baseball Savant and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := root.load(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("days-after") {
				cfg.DaysAfter = daysAfter
			}
			if cmd.Flags().Changed("days-before") {
				cfg.DaysBefore = daysBefore
			}
			if cmd.Flags().Changed("wpa") {
				m.WinExpDelta = &winExp
			}
			if err := cfg.Validate(ctx); err != nil {
				return err
			}
			if err := m.Validate(); err != nil {
				return err
			}

			comps, err := service.Build(ctx, cfg, logger.Get())
			if err != nil {
				return err
			}
			defer comps.Close()

			b, err := comps.Orchestrator.Calculate(ctx, m)
			if err != nil {
				return fmt.Errorf("score moment: %w", err)
			}
			return writeJSON(cmd.OutOrStdout(), b)
		},
	}
	f := cmd.Flags()
	f.StringVar(&m.GameDate, "date", "", "game date, YYYY-MM-DD")
	f.StringVar(&m.BatterName, "batter", "", "batter name")
	f.StringVar(&m.PitcherName, "pitcher", "", "pitcher name")
	f.StringVar(&m.Events, "event", "", "event of the moment, e.g. home_run")
	f.IntVar(&m.GameYear, "year", 0, "season, when it differs from the date's year")
	f.Float64Var(&winExp, "wpa", 0, "absolute win expectancy change")
	f.IntVar(&daysAfter, "days-after", 0, "post-moment window in days (config default when unset)")
	f.IntVar(&daysBefore, "days-before", 0, "pre-moment window in days; 0 uses the seasonal lookback")
	for _, name := range []string{"date", "batter", "pitcher", "event"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
