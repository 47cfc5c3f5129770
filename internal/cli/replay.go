package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/momentum/internal/replay"
	"github.com/okian/momentum/pkg/logger"
)

func newReplayCommand() *cobra.Command {
	cfg := replay.DefaultConfig()
	var path string
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Submit a moments CSV to a running service and verify the leaderboards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			moments, err := replay.LoadMomentsFile(path)
			if err != nil {
				return err
			}
			report, err := replay.Run(cmd.Context(), cfg, moments, logger.Named("replay"))
			if report != nil {
				if werr := writeJSON(cmd.OutOrStdout(), report.Stats); werr != nil {
					return werr
				}
			}
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&path, "file", "", "CSV with game_date, batter_name, pitcher_name, events")
	f.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "base URL of the service")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent workers")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout")
	f.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "result poll interval")
	f.DurationVar(&cfg.WaitTimeout, "wait", cfg.WaitTimeout, "how long to wait for results")
	f.IntVar(&cfg.TopN, "top", cfg.TopN, "leaderboard entries fetched per role")
	f.BoolVar(&cfg.Verbose, "verbose", false, "log every moment")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
