package cli

import (
	"github.com/spf13/cobra"

	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/scoring"
	"github.com/okian/momentum/internal/domain/snapshot"
)

func newCompareCommand(root *rootOptions) *cobra.Command {
	var roleName, name, beforePath, afterPath string
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Score two local Statcast CSV exports as before and after a moment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := model.ParseRole(roleName)
			if err != nil {
				return err
			}
			cfg, err := root.load(cmd.Context())
			if err != nil {
				return err
			}
			weights, err := cfg.Weights(role)
			if err != nil {
				return err
			}

			snaps := make([]*snapshot.Snapshot, 0, 2)
			for _, path := range []string{beforePath, afterPath} {
				rs, err := readRecords(path)
				if err != nil {
					return err
				}
				s, err := snapshot.New(name, 0, rs, model.Period{}, role)
				if err != nil {
					return err
				}
				snaps = append(snaps, s)
			}
			return writeJSON(cmd.OutOrStdout(), scoring.Score(snaps[0], snaps[1], weights))
		},
	}
	f := cmd.Flags()
	f.StringVar(&roleName, "role", "", "batter or pitcher")
	f.StringVar(&name, "name", "", "player name for the report")
	f.StringVar(&beforePath, "before", "", "CSV of the pre-moment window")
	f.StringVar(&afterPath, "after", "", "CSV of the post-moment window")
	for _, n := range []string{"role", "before", "after"} {
		_ = cmd.MarkFlagRequired(n)
	}
	return cmd
}
