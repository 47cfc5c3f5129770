package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/momentum/internal/adapters/statcast"
	"github.com/okian/momentum/internal/domain/model"
	"github.com/okian/momentum/internal/domain/snapshot"
	"github.com/okian/momentum/internal/domain/stats"
)

type aggregateOutput struct {
	Records int           `json:"records"`
	Views   stats.Views   `json:"views"`
	Flat    snapshot.Flat `json:"flat"`
}

func newAggregateCommand() *cobra.Command {
	var roleName, path string
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Print the derived views for a local Statcast CSV export",
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, err := model.ParseRole(roleName)
			if err != nil {
				return err
			}
			rs, err := readRecords(path)
			if err != nil {
				return err
			}
			s, err := snapshot.New(path, 0, rs, model.Period{}, role)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), aggregateOutput{
				Records: s.RecordCount(),
				Views:   s.Views(),
				Flat:    s.Flatten(),
			})
		},
	}
	cmd.Flags().StringVar(&roleName, "role", "", "batter or pitcher")
	cmd.Flags().StringVar(&path, "csv", "", "Statcast search CSV file")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("csv")
	return cmd
}

func readRecords(path string) (model.RecordSet, error) {
	f, err := os.Open(path) //nolint:gosec // operator supplied path
	if err != nil {
		return model.RecordSet{}, err
	}
	defer f.Close()
	rs, err := statcast.Decode(f)
	if err != nil {
		return model.RecordSet{}, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}
