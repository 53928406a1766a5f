package cmd

import (
	"github.com/spf13/cobra"

	"racelens/report"
)

func NewLapsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "laps file.csv",
		Short: "detect laps and print lap statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := unitSettings()
			if err != nil {
				return err
			}
			s, err := loadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			best, _ := s.BestLap()
			report.Summary(out, s.Metadata, s.Summary(), u)
			report.Laps(out, s.GetLapStats(), best.LapNumber, u)

			ts, err := s.TireSummary(0)
			if err != nil {
				return err
			}
			if ts.Temp.Any() || ts.Pressure.Any() {
				report.Tires(out, ts, u)
			}
			return nil
		},
	}
	return cmd
}
