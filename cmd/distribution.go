package cmd

import (
	"github.com/spf13/cobra"

	"racelens/report"
)

func NewDistributionCmd() *cobra.Command {
	var lap int
	cmd := &cobra.Command{
		Use:   "distribution file.csv",
		Short: "print the speed distribution of a lap or the whole session",
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
			d, err := s.SpeedDistribution(lap)
			if err != nil {
				return err
			}
			report.Distribution(cmd.OutOrStdout(), d, u)
			return nil
		},
	}
	cmd.Flags().IntVar(&lap, "lap", 0, "lap number (0 for the whole session)")
	return cmd
}
