package cmd

import (
	"github.com/spf13/cobra"

	"racelens/log"
	"racelens/report"
)

func NewSectorsCmd() *cobra.Command {
	var laps []int
	cmd := &cobra.Command{
		Use:   "sectors file.csv",
		Short: "print sector metrics for selected laps (default: best lap)",
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
			result, err := s.CompareSectors(laps)
			if err != nil {
				return err
			}
			if len(result) < len(laps) {
				log.GetFromContext(cmd.Context()).Warn("some laps were not found",
					log.Ints("requested", laps), log.Int("laps", len(s.Laps)))
			}
			report.Sectors(cmd.OutOrStdout(), result, u)
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&laps, "lap", nil, "lap numbers to compare (repeatable)")
	return cmd
}
