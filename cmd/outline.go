package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"racelens/log"
)

func NewOutlineCmd() *cobra.Command {
	var lap int
	cmd := &cobra.Command{
		Use:   "outline file.csv",
		Short: "print the path of a lap as Lap,RelS,X,Y,Sector rows (default: best lap)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if lap == 0 {
				best, _ := s.BestLap()
				lap = best.LapNumber
			}
			o, err := s.Outline(lap)
			if err != nil {
				return err
			}
			minX, minY, maxX, maxY := o.Bounds()
			log.GetFromContext(cmd.Context()).Info("outline",
				log.Int("lap", lap),
				log.Int("points", len(o.Points)),
				log.Bool("closed", o.Closed),
				log.Any("bounds", []float64{minX, minY, maxX, maxY}))

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Lap,RelS,X,Y,Sector")
			for _, p := range o.Points {
				fmt.Fprintf(out, "%d,%.6f,%.6f,%.6f,%d\n", lap, p.S, p.X, p.Y, p.Sector)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&lap, "lap", 0, "lap number (0 for the best lap)")
	return cmd
}
