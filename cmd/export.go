package cmd

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"racelens/config"
	"racelens/export"
	"racelens/log"
)

func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export file.csv",
		Short: "export samples as CSV or JSON in the configured units",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ExportFormat != export.FormatCSV && config.ExportFormat != export.FormatJSON {
				return errors.Errorf("unsupported export format: %s", config.ExportFormat)
			}
			u, err := unitSettings()
			if err != nil {
				return err
			}
			s, err := loadSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			opts := export.Options{
				Units:           u,
				IncludeMetadata: config.IncludeMetadata,
				Precision:       config.Precision,
			}

			var w io.Writer = cmd.OutOrStdout()
			target := config.ExportOutput
			if target == "" {
				target = export.Filename(config.ExportFormat, time.Now())
			}
			if target != "-" {
				f, err := os.Create(target)
				if err != nil {
					return errors.Wrapf(err, "create %s", target)
				}
				defer f.Close()
				w = f
			}
			if err := export.Write(w, s, config.ExportFormat, opts); err != nil {
				return err
			}
			log.GetFromContext(cmd.Context()).Info("exported",
				log.String("format", config.ExportFormat),
				log.String("output", target),
				log.Int("samples", len(s.RawData)))
			return nil
		},
	}
	cmd.Flags().StringVar(&config.ExportFormat, "format", export.FormatCSV, "export format (csv, json)")
	cmd.Flags().StringVarP(&config.ExportOutput, "output", "o", "",
		"output file, \"-\" for stdout (default: timestamped file name)")
	cmd.Flags().BoolVar(&config.IncludeMetadata, "include-metadata", true, "prepend session metadata")
	cmd.Flags().IntVar(&config.Precision, "precision", -1, "decimal places (-1 keeps full precision)")
	return cmd
}
