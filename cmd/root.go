package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"racelens/config"
	"racelens/log"
	"racelens/track"
)

const envPrefix = "RACELENS"

var cfgFile string

// NewRootCmd builds the racelens command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "racelens",
		Short:         "Lap segmentation and metrics for racing telemetry CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig(cmd.Root())
			logger := setupLogger(cmd)
			log.ResetDefault(logger)
			cmd.SetContext(log.AddToContext(cmd.Context(), logger))
			return nil
		},
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.racelens.yml)")
	pf.StringVar(&config.Preset, "preset", track.PresetStrict,
		"lap detection preset (strict, loose)")
	pf.Float64Var(&config.StartRadius, "start-radius", config.Unset,
		"override start radius of the preset")
	pf.Float64Var(&config.FarRadius, "far-radius", config.Unset,
		"override far radius of the preset")
	pf.Float64Var(&config.MinLapGap, "min-lap-gap", config.Unset,
		"override minimum seconds between lap boundaries (0 disables)")
	pf.Float64Var(&config.BrakeOnset, "brake-onset",
		track.DefaultBrakeThresholds().Onset,
		"brake input above this value starts a braking point")
	pf.StringVar(&config.SpeedUnit, "speed-unit", "kmh", "speed unit (kmh, mph)")
	pf.StringVar(&config.TempUnit, "temp-unit", "celsius", "temperature unit (celsius, fahrenheit)")
	pf.StringVar(&config.PressureUnit, "pressure-unit", "bar", "pressure unit (bar, psi)")
	pf.StringVar(&config.LogLevel, "log-level", "info",
		"controls the log level (debug, info, warn, error, fatal)")
	pf.StringVar(&config.LogFormat, "log-format", "text",
		"controls the log output format (text, json)")

	rootCmd.AddCommand(NewLapsCmd())
	rootCmd.AddCommand(NewSectorsCmd())
	rootCmd.AddCommand(NewDistributionCmd())
	rootCmd.AddCommand(NewOutlineCmd())
	rootCmd.AddCommand(NewExportCmd())
	return rootCmd
}

// Execute is called by main.main().
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		log.Error("command failed", log.ErrorField(err))
	}
	_ = log.Default().Sync()
	if err != nil {
		os.Exit(1)
	}
}

func setupLogger(cmd *cobra.Command) *log.Logger {
	w := cmd.ErrOrStderr()
	switch config.LogFormat {
	case "json":
		return log.New(w, parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true))
	default:
		return log.DevLogger(w, parseLogLevel(config.LogLevel, log.InfoLevel))
	}
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// initConfig reads in config file and ENV variables if set.
func initConfig(rootCmd *cobra.Command) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".racelens")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	}

	bindFlags(rootCmd, v)
	for _, c := range rootCmd.Commands() {
		bindFlags(c, v)
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// env vars can't have dashes, --start-radius maps to RACELENS_START_RADIUS
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not set flag value for %s: %v", f.Name, err)
			}
		}
	})
}
