package config

// this holds the resolved configuration values from CLI, config file and env
//
//nolint:lll // readability
var (
	Preset          string  // lap detection preset: strict or loose
	StartRadius     float64 // overrides the preset start radius when >= 0
	FarRadius       float64 // overrides the preset far radius when >= 0
	MinLapGap       float64 // overrides the preset lap cooldown (seconds) when >= 0; 0 disables it
	BrakeOnset      float64 // brake input above this counts as a braking onset
	SpeedUnit       string  // kmh or mph
	TempUnit        string  // celsius or fahrenheit
	PressureUnit    string  // bar or psi
	LogLevel        string  // sets the log level (zap log level values)
	LogFormat       string  // text vs json
	ExportFormat    string  // csv or json
	ExportOutput    string  // output path for export, "-" for stdout
	IncludeMetadata bool    // prepend session metadata to exports
	Precision       int     // decimal places in exports, negative keeps full precision
)

// Unset marks a numeric override that was not given.
const Unset = -1.0
