package units

import "fmt"

type (
	Speed       string
	Temperature string
	Pressure    string
)

const (
	KMH Speed = "kmh"
	MPH Speed = "mph"

	Celsius    Temperature = "celsius"
	Fahrenheit Temperature = "fahrenheit"

	Bar Pressure = "bar"
	PSI Pressure = "psi"
)

const (
	kmhToMph = 0.621371
	barToPsi = 14.5038
)

// Settings selects display units. Recorded data is km/h, Celsius and bar.
type Settings struct {
	Speed       Speed
	Temperature Temperature
	Pressure    Pressure
}

func Default() Settings {
	return Settings{Speed: KMH, Temperature: Celsius, Pressure: Bar}
}

// Parse validates unit names. Empty names fall back to the defaults.
func Parse(speed, temp, pressure string) (Settings, error) {
	s := Default()
	switch Speed(speed) {
	case "":
	case KMH, MPH:
		s.Speed = Speed(speed)
	default:
		return s, fmt.Errorf("unknown speed unit %q", speed)
	}
	switch Temperature(temp) {
	case "":
	case Celsius, Fahrenheit:
		s.Temperature = Temperature(temp)
	default:
		return s, fmt.Errorf("unknown temperature unit %q", temp)
	}
	switch Pressure(pressure) {
	case "":
	case Bar, PSI:
		s.Pressure = Pressure(pressure)
	default:
		return s, fmt.Errorf("unknown pressure unit %q", pressure)
	}
	return s, nil
}

func (s Settings) ConvertSpeed(v float64) float64 {
	if s.Speed == MPH {
		return v * kmhToMph
	}
	return v
}

func (s Settings) ConvertTemperature(v float64) float64 {
	if s.Temperature == Fahrenheit {
		return v*9/5 + 32
	}
	return v
}

func (s Settings) ConvertPressure(v float64) float64 {
	if s.Pressure == PSI {
		return v * barToPsi
	}
	return v
}

func (s Settings) SpeedLabel() string {
	if s.Speed == MPH {
		return "mph"
	}
	return "km/h"
}

func (s Settings) TemperatureLabel() string {
	if s.Temperature == Fahrenheit {
		return "°F"
	}
	return "°C"
}

func (s Settings) PressureLabel() string {
	if s.Pressure == PSI {
		return "psi"
	}
	return "bar"
}
