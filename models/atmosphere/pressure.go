package atmosphere

import (
	"math"

	"github.com/theMomax/weathersim/utils/random"
)

// Deviation bounds. Pressure is allowed to fluctuate +/- 20% around the
// standard pressure of an elevation.
const (
	MinDeviation = 0.8
	MaxDeviation = 1.2
)

// StandardPressure returns the undisturbed air pressure in Pa at elevation
// metres. Elevations outside the standard atmosphere get SeaLevelPressure.
func StandardPressure(elevation float64) float64 {
	l, ok := LayerAt(elevation)
	if !ok {
		return SeaLevelPressure
	}

	heightDiff := elevation - l.Height

	if l.Isothermal() {
		return l.StaticPressure * math.Exp(-Gravity*AirMolarMass*heightDiff/(GasConstant*l.StandardTemperature))
	}

	base := l.StandardTemperature / (l.StandardTemperature + l.LapseRate*heightDiff)
	exponent := (Gravity * AirMolarMass) / (GasConstant * l.LapseRate)
	return l.StaticPressure * math.Pow(base, exponent)
}

// Pressure returns a randomly deviated air pressure in Pa at elevation
// metres, along with the deviation factor that was applied. The deviation
// is the first and only value drawn from source.
func Pressure(elevation float64, source random.Source) (pressure, deviation float64) {
	deviation = source.Uniform(MinDeviation, MaxDeviation)
	return StandardPressure(elevation) * deviation, deviation
}
