// Package humidity derives relative humidity from dry- and wet-bulb
// temperatures using the psychrometric equation.
package humidity

import (
	"math"

	"github.com/theMomax/weathersim/utils/numbers"
	"github.com/theMomax/weathersim/utils/random"
)

// Model constants
const (
	// MaxWetBulbDepression limits how far below the dry-bulb temperature the
	// wet-bulb temperature may be drawn. Larger depressions yield negative
	// vapour pressures.
	MaxWetBulbDepression = 8.0

	// magnus coefficients for the saturation vapour pressure over water, °C
	magnusFactor   = 6.108
	magnusExponent = 17.27
	magnusOffset   = 237.3

	psychrometerCoefficient = 0.00066
	psychrometerCorrection  = 0.00115

	pascalToMillibar = 0.01
)

// Result holds a humidity derivation along with its intermediate values.
type Result struct {
	// Humidity is the relative humidity in percent, within [0, 100].
	Humidity float64
	// MinTemperature is the lower bound the wet-bulb temperature was drawn from.
	MinTemperature float64
	// WetBulbTemperature in °C.
	WetBulbTemperature float64
}

// SaturationVapourPressure returns the saturation vapour pressure in mb over
// water at temperature °C.
func SaturationVapourPressure(temperature float64) float64 {
	return magnusFactor * math.Exp(magnusExponent*temperature/(temperature+magnusOffset))
}

// FromWetBulb returns the relative humidity in percent for the given dry-
// and wet-bulb temperatures in °C at pressure Pa.
func FromWetBulb(dryBulb, wetBulb, pressure float64) float64 {
	pressureMb := pressure * pascalToMillibar

	saturated := SaturationVapourPressure(dryBulb)
	actual := SaturationVapourPressure(wetBulb) -
		psychrometerCoefficient*(1+psychrometerCorrection*wetBulb)*(dryBulb-wetBulb)*pressureMb

	return numbers.Clamp(100*actual/saturated, 0, 100)
}

// Humidity draws a wet-bulb temperature for dryBulb °C from source and
// derives the relative humidity at pressure Pa from it. It draws exactly two
// values: the minimum temperature, then the wet-bulb temperature.
func Humidity(dryBulb, pressure float64, source random.Source) Result {
	min := source.Uniform(dryBulb-MaxWetBulbDepression, dryBulb)
	wet := source.Uniform(min, dryBulb)

	return Result{
		Humidity:           FromWetBulb(dryBulb, wet, pressure),
		MinTemperature:     min,
		WetBulbTemperature: wet,
	}
}
