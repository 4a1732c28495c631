package condition

import "fmt"

// Condition is a coarse sky condition.
type Condition string

// Conditions
const (
	Sunny Condition = "Sunny"
	Rainy Condition = "Rainy"
	Snowy Condition = "Snowy"
)

// All lists every Condition Classify may return.
var All = [...]Condition{Sunny, Rainy, Snowy}

// Parse returns the Condition named s.
func Parse(s string) (Condition, error) {
	for _, c := range All {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown condition %q", s)
}

// Classify returns the sky condition for humidity in percent, the pressure
// deviation factor and temperature in °C. The first matching rule wins.
func Classify(humidity, deviation, temperature float64) Condition {
	// high humidity, high pressure and low temperature form snow
	if humidity >= 80 && deviation >= 1.1 && temperature <= 10 {
		return Snowy
	}
	// it doesn't rain above 25°C
	if humidity > 60 && deviation < 1.0 && temperature < 25 {
		return Rainy
	}
	return Sunny
}
