// Package atmosphere models air pressure by elevation according to the U.S.
// Standard Atmosphere (https://en.wikipedia.org/wiki/U.S._Standard_Atmosphere).
package atmosphere

// Physical constants
const (
	// Gravity is the gravitational acceleration in m/s².
	Gravity = 9.80665
	// AirMolarMass is the molar mass of Earth's air in kg/mol.
	AirMolarMass = 0.0289644
	// GasConstant is the universal gas constant in J/(mol·K).
	GasConstant = 8.3144598
	// SeaLevelPressure is the standard air pressure at sea level in Pa.
	SeaLevelPressure = 101325.0
)

// Layer is a single layer of the standard atmosphere.
type Layer struct {
	Name string
	// Height is the layer's lower bound in metres.
	Height float64
	// StaticPressure in Pa at Height.
	StaticPressure float64
	// StandardTemperature in K at Height.
	StandardTemperature float64
	// LapseRate in K/m.
	LapseRate float64
}

// Isothermal reports whether the temperature is constant throughout the layer.
func (l Layer) Isothermal() bool {
	return l.LapseRate == 0
}

// Layers is the seven-layer standard atmosphere in ascending order.
var Layers = [...]Layer{
	{Name: "Troposphere", Height: 0, StaticPressure: 101325.00, StandardTemperature: 288.15, LapseRate: -0.0065},
	{Name: "Tropopause", Height: 11000, StaticPressure: 22632.10, StandardTemperature: 216.65, LapseRate: 0.0},
	{Name: "Stratosphere", Height: 20000, StaticPressure: 5474.89, StandardTemperature: 216.65, LapseRate: 0.001},
	{Name: "Stratopause", Height: 32000, StaticPressure: 868.02, StandardTemperature: 228.65, LapseRate: 0.0028},
	{Name: "Mesosphere", Height: 47000, StaticPressure: 110.91, StandardTemperature: 270.65, LapseRate: 0.0},
	{Name: "Mesopause", Height: 51000, StaticPressure: 66.94, StandardTemperature: 270.65, LapseRate: -0.0028},
	{Name: "Thermosphere", Height: 71000, StaticPressure: 3.96, StandardTemperature: 214.65, LapseRate: -0.002},
}

// LayerAt returns the layer containing elevation. Each layer spans from its
// own height up to, excluding, the next layer's height. The topmost layer
// only contains its own height.
func LayerAt(elevation float64) (Layer, bool) {
	for i, l := range Layers {
		upper := l.Height
		if i < len(Layers)-1 {
			upper = Layers[i+1].Height
		}
		if elevation >= l.Height && (elevation < upper || (i == len(Layers)-1 && elevation == upper)) {
			return l, true
		}
	}
	return Layer{}, false
}
