// Package observation combines the atmosphere, humidity and condition models
// into a weather observation for a single location at a single point in
// time.
//
// An Observation is created with New or FromRecord and is Constructed until
// Calculate is called. Calculate draws pressure and humidity and moves the
// Observation to Calculated; calling it again re-rolls every random value.
package observation

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/theMomax/weathersim/models/atmosphere"
	"github.com/theMomax/weathersim/models/condition"
	"github.com/theMomax/weathersim/models/humidity"
	"github.com/theMomax/weathersim/models/validation"
	"github.com/theMomax/weathersim/utils/numbers"
	"github.com/theMomax/weathersim/utils/random"
	timeutils "github.com/theMomax/weathersim/utils/time"
)

// Field names, as used in records and validation errors.
const (
	FieldName        = "name"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldElevation   = "elevation"
	FieldTemperature = "temperature"
)

// ErrNotCalculated is returned when rendering an Observation, that was never
// calculated.
var ErrNotCalculated = errors.New("observation has not been calculated")

// State of an Observation's lifecycle.
type State int

// States
const (
	Constructed State = iota
	Calculated
)

func (s State) String() string {
	if s == Calculated {
		return "calculated"
	}
	return "constructed"
}

// Params holds everything required to construct an Observation.
type Params struct {
	// Name of the location. Optional.
	Name string
	// Latitude in degrees, within [-90, 90].
	Latitude float64
	// Longitude in degrees, within [-180, 180].
	Longitude float64
	// Elevation in whole metres.
	Elevation float64
	// Temperature in °C.
	Temperature float64
	// Timestamp the observation is for. The current time is used if zero.
	Timestamp time.Time
}

// Observation is the weather at one location at one point in time.
type Observation struct {
	name        string
	latitude    float64
	longitude   float64
	elevation   float64
	temperature float64
	timestamp   time.Time

	state          State
	deviation      float64
	pressure       float64
	humidity       float64
	minTemperature float64
	wetBulb        float64
}

// New validates p and returns a Constructed Observation.
func New(p Params) (*Observation, error) {
	if strings.ContainsAny(p.Name, "|\n") {
		return nil, validation.Rangef(FieldName, "name must not contain '|' or line breaks - %q", p.Name)
	}
	if !numbers.IsFinite(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return nil, validation.Rangef(FieldLatitude, "latitude must be a float between -90 and 90 - %v", p.Latitude)
	}
	if !numbers.IsFinite(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return nil, validation.Rangef(FieldLongitude, "longitude must be a float between -180 and 180 - %v", p.Longitude)
	}
	if !numbers.IsIntegral(p.Elevation) {
		return nil, validation.Typef(FieldElevation, "elevation must be numeric")
	}
	if !numbers.IsFinite(p.Temperature) {
		return nil, validation.Typef(FieldTemperature, "temperature must be numeric - %v", p.Temperature)
	}

	ts := p.Timestamp
	if ts.IsZero() {
		ts = timeutils.Now()
	}

	return &Observation{
		name:        p.Name,
		latitude:    p.Latitude,
		longitude:   p.Longitude,
		elevation:   p.Elevation,
		temperature: p.Temperature,
		timestamp:   ts,
	}, nil
}

// FromRecord type-checks the loosely typed record and constructs an
// Observation from it. Latitude, longitude, elevation and temperature are
// required and must be numbers; name is optional but must be a string.
func FromRecord(record map[string]interface{}, timestamp time.Time) (*Observation, error) {
	p := Params{Timestamp: timestamp}

	if v, ok := record[FieldName]; ok && v != nil {
		name, err := validation.String(FieldName, v)
		if err != nil {
			return nil, err
		}
		p.Name = name
	}

	for _, f := range []struct {
		field string
		dst   *float64
	}{
		{FieldLatitude, &p.Latitude},
		{FieldLongitude, &p.Longitude},
		{FieldElevation, &p.Elevation},
		{FieldTemperature, &p.Temperature},
	} {
		v, err := validation.Required(record, f.field)
		if err != nil {
			return nil, err
		}
		if *f.dst, err = validation.Number(f.field, v); err != nil {
			return nil, err
		}
	}

	return New(p)
}

// Calculate draws the air pressure and humidity from source and marks the
// Observation as Calculated. Previous results are overwritten.
func (o *Observation) Calculate(source random.Source) {
	o.pressure, o.deviation = atmosphere.Pressure(o.elevation, source)

	h := humidity.Humidity(o.temperature, o.pressure, source)
	o.humidity = h.Humidity
	o.minTemperature = h.MinTemperature
	o.wetBulb = h.WetBulbTemperature

	o.state = Calculated
}

// Name of the location.
func (o *Observation) Name() string {
	return o.name
}

// Latitude of the location.
func (o *Observation) Latitude() float64 {
	return o.latitude
}

// Longitude of the location.
func (o *Observation) Longitude() float64 {
	return o.longitude
}

// Elevation of the location in metres.
func (o *Observation) Elevation() float64 {
	return o.elevation
}

// Temperature in °C.
func (o *Observation) Temperature() float64 {
	return o.temperature
}

// Timestamp the Observation is for.
func (o *Observation) Timestamp() time.Time {
	return o.timestamp
}

// State returns whether the Observation was calculated yet.
func (o *Observation) State() State {
	return o.state
}

// Deviation is the factor by which the pressure deviates from the standard
// pressure at the location's elevation.
func (o *Observation) Deviation() float64 {
	return o.deviation
}

// Pressure in Pa.
func (o *Observation) Pressure() float64 {
	return o.pressure
}

// Humidity is the relative humidity in percent.
func (o *Observation) Humidity() float64 {
	return o.humidity
}

// MinTemperature is the lower bound the wet-bulb temperature was drawn from.
func (o *Observation) MinTemperature() float64 {
	return o.minTemperature
}

// WetBulbTemperature in °C, which the humidity was derived from.
func (o *Observation) WetBulbTemperature() float64 {
	return o.wetBulb
}

// Condition classifies the current humidity, rounded up to whole percent,
// deviation and temperature. It is empty until the Observation is
// calculated.
func (o *Observation) Condition() condition.Condition {
	if o.state != Calculated {
		return ""
	}
	return condition.Classify(math.Ceil(o.humidity), o.deviation, o.temperature)
}
