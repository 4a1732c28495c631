// Package locations loads and validates the location definitions weather is
// generated for.
package locations

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/theMomax/weathersim/models/validation"
	"github.com/theMomax/weathersim/utils/numbers"
	"github.com/theMomax/weathersim/utils/random"
)

// Error constants
var (
	ErrNotFound = errors.New("unable to locate data file")
	ErrCorrupt  = errors.New("data file is corrupt or not in the correct format")
)

// Temperatures holds the lowest and highest temperature in °C for each month,
// starting with January.
type Temperatures struct {
	Min []float64 `json:"min" validate:"len=12,dive,gte=-100,lte=100"`
	Max []float64 `json:"max" validate:"len=12,dive,gte=-100,lte=100"`
}

// Location is a named place on earth.
type Location struct {
	Name      string       `json:"name" validate:"required,excludesall=0x7C"`
	Latitude  float64      `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64      `json:"longitude" validate:"gte=-180,lte=180"`
	Elevation float64      `json:"elevation"`
	Temps     Temperatures `json:"temps"`
}

// Temperature draws a temperature for the given month from the month's
// range.
func (l *Location) Temperature(month time.Month, source random.Source) float64 {
	i := int(month) - 1
	return source.Uniform(l.Temps.Min[i], l.Temps.Max[i])
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		t := sl.Current().Interface().(Temperatures)
		for i := 0; i < len(t.Min) && i < len(t.Max); i++ {
			if t.Min[i] > t.Max[i] {
				sl.ReportError(t.Min[i], fmt.Sprintf("Min[%d]", i), "Min", "ltefield", "Max")
			}
		}
	}, Temperatures{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		l := sl.Current().Interface().(Location)
		if !numbers.IsIntegral(l.Elevation) {
			sl.ReportError(l.Elevation, "Elevation", "Elevation", "integral", "")
		}
	}, Location{})
	return v
}

// Load reads the locations stored as JSON array in the file at path.
func Load(path string) ([]Location, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w - %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	l, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Decode reads locations from r. Every record's field types are checked
// before the records are decoded and validated.
func Decode(r io.Reader) ([]Location, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []map[string]interface{}
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	if err := d.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w - %v", ErrCorrupt, err)
	}

	for i, rec := range records {
		if err := checkTypes(rec); err != nil {
			return nil, fmt.Errorf("%w - record %d: %w", ErrCorrupt, i, err)
		}
	}

	var locations []Location
	if err := json.Unmarshal(raw, &locations); err != nil {
		return nil, fmt.Errorf("%w - %v", ErrCorrupt, err)
	}

	for i := range locations {
		if err := validate.Struct(locations[i]); err != nil {
			return nil, fmt.Errorf("%w - record %d (%s): %s", ErrCorrupt, i, locations[i].Name, describe(err))
		}
	}

	return locations, nil
}

func checkTypes(rec map[string]interface{}) error {
	v, err := validation.Required(rec, "name")
	if err != nil {
		return err
	}
	if _, err := validation.String("name", v); err != nil {
		return err
	}

	for _, field := range [...]string{"latitude", "longitude", "elevation"} {
		v, err := validation.Required(rec, field)
		if err != nil {
			return err
		}
		if _, err := validation.Number(field, v); err != nil {
			return err
		}
	}

	v, err = validation.Required(rec, "temps")
	if err != nil {
		return err
	}
	temps, ok := v.(map[string]interface{})
	if !ok {
		return validation.Typef("temps", "temps must be an object with min and max")
	}
	for _, bound := range [...]string{"min", "max"} {
		field := "temps." + bound
		v, err := validation.Required(temps, bound)
		if err != nil {
			return validation.Typef(field, "%s is required", field)
		}
		values, ok := v.([]interface{})
		if !ok {
			return validation.Typef(field, "%s must be an array", field)
		}
		for i, t := range values {
			if _, err := validation.Number(fmt.Sprintf("%s[%d]", field, i), t); err != nil {
				return err
			}
		}
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", e.Namespace(), e.Tag(), e.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Namespace(), e.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
