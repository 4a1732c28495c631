package observation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theMomax/weathersim/models/condition"
	"github.com/theMomax/weathersim/utils/numbers"
)

const (
	separator       = "|"
	geoSeparator    = ","
	timestampLayout = "2006-01-02T15:04:05-07:00"
	fractionLayout  = "2006-01-02T15:04:05.000000-07:00"
)

// Record is the rendered form of a calculated Observation. Its String method
// produces the canonical output line:
//
//	Broome|-17.95538,122.23922,12|1970-01-11T08:00:00Z08:00|Sunny|25.7|951|60
//
// i.e. name, geo-location, timestamp with '+' replaced by 'Z', condition,
// temperature in °C (one decimal), pressure in hPa and relative humidity in
// percent, both rounded up.
type Record struct {
	Name        string
	Latitude    float64
	Longitude   float64
	Elevation   float64
	Timestamp   time.Time
	Condition   condition.Condition
	Temperature float64
	Pressure    int64
	Humidity    int64
}

// Record returns the rendered form of o.
func (o *Observation) Record() (Record, error) {
	if o.state != Calculated {
		return Record{}, ErrNotCalculated
	}
	return Record{
		Name:        o.name,
		Latitude:    o.latitude,
		Longitude:   o.longitude,
		Elevation:   o.elevation,
		Timestamp:   o.timestamp,
		Condition:   o.Condition(),
		Temperature: o.temperature,
		Pressure:    numbers.CeilInt(o.pressure / 100),
		Humidity:    numbers.CeilInt(o.humidity),
	}, nil
}

// Format returns the canonical output line of o.
func (o *Observation) Format() (string, error) {
	r, err := o.Record()
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

// String returns the canonical output line, or an empty string if o was not
// calculated yet.
func (o *Observation) String() string {
	s, _ := o.Format()
	return s
}

func (r Record) String() string {
	geo := numbers.FormatFloat(r.Latitude) + geoSeparator +
		numbers.FormatFloat(r.Longitude) + geoSeparator +
		strconv.FormatFloat(r.Elevation, 'f', -1, 64)

	return strings.Join([]string{
		r.Name,
		geo,
		formatTimestamp(r.Timestamp),
		string(r.Condition),
		numbers.FormatFixed(r.Temperature, 1),
		strconv.FormatInt(r.Pressure, 10),
		strconv.FormatInt(r.Humidity, 10),
	}, separator)
}

// ParseRecord parses a line as produced by Record.String. The temperature is
// only as precise as the line.
func ParseRecord(line string) (Record, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), separator)
	if len(fields) != 7 {
		return Record{}, fmt.Errorf("expected 7 fields, got %d", len(fields))
	}

	r := Record{Name: fields[0]}

	geo := strings.Split(fields[1], geoSeparator)
	if len(geo) != 3 {
		return Record{}, fmt.Errorf("malformed geo-location %q", fields[1])
	}
	for i, dst := range []*float64{&r.Latitude, &r.Longitude, &r.Elevation} {
		v, err := strconv.ParseFloat(geo[i], 64)
		if err != nil {
			return Record{}, fmt.Errorf("malformed geo-location %q: %w", fields[1], err)
		}
		*dst = v
	}

	ts, err := parseTimestamp(fields[2])
	if err != nil {
		return Record{}, err
	}
	r.Timestamp = ts

	if r.Condition, err = condition.Parse(fields[3]); err != nil {
		return Record{}, err
	}

	if r.Temperature, err = strconv.ParseFloat(fields[4], 64); err != nil {
		return Record{}, fmt.Errorf("malformed temperature %q: %w", fields[4], err)
	}
	if r.Pressure, err = strconv.ParseInt(fields[5], 10, 64); err != nil {
		return Record{}, fmt.Errorf("malformed pressure %q: %w", fields[5], err)
	}
	if r.Humidity, err = strconv.ParseInt(fields[6], 10, 64); err != nil {
		return Record{}, fmt.Errorf("malformed humidity %q: %w", fields[6], err)
	}

	return r, nil
}

func formatTimestamp(t time.Time) string {
	layout := timestampLayout
	if t.Nanosecond() != 0 {
		layout = fractionLayout
	}
	return strings.Replace(t.Format(layout), "+", "Z", -1)
}

func parseTimestamp(s string) (time.Time, error) {
	// the offset is the last 6 characters, e.g. Z08:00 or -03:30
	if len(s) < 6 {
		return time.Time{}, fmt.Errorf("malformed timestamp %q", s)
	}
	offset := s[len(s)-6:]
	if offset[0] == 'Z' {
		offset = "+" + offset[1:]
	}
	t, err := time.Parse(timestampLayout, s[:len(s)-6]+offset)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	return t, nil
}

// Equal reports whether r and other describe the same observation at the
// precision of the output line.
func (r Record) Equal(other Record) bool {
	return r.Name == other.Name &&
		r.Latitude == other.Latitude &&
		r.Longitude == other.Longitude &&
		r.Elevation == other.Elevation &&
		r.Timestamp.Equal(other.Timestamp) &&
		r.Condition == other.Condition &&
		math.Abs(r.Temperature-other.Temperature) <= 0.05+1e-9 &&
		r.Pressure == other.Pressure &&
		r.Humidity == other.Humidity
}
