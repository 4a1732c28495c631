package observation

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theMomax/weathersim/models/condition"
	"github.com/theMomax/weathersim/utils/random"
)

func TestFormatRequiresCalculation(t *testing.T) {
	o, err := New(myCity(20, 345))
	require.NoError(t, err)

	_, err = o.Format()
	assert.ErrorIs(t, err, ErrNotCalculated)
	assert.Equal(t, "", o.String())
}

func TestFormat(t *testing.T) {
	o, err := New(myCity(20, 0))
	require.NoError(t, err)
	o.Calculate(random.NewScript(1.0, 20, 20))

	assert.Equal(t, "MyCity|-32.4566,158.246912,0|1970-01-11T08:00:00Z08:00|Sunny|20.0|1014|100", o.String())

	o.Calculate(random.NewScript(0.9, 20, 20))
	assert.Equal(t, "MyCity|-32.4566,158.246912,0|1970-01-11T08:00:00Z08:00|Rainy|20.0|912|100", o.String())
}

func TestFormatShape(t *testing.T) {
	o, err := New(myCity(20, 345))
	require.NoError(t, err)
	o.Calculate(random.New(9))

	expected := regexp.MustCompile(`^MyCity\|-?\d+\.\d+,-?\d+\.\d+,\d+\|\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z\d{2}:\d{2}\|(Sunny|Rainy|Snowy)\|-?\d+\.\d\|\d+\|\d+$`)
	assert.Regexp(t, expected, o.String())
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(1970, 1, 11, 8, 0, 0, 0, perth), "1970-01-11T08:00:00Z08:00"},
		{time.Date(1970, 12, 31, 9, 30, 0, 0, time.FixedZone("ACST", 9*60*60+30*60)), "1970-12-31T09:30:00Z09:30"},
		{time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), "1970-01-01T00:00:00Z00:00"},
		{time.Date(1970, 1, 1, 21, 0, 0, 0, time.FixedZone("BRT", -3*60*60)), "1970-01-01T21:00:00-03:00"},
		{time.Date(1970, 1, 1, 0, 0, 0, 1500000, time.UTC), "1970-01-01T00:00:00.001500Z00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTimestamp(tt.in))
		parsed, err := parseTimestamp(tt.want)
		require.NoError(t, err)
		assert.True(t, tt.in.Equal(parsed), "%s: got %s", tt.want, parsed)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	source := random.New(21)
	for i := 0; i < 200; i++ {
		p := myCity(source.Uniform(-20, 40), float64(int(source.Uniform(0, 5000))))
		p.Latitude = source.Uniform(-90, 90)
		p.Longitude = source.Uniform(-180, 180)

		o, err := New(p)
		require.NoError(t, err)
		o.Calculate(source)

		want, err := o.Record()
		require.NoError(t, err)

		got, err := ParseRecord(o.String())
		require.NoError(t, err)

		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.Latitude, got.Latitude)
		assert.Equal(t, want.Longitude, got.Longitude)
		assert.Equal(t, want.Elevation, got.Elevation)
		assert.Equal(t, want.Condition, got.Condition)
		assert.Equal(t, want.Pressure, got.Pressure)
		assert.Equal(t, want.Humidity, got.Humidity)
		assert.InDelta(t, want.Temperature, got.Temperature, 0.05+1e-9)
		assert.True(t, want.Equal(got))
	}
}

func TestParseRecord(t *testing.T) {
	r, err := ParseRecord("Broome|-17.95538,122.23922,12|1970-01-11T08:00:00Z08:00|Sunny|25.7|951|60\n")
	require.NoError(t, err)

	assert.Equal(t, "Broome", r.Name)
	assert.Equal(t, -17.95538, r.Latitude)
	assert.Equal(t, 122.23922, r.Longitude)
	assert.Equal(t, 12.0, r.Elevation)
	assert.True(t, time.Date(1970, 1, 11, 0, 0, 0, 0, time.UTC).Equal(r.Timestamp))
	assert.Equal(t, condition.Sunny, r.Condition)
	assert.Equal(t, 25.7, r.Temperature)
	assert.Equal(t, int64(951), r.Pressure)
	assert.Equal(t, int64(60), r.Humidity)
}

func TestParseRecordRejectsMalformedLines(t *testing.T) {
	for _, line := range []string{
		"",
		"Broome|-17.95538,122.23922,12|1970-01-11T08:00:00Z08:00|Sunny|25.7|951",
		"Broome|-17.95538,122.23922|1970-01-11T08:00:00Z08:00|Sunny|25.7|951|60",
		"Broome|-17.95538,122.23922,12|11/01/1970|Sunny|25.7|951|60",
		"Broome|-17.95538,122.23922,12|1970-01-11T08:00:00Z08:00|Cloudy|25.7|951|60",
		"Broome|-17.95538,122.23922,12|1970-01-11T08:00:00Z08:00|Sunny|warm|951|60",
		"Broome|-17.95538,122.23922,12|1970-01-11T08:00:00Z08:00|Sunny|25.7|951.5|60",
		"Broome|-17.95538,122.23922,12|1970-01-11T08:00:00Z08:00|Sunny|25.7|951|sixty",
	} {
		_, err := ParseRecord(line)
		assert.Error(t, err, line)
	}
}

func TestFormatBelowMagnusRange(t *testing.T) {
	o, err := New(myCity(-240, 0))
	require.NoError(t, err)
	o.Calculate(random.NewScript(1.0, -240, -240))

	assert.Equal(t, 0.0, o.Humidity())
	assert.True(t, strings.HasSuffix(o.String(), "|-240.0|1014|0"), o.String())
}
