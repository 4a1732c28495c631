package observation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theMomax/weathersim/models/atmosphere"
	"github.com/theMomax/weathersim/models/condition"
	"github.com/theMomax/weathersim/models/validation"
	"github.com/theMomax/weathersim/utils/random"
	timeutils "github.com/theMomax/weathersim/utils/time"
)

var perth = time.FixedZone("AWST", 8*60*60)

func myCity(temperature, elevation float64) Params {
	return Params{
		Name:        "MyCity",
		Latitude:    -32.4566,
		Longitude:   158.246912,
		Elevation:   elevation,
		Temperature: temperature,
		Timestamp:   time.Date(1970, 1, 11, 8, 0, 0, 0, perth),
	}
}

func TestNew(t *testing.T) {
	o, err := New(myCity(15, 345))
	require.NoError(t, err)

	assert.Equal(t, "MyCity", o.Name())
	assert.Equal(t, -32.4566, o.Latitude())
	assert.Equal(t, 158.246912, o.Longitude())
	assert.Equal(t, 345.0, o.Elevation())
	assert.Equal(t, 15.0, o.Temperature())
	assert.Equal(t, Constructed, o.State())
	assert.Equal(t, condition.Condition(""), o.Condition())

	p := myCity(15, 345)
	p.Name = ""
	o, err = New(p)
	require.NoError(t, err)
	assert.Equal(t, "", o.Name())
}

func TestNewDefaultsTimestampToNow(t *testing.T) {
	now := time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC)
	_, restore := timeutils.Mock(now)
	defer restore()

	p := myCity(15, 345)
	p.Timestamp = time.Time{}
	o, err := New(p)
	require.NoError(t, err)
	assert.Equal(t, now, o.Timestamp())
}

func TestNewRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		kind   error
		field  string
	}{
		{"latitude too large", func(p *Params) { p.Latitude = 91 }, validation.ErrRange, FieldLatitude},
		{"latitude barely too large", func(p *Params) { p.Latitude = 90.000215 }, validation.ErrRange, FieldLatitude},
		{"latitude too small", func(p *Params) { p.Latitude = -91 }, validation.ErrRange, FieldLatitude},
		{"latitude NaN", func(p *Params) { p.Latitude = math.NaN() }, validation.ErrRange, FieldLatitude},
		{"longitude too large", func(p *Params) { p.Longitude = 1208.23 }, validation.ErrRange, FieldLongitude},
		{"longitude too small", func(p *Params) { p.Longitude = -190.0001 }, validation.ErrRange, FieldLongitude},
		{"fractional elevation", func(p *Params) { p.Elevation = 345.5 }, validation.ErrType, FieldElevation},
		{"infinite elevation", func(p *Params) { p.Elevation = math.Inf(1) }, validation.ErrType, FieldElevation},
		{"NaN temperature", func(p *Params) { p.Temperature = math.NaN() }, validation.ErrType, FieldTemperature},
		{"separator in name", func(p *Params) { p.Name = "My|City" }, validation.ErrRange, FieldName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := myCity(15, 345)
			tt.modify(&p)
			o, err := New(p)
			assert.Nil(t, o)
			require.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.field, err.(*validation.Error).Field)
		})
	}
}

func TestNewAcceptsBounds(t *testing.T) {
	for _, lat := range []float64{-90, 90, 0} {
		for _, lon := range []float64{-180, 180, 0} {
			p := myCity(15, 0)
			p.Latitude, p.Longitude = lat, lon
			_, err := New(p)
			assert.NoError(t, err, "lat %f lon %f", lat, lon)
		}
	}
}

func record() map[string]interface{} {
	return map[string]interface{}{
		"name":        "MyCity",
		"latitude":    -32.4566,
		"longitude":   158.246912,
		"elevation":   345,
		"temperature": 15,
	}
}

func TestFromRecord(t *testing.T) {
	o, err := FromRecord(record(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "MyCity", o.Name())
	assert.Equal(t, 345.0, o.Elevation())
	assert.Equal(t, 15.0, o.Temperature())

	r := record()
	delete(r, "name")
	o, err = FromRecord(r, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "", o.Name())
}

func TestFromRecordTypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value interface{}
	}{
		{"temperature as string", FieldTemperature, "15"},
		{"temperature missing", FieldTemperature, nil},
		{"elevation as string", FieldElevation, "345"},
		{"elevation missing", FieldElevation, nil},
		{"latitude as string", FieldLatitude, "39"},
		{"latitude missing", FieldLatitude, nil},
		{"longitude as string", FieldLongitude, "158.246912"},
		{"longitude missing", FieldLongitude, nil},
		{"name as number", FieldName, 234},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := record()
			if tt.value == nil {
				delete(r, tt.field)
			} else {
				r[tt.field] = tt.value
			}
			_, err := FromRecord(r, time.Time{})
			require.ErrorIs(t, err, validation.ErrType)
			assert.Equal(t, tt.field, err.(*validation.Error).Field)
		})
	}
}

func TestFromRecordRangeError(t *testing.T) {
	r := record()
	r["latitude"] = 91
	_, err := FromRecord(r, time.Time{})
	assert.ErrorIs(t, err, validation.ErrRange)
}

func TestCalculateSaturatedAtSeaLevel(t *testing.T) {
	o, err := New(myCity(15, 0))
	require.NoError(t, err)

	o.Calculate(random.NewScript(1.0, 15, 15))

	assert.Equal(t, Calculated, o.State())
	assert.Equal(t, 1.0, o.Deviation())
	assert.InDelta(t, atmosphere.SeaLevelPressure, o.Pressure(), 1e-6)
	assert.InDelta(t, 100, o.Humidity(), 1e-9)
	assert.Equal(t, 15.0, o.MinTemperature())
	assert.Equal(t, 15.0, o.WetBulbTemperature())
	assert.Equal(t, condition.Sunny, o.Condition())
}

func TestCalculateReferenceHumidity(t *testing.T) {
	o, err := New(myCity(15, 0))
	require.NoError(t, err)

	for _, tt := range []struct {
		temperature, wetBulb float64
		want                 int64
	}{
		{15, 15, 100},
		{15, 14, 90},
		{15, 13, 80},
		{33, 23, 43},
	} {
		o.temperature = tt.temperature
		o.Calculate(random.NewScript(1.0, tt.wetBulb, tt.wetBulb))
		r, err := o.Record()
		require.NoError(t, err)
		assert.Equal(t, tt.want, r.Humidity, "dry %f wet %f", tt.temperature, tt.wetBulb)
	}
}

func TestCalculateRerolls(t *testing.T) {
	o, err := New(myCity(20, 345))
	require.NoError(t, err)

	o.Calculate(random.NewScript(1.0, 20, 20))
	first := o.Humidity()

	o.Calculate(random.NewScript(1.0, 15, 15))
	assert.Less(t, o.Humidity(), first)
	assert.Equal(t, 15.0, o.WetBulbTemperature())
}

func TestCalculateInvariants(t *testing.T) {
	source := random.New(5)
	for e := 0.0; e < 9000; e += 300 {
		o, err := New(myCity(source.Uniform(-30, 45), e))
		require.NoError(t, err)
		o.Calculate(source)

		assert.Greater(t, o.Pressure(), 0.0)
		assert.True(t, o.Humidity() >= 0 && o.Humidity() <= 100)
		assert.True(t, o.Deviation() >= 0.8 && o.Deviation() <= 1.2)
		assert.LessOrEqual(t, o.WetBulbTemperature(), o.Temperature())
		assert.GreaterOrEqual(t, o.WetBulbTemperature(), o.MinTemperature())
		assert.GreaterOrEqual(t, o.MinTemperature(), o.Temperature()-8)
		assert.Contains(t, condition.All[:], o.Condition())
	}
}

func TestConditionFollowsCalculation(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		deviation   float64
		want        condition.Condition
	}{
		{"rainy", 20, 0.9, condition.Rainy},
		{"snowy", 5, 1.157, condition.Snowy},
		{"sunny", 32, 0.8, condition.Sunny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := New(myCity(tt.temperature, 345))
			require.NoError(t, err)
			o.Calculate(random.NewScript(tt.deviation, tt.temperature, tt.temperature))
			assert.Equal(t, tt.want, o.Condition())
		})
	}
}
