// Package timezone resolves the local time zone of a geographic position.
package timezone

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/ringsaturn/tzf"
	"github.com/theMomax/weathersim/cache"
	"github.com/theMomax/weathersim/config"
)

// Config paths
const (
	PathFallback = "timezone.fallback"
	PathLookup   = "timezone.lookup"
)

func init() {
	config.RootCtx.PersistentFlags().String(PathFallback, "UTC", "IANA time zone used where no zone is known, or for every location if lookup is disabled")
	config.Viper.BindPFlag(PathFallback, config.RootCtx.PersistentFlags().Lookup(PathFallback))

	config.RootCtx.PersistentFlags().Bool(PathLookup, true, "look up each location's time zone by its coordinates")
	config.Viper.BindPFlag(PathLookup, config.RootCtx.PersistentFlags().Lookup(PathLookup))
}

// Resolver returns the time zone at a position.
type Resolver interface {
	Resolve(latitude, longitude float64) (*time.Location, error)
}

// Finder looks up the IANA name of the time zone at a position. It returns an
// empty string if there is none.
type Finder interface {
	GetTimezoneName(lng float64, lat float64) string
}

// Lookup is a Resolver backed by a Finder. Results are cached per position.
type Lookup struct {
	finder   Finder
	fallback *time.Location
	cache    *cache.Cache
}

type entry struct {
	position [2]float64
	location *time.Location
}

func (e *entry) Hash() interface{} {
	return e.position
}

// New returns a Lookup using finder, and fallback wherever finder knows no
// zone.
func New(finder Finder, fallback *time.Location) *Lookup {
	return &Lookup{
		finder:   finder,
		fallback: fallback,
		cache:    cache.NewCache(4096),
	}
}

// NewFromConfig returns the Resolver as configured: either a Lookup using the
// embedded time zone boundaries, or the fallback zone for every position.
func NewFromConfig() (Resolver, error) {
	name := config.Viper.GetString(PathFallback)
	fallback, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback time zone %q: %w", name, err)
	}

	if !config.Viper.GetBool(PathLookup) {
		return Fixed{fallback}, nil
	}

	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("could not load time zone boundaries: %w", err)
	}
	return New(finder, fallback), nil
}

// Resolve returns the time zone at the given position.
func (l *Lookup) Resolve(latitude, longitude float64) (*time.Location, error) {
	position := [2]float64{latitude, longitude}
	e, err := l.cache.GetOrCompute(position, func() (cache.Element, error) {
		name := l.finder.GetTimezoneName(longitude, latitude)
		if name == "" {
			return &entry{position, l.fallback}, nil
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("could not load time zone %q: %w", name, err)
		}
		return &entry{position, loc}, nil
	})
	if err != nil {
		return nil, err
	}
	return e.(*entry).location, nil
}

// Fixed resolves every position to the same zone.
type Fixed struct {
	Location *time.Location
}

// Resolve returns f's Location.
func (f Fixed) Resolve(latitude, longitude float64) (*time.Location, error) {
	return f.Location, nil
}
