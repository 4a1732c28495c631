// Package generator produces observations for every location on every day of
// a date range.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/theMomax/weathersim/config"
	"github.com/theMomax/weathersim/locations"
	"github.com/theMomax/weathersim/metrics"
	"github.com/theMomax/weathersim/models/condition"
	"github.com/theMomax/weathersim/models/observation"
	"github.com/theMomax/weathersim/models/validation"
	"github.com/theMomax/weathersim/timezone"
	"github.com/theMomax/weathersim/utils/numbers"
	"github.com/theMomax/weathersim/utils/random"
	timeutils "github.com/theMomax/weathersim/utils/time"
)

// Config paths
const (
	PathFile  = "file"
	PathStart = "start"
	PathEnd   = "end"
)

func init() {
	config.RootCtx.PersistentFlags().StringP(PathFile, "f", "data/locations.json", "JSON file holding the locations to generate weather for")
	config.Viper.BindPFlag(PathFile, config.RootCtx.PersistentFlags().Lookup(PathFile))

	config.RootCtx.PersistentFlags().StringP(PathStart, "s", "1970-01-01 00:00:00", "first day to generate weather for (YYYY-MM-DD HH:mm:ss)")
	config.Viper.BindPFlag(PathStart, config.RootCtx.PersistentFlags().Lookup(PathStart))

	config.RootCtx.PersistentFlags().StringP(PathEnd, "e", "1970-03-31 00:00:00", "last day to generate weather for (YYYY-MM-DD HH:mm:ss)")
	config.Viper.BindPFlag(PathEnd, config.RootCtx.PersistentFlags().Lookup(PathEnd))
}

// Generator writes one observation line per location and day to Out.
type Generator struct {
	Locations []locations.Location
	Resolver  timezone.Resolver
	Source    random.Source
	Out       io.Writer
	// Log is optional. The standard logger is used if nil.
	Log logrus.FieldLogger
	// Metrics is optional.
	Metrics *metrics.Collector
}

// RecentHalfLife is the amount of days after which an observation's
// temperature counts half towards Stats.RecentTemperature.
const RecentHalfLife = 7

// Stats holds running statistics of one location's observations.
type Stats struct {
	Observations int
	Temperature  *numbers.Average
	// RecentTemperature favours the latest days.
	RecentTemperature *numbers.Average
	Pressure     *numbers.Average
	Humidity     *numbers.Average
}

func newStats() *Stats {
	return &Stats{
		Temperature:       numbers.NewMean(),
		RecentTemperature: numbers.NewDecaying(RecentHalfLife),
		Pressure:          numbers.NewMean(),
		Humidity:          numbers.NewMean(),
	}
}

func (s *Stats) apply(o *observation.Observation) {
	s.Observations++
	s.Temperature.Apply(o.Temperature())
	s.RecentTemperature.Apply(o.Temperature())
	s.Pressure.Apply(o.Pressure())
	s.Humidity.Apply(o.Humidity())
}

// Summary describes a finished run.
type Summary struct {
	RunID      string
	Days       int
	Lines      int
	Conditions map[condition.Condition]int
	// Skipped maps the names of skipped locations to the reason.
	Skipped  map[string]error
	Stats    map[string]*Stats
	Duration time.Duration
}

func newSummary(id string) *Summary {
	s := &Summary{
		RunID:      id,
		Conditions: make(map[condition.Condition]int, len(condition.All)),
		Skipped:    make(map[string]error),
		Stats:      make(map[string]*Stats),
	}
	for _, c := range condition.All {
		s.Conditions[c] = 0
	}
	return s
}

type target struct {
	location *locations.Location
	zone     *time.Location
	skipped  bool
}

// Run generates observations for every day from start to end inclusive. Days
// are iterated in the outer loop, locations in the inner one. A location,
// that produces an invalid observation is skipped for the rest of the run.
// Run stops early if ctx is done or writing to Out fails.
func (g *Generator) Run(ctx context.Context, start, end time.Time) (*Summary, error) {
	begin := timeutils.Now()
	summary := newSummary(uuid.NewString())

	log := g.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("run_id", summary.RunID)

	targets := make([]*target, len(g.Locations))
	for i := range g.Locations {
		l := &g.Locations[i]
		t := &target{location: l}
		zone, err := g.Resolver.Resolve(l.Latitude, l.Longitude)
		if err != nil {
			g.skip(log, summary, t, "timezone", err)
		}
		t.zone = zone
		targets[i] = t
	}

	log.WithFields(logrus.Fields{
		"locations": len(targets),
		"start":     start.Format(timeutils.DateLayout),
		"end":       end.Format(timeutils.DateLayout),
	}).Info("Starting generation")

	var runErr error
	err := timeutils.Days(start, end, func(day time.Time) bool {
		summary.Days++
		for _, t := range targets {
			if t.skipped {
				continue
			}
			if err := ctx.Err(); err != nil {
				runErr = err
				return false
			}

			o, err := g.observe(t, day)
			if err != nil {
				field := ""
				var verr *validation.Error
				if errors.As(err, &verr) {
					field = verr.Field
				}
				g.skip(log.WithField("date", day.Format(timeutils.DateLayout)), summary, t, field, err)
				continue
			}

			if _, err := fmt.Fprintln(g.Out, o); err != nil {
				runErr = fmt.Errorf("could not write observation: %w", err)
				return false
			}

			summary.Lines++
			summary.Conditions[o.Condition()]++
			stats, ok := summary.Stats[t.location.Name]
			if !ok {
				stats = newStats()
				summary.Stats[t.location.Name] = stats
			}
			stats.apply(o)
			if g.Metrics != nil {
				g.Metrics.RecordObservation(o.Condition(), o.Pressure(), o.Humidity())
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	summary.Duration = timeutils.Since(begin)
	if g.Metrics != nil {
		g.Metrics.ObserveDuration(summary.Duration)
	}

	entry := log.WithFields(logrus.Fields{
		"days":     summary.Days,
		"lines":    summary.Lines,
		"skipped":  len(summary.Skipped),
		"duration": summary.Duration,
	})
	if runErr != nil {
		entry.WithError(runErr).Warn("Generation aborted")
		return summary, runErr
	}
	entry.Info("Generation finished")
	return summary, nil
}

func (g *Generator) observe(t *target, day time.Time) (*observation.Observation, error) {
	l := t.location
	o, err := observation.New(observation.Params{
		Name:        l.Name,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Elevation:   l.Elevation,
		Temperature: l.Temperature(day.Month(), g.Source),
		Timestamp:   day.In(t.zone),
	})
	if err != nil {
		return nil, err
	}
	o.Calculate(g.Source)
	return o, nil
}

func (g *Generator) skip(log logrus.FieldLogger, summary *Summary, t *target, field string, err error) {
	t.skipped = true
	summary.Skipped[t.location.Name] = err
	if g.Metrics != nil {
		g.Metrics.RecordValidationError(field)
	}
	log.WithError(err).WithField("location", t.location.Name).Error("Skipping location")
}
