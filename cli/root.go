package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/theMomax/weathersim/config"
	"github.com/theMomax/weathersim/generator"
	"github.com/theMomax/weathersim/locations"
	"github.com/theMomax/weathersim/metrics"
	"github.com/theMomax/weathersim/timezone"
	"github.com/theMomax/weathersim/utils/random"
	timeutils "github.com/theMomax/weathersim/utils/time"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)

func init() {
	config.RootCtx.Run = run
}

// Execute executes the root command.
func Execute() error {
	return config.RootCtx.Execute()
}

func run(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, start, end, err := setup()
	if err != nil {
		fatal(err)
	}

	w := bufio.NewWriter(os.Stdout)
	g.Out = w

	summary, err := g.Run(ctx, start, end)
	if ferr := w.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("could not write observations: %w", ferr)
	}

	if path, merr := g.Metrics.WriteFromConfig(); merr != nil {
		log.WithError(merr).WithField("path", path).Error("Could not write metrics")
	} else if path != "" {
		log.WithField("path", path).Debug("Metrics written")
	}

	if err != nil {
		fatal(err)
	}

	for name, stats := range summary.Stats {
		log.WithFields(log.Fields{
			"run_id":       summary.RunID,
			"location":     name,
			"observations": stats.Observations,
			"temperature":  stats.Temperature.Get(),
			"recent":       stats.RecentTemperature.Get(),
			"pressure":     stats.Pressure.Get(),
			"humidity":     stats.Humidity.Get(),
		}).Debug("Location summary")
	}
}

func setup() (g *generator.Generator, start, end time.Time, err error) {
	file := config.Viper.GetString(generator.PathFile)
	locs, err := locations.Load(file)
	if err != nil {
		return nil, start, end, err
	}
	log.WithFields(log.Fields{
		"file":      file,
		"locations": len(locs),
	}).Debug("Locations loaded")

	if start, err = timeutils.ParseDate(config.Viper.GetString(generator.PathStart)); err != nil {
		return nil, start, end, fmt.Errorf("invalid start date: %w", err)
	}
	if end, err = timeutils.ParseDate(config.Viper.GetString(generator.PathEnd)); err != nil {
		return nil, start, end, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return nil, start, end, timeutils.ErrIllegalRange
	}

	resolver, err := timezone.NewFromConfig()
	if err != nil {
		return nil, start, end, err
	}

	return &generator.Generator{
		Locations: locs,
		Resolver:  resolver,
		Source:    random.NewFromConfig(),
		Log:       config.NewLogger(),
		Metrics:   metrics.NewCollector(),
	}, start, end, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	log.WithError(err).Fatal("Generation failed!")
}
