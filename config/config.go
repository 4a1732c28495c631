package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ========== Injectable Constants =============================================

// To be injected during build
const (
	Version = "development"

	GitCommit = "unknown"

	Author = "Max Obermeier (themomax@icloud.com)"

	License = "MIT"
)

const (
	// ApplicationName is used for configuration paths and environment
	// variables.
	ApplicationName = "weathersim"

	// ConfigName is the configuration file's name without prefix.
	ConfigName = "config"

	// EnvFile is loaded into the process environment before the environment
	// is bound, if it exists.
	EnvFile = ".env"
)

var (
	// ConfigPaths specifies where to look for configuration files.
	ConfigPaths = [...]string{".", "/etc/" + ApplicationName, "$HOME/" + ApplicationName}
)

// ========== Config setup =====================================================

// Config paths
const (
	PathConfig      = "config"
	PathConfigPaths = "config_paths"
	PathAuthor      = "author"
	PathLicense     = "license"
)

var (
	// Viper holds the application's configuration. Flags registered on
	// RootCtx are bound to it.
	Viper = viper.New()

	// RootCtx is the root command. It may be used by other packages to register
	// flags and bind them to the viper configuration.
	RootCtx = &cobra.Command{
		Use:     ApplicationName,
		Short:   "Simple weather simulator",
		Long:    `weathersim generates believable weather observations (temperature, pressure, humidity and sky condition) for a set of locations over a range of dates.`,
		Version: Version + " (" + GitCommit + ")",
	}
)

func init() {
	// initialize config flags
	RootCtx.PersistentFlags().StringP(PathConfig, "c", ConfigName, "configuration file's name (without extension)")
	Viper.BindPFlag(PathConfig, RootCtx.PersistentFlags().Lookup(PathConfig))

	RootCtx.PersistentFlags().StringArray(PathConfigPaths, ConfigPaths[:], "directories in which to look for config files")
	Viper.BindPFlag(PathConfigPaths, RootCtx.PersistentFlags().Lookup(PathConfigPaths))

	RootCtx.PersistentFlags().String(PathAuthor, Author, "author name for copyright attribution")
	Viper.BindPFlag(PathAuthor, RootCtx.PersistentFlags().Lookup(PathAuthor))

	RootCtx.PersistentFlags().String(PathLicense, License, "name of license for the project")
	Viper.BindPFlag(PathLicense, RootCtx.PersistentFlags().Lookup(PathLicense))

	cobra.AddTemplateFunc("copyright", Copyright)
	RootCtx.SetVersionTemplate(`{{.Name}} version {{.Version}}
{{copyright}}
`)

	OnInitialize(loadConfiguration)
	OnInitialize(initializeLogrus)
}

// OnInitialize registers a function to be called after all the configuration-
// parameters have been collected, but before the command is executed.
func OnInitialize(callbacks ...func()) {
	cobra.OnInitialize(callbacks...)
}

// Copyright returns the attribution line shown with the version, as
// configured by the author and license flags.
func Copyright() string {
	return fmt.Sprintf("Copyright (c) %s, licensed under %s", Viper.GetString(PathAuthor), Viper.GetString(PathLicense))
}

// InvalidConfiguration is a public helper-function, that is to be used for
// complaining about invalid configuration.
func InvalidConfiguration(identifier string, expected interface{}) {
	log.WithFields(log.Fields{
		"identifier": identifier,
		"expected":   expected,
		"actual":     Viper.Get(identifier),
	}).Fatal("Invalid configuration!")
}

func loadConfiguration() {
	if err := godotenv.Load(EnvFile); err != nil {
		log.WithError(err).Debug("No .env file loaded")
	}

	// search for environment variables
	Viper.SetEnvPrefix(strings.ToUpper(ApplicationName))
	Viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Viper.AutomaticEnv()

	// read config file
	Viper.SetConfigName(Viper.GetString(PathConfig))
	paths := Viper.GetStringSlice(PathConfigPaths)
	for _, p := range paths {
		Viper.AddConfigPath(p)
	}

	if err := Viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.WithField("checked_directories", paths).Debug("No config file found!")
		} else {
			log.WithError(err).Fatal("Could not read file!")
		}
	}
}
