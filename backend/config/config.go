package config

import (
	"github.com/hublist/hublist/hublist"
)

// WebAppConfig contains web-specific configuration
type WebAppConfig struct {
	Config      *hublist.Config
	Debug       bool
	Environment string
}

// NewWebAppConfig creates a new web app configuration
func NewWebAppConfig(cfg *hublist.Config, debug bool) *WebAppConfig {
	environment := "production"
	if debug {
		environment = "development"
	}

	return &WebAppConfig{
		Config:      cfg,
		Debug:       debug,
		Environment: environment,
	}
}

// GetDatabaseConfig returns the database configuration
func (w *WebAppConfig) GetDatabaseConfig() hublist.DBConfig {
	return w.Config.DB
}

// GetWebConfig returns the web configuration
func (w *WebAppConfig) GetWebConfig() hublist.WebConfig {
	return w.Config.Web
}

// SpacesConfig represents spaces configuration
type SpacesConfig struct {
	Key       string
	Secret    string
	Region    string
	Bucket    string
	AssetRoot string
}

// GetSpacesConfig returns the spaces configuration
func (w *WebAppConfig) GetSpacesConfig() SpacesConfig {
	return SpacesConfig{
		Key:       w.Config.Spaces.Key,
		Secret:    w.Config.Spaces.Secret,
		Region:    w.Config.Spaces.Region,
		Bucket:    w.Config.Spaces.Bucket,
		AssetRoot: w.Config.Spaces.AssetRoot,
	}
}

// GetLogConfig returns the log configuration
func (w *WebAppConfig) GetLogConfig() hublist.LogConfig {
	return w.Config.Log
}
