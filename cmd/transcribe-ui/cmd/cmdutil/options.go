// Package cmdutil holds the flags shared by every subcommand.
package cmdutil

import (
	"transcribe-ui/internal/app"
	"transcribe-ui/internal/config"
)

// Options are the root command's persistent flags
type Options struct {
	Verbose bool
	APIURL  string
}

// Config loads the environment and applies flag overrides on top
func (o *Options) Config() (*config.Config, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}
	if o.APIURL != "" {
		cfg.APIURL = config.NormalizeBaseURL(o.APIURL)
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CLI builds the backend client for one-shot commands
func (o *Options) CLI() (*app.CLI, func(), error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, nil, err
	}
	return app.InitializeCLI(cfg)
}
