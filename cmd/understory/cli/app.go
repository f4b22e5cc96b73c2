// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/muesli/termenv"

	"github.com/understory-cli/understory/lib/clock"
	"github.com/understory-cli/understory/lib/config"
	"github.com/understory-cli/understory/lib/period"
	"github.com/understory-cli/understory/lib/stats"
	"github.com/understory-cli/understory/lib/understory"
	"github.com/understory-cli/understory/lib/version"
)

// Globals are the flags accepted before the first command name.
type Globals struct {
	Format     string `json:"format"   flag:"format,f" desc:"output format: json, table, or yaml (default from config, else json)"`
	NoColor    bool   `json:"no_color" flag:"no-color" desc:"disable colored output"`
	ConfigPath string `json:"config"   flag:"config"   desc:"config file (YAML, or JSON with comments); overrides UNDERSTORY_CONFIG"`
	Verbose    bool   `json:"verbose"  flag:"verbose,v" desc:"log every API request to stderr"`
}

// App is the state shared by every command in one invocation. The
// configuration, API client, and output sink are built on first use,
// after global flags are parsed.
type App struct {
	Globals

	// Stdout and Stderr receive results and diagnostics.
	Stdout io.Writer
	Stderr io.Writer

	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// DefaultConfigPath is loaded when --config is not given. Parsing
	// the global flags resets Globals, so an embedder's config file
	// belongs here rather than in ConfigPath.
	DefaultConfigPath string

	// DotEnvPath is the dotenv file read beneath the environment.
	DotEnvPath string

	// Clock supplies the current time for token expiry and date
	// shorthand.
	Clock clock.Clock

	// Location places calendar boundaries (midnight, Monday).
	Location *time.Location

	// HTTPClient overrides the client built from the configured timeout.
	HTTPClient *http.Client

	level  *slog.LevelVar
	logger *slog.Logger

	config *config.Config
	client *understory.Client
	output *Output
}

// NewApp returns an App writing to stdout and stderr with process
// defaults for everything else.
func NewApp(stdout, stderr io.Writer) *App {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	return &App{
		Stdout:     stdout,
		Stderr:     stderr,
		LookupEnv:  os.LookupEnv,
		DotEnvPath: ".env",
		Clock:      clock.Real(),
		Location:   time.Local,
		level:      level,
		logger:     NewCommandLogger(stderr, level),
	}
}

// Logger returns the command logger. Its level follows --verbose.
func (app *App) Logger() *slog.Logger {
	return app.logger
}

// ApplyGlobals validates the global flags and applies the ones that
// take effect immediately. It is the root command's Before hook.
func (app *App) ApplyGlobals() error {
	if app.Verbose {
		app.level.Set(slog.LevelDebug)
	}
	if app.Format != "" && !config.ValidFormat(app.Format) {
		return Validation("unknown --format %q: use json, table, or yaml", app.Format)
	}
	return nil
}

// Config loads the configuration on first call.
func (app *App) Config() (*config.Config, error) {
	if app.config != nil {
		return app.config, nil
	}
	path := app.ConfigPath
	if path == "" {
		path = app.DefaultConfigPath
	}
	loaded, err := config.Load(config.LoadOptions{
		Path:       path,
		DotEnvPath: app.DotEnvPath,
		LookupEnv:  app.LookupEnv,
	})
	if err != nil {
		return nil, err
	}
	app.config = loaded
	return loaded, nil
}

// Client returns the API client, built on first call.
func (app *App) Client() (*understory.Client, error) {
	if app.client != nil {
		return app.client, nil
	}
	cfg, err := app.Config()
	if err != nil {
		return nil, err
	}

	httpClient := app.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.API.Timeout)}
	}

	client, err := understory.NewClient(understory.Config{
		BaseURL:      cfg.API.BaseURL,
		TokenURL:     cfg.API.TokenURL,
		Audience:     cfg.API.Audience,
		Scopes:       cfg.API.Scopes,
		ClientID:     cfg.Credentials.ClientID,
		ClientSecret: cfg.Credentials.ClientSecret,
		HTTPClient:   httpClient,
		Clock:        app.Clock,
		Logger:       app.logger,
		UserAgent:    version.UserAgent(),
	})
	if err != nil {
		return nil, err
	}
	app.client = client
	return client, nil
}

// Aggregator returns a stats aggregator over the API client, paging
// with the configured page size.
func (app *App) Aggregator() (*stats.Aggregator, error) {
	client, err := app.Client()
	if err != nil {
		return nil, err
	}
	cfg, err := app.Config()
	if err != nil {
		return nil, err
	}
	return stats.New(client, cfg.API.PageSize), nil
}

// Resolver returns a date resolver on the app's clock and location.
func (app *App) Resolver() *period.Resolver {
	return period.NewResolver(app.Clock, app.Location)
}

// Output returns the output sink. The format comes from --format, then
// the config file, then JSON. Color needs the config to allow it, no
// --no-color, no NO_COLOR in the environment, and a terminal on stdout.
// A config that fails to load leaves the defaults in place; the error
// surfaces from the first command that needs the API.
func (app *App) Output() *Output {
	if app.output != nil {
		return app.output
	}

	defaults := config.Default()
	if cfg, err := app.Config(); err == nil {
		defaults = cfg
	}

	format := app.Format
	if format == "" {
		format = defaults.Output.Format
	}
	color := defaults.Output.Color && !app.NoColor && !termenv.EnvNoColor() && isTerminal(app.Stdout)

	app.output = NewOutput(app.Stdout, app.Stderr, format, color)
	return app.output
}

// Write renders value with the app's output sink.
func (app *App) Write(value any) error {
	return app.Output().Write(value)
}

// Get fetches a single resource and writes it unchanged.
func (app *App) Get(ctx context.Context, path string, request understory.Request) error {
	client, err := app.Client()
	if err != nil {
		return err
	}
	body, err := client.Get(ctx, path, request)
	if err != nil {
		return err
	}
	return app.Write(body)
}

// List writes one page of a collection as returned by the API, or with
// all set, every item of every page from the cursor onward under a
// single items key.
func (app *App) List(ctx context.Context, path string, request understory.Request, all bool) error {
	if !all {
		return app.Get(ctx, path, request)
	}

	client, err := app.Client()
	if err != nil {
		return err
	}
	items, err := understory.List[json.RawMessage](client, path, request.Params).
		WithHeader(request.Header).
		Collect(ctx)
	if err != nil {
		return err
	}
	return app.Write(understory.Page[json.RawMessage]{Items: items})
}
