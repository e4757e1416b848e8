package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/gridvm/internal/config"
	"github.com/specialistvlad/gridvm/internal/ctxlog"
	"github.com/specialistvlad/gridvm/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	registry  *registry.Registry
	model     *config.Model
	converter config.Converter
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// With no modules given, the core modules are registered.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, converter config.Converter, modules ...registry.Module) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	override := renderOverride(appConfig)
	model := config.NewModel()
	if appConfig.ConfigPath != "" {
		loaded, err := loader.Load(ctx, override, appConfig.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		model = loaded
		logger.Debug("Configuration loaded and translated into unified model.", "path", appConfig.ConfigPath)
	} else {
		override(model.Render)
	}
	addCommandLineOutput(model, appConfig)

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Create and populate the registry with Go encoders and sinks.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	if err := reg.ValidateModel(ctx, model); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:      outW,
		logger:    logger,
		registry:  reg,
		model:     model,
		converter: converter,
	}, nil
}

// renderOverride copies explicitly set command-line values over the render
// settings. The loader applies it before output arguments are evaluated.
func renderOverride(cfg *Config) config.RenderOverride {
	return func(r *config.Render) {
		if cfg.ProgramPath != "" {
			r.Program = cfg.ProgramPath
		}
		if cfg.Size > 0 {
			r.Size = cfg.Size
		}
		if cfg.Workers > 0 {
			r.Workers = cfg.Workers
		}
		if cfg.ChunkSize > 0 {
			r.ChunkSize = cfg.ChunkSize
		}
	}
}

// addCommandLineOutput adds a file output for a command-line output path, or
// the default one when the job has no outputs.
func addCommandLineOutput(model *config.Model, cfg *Config) {
	if cfg.OutputPath == "" && len(model.Outputs) > 0 {
		return
	}
	path := cfg.OutputPath
	if path == "" {
		path = config.DefaultOutput
	}
	format := cfg.Format
	if format == "" {
		format = config.DefaultFormat
	}
	model.Outputs = append(model.Outputs, config.FileOutput("cli", path, format))
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the resolved render job. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
