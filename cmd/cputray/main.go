// Package main is the entry point for cputray. It loads configuration,
// wires the process directory, sampling loop, window manager and tray,
// and runs until interrupted or asked to exit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/vitalis-app/cputray/internal/app"
	"github.com/vitalis-app/cputray/internal/autostart"
	"github.com/vitalis-app/cputray/internal/config"
	"github.com/vitalis-app/cputray/internal/geometry"
	"github.com/vitalis-app/cputray/internal/headless"
	"github.com/vitalis-app/cputray/internal/platform"
	"github.com/vitalis-app/cputray/internal/procdir"
	"github.com/vitalis-app/cputray/internal/sampler"
	"github.com/vitalis-app/cputray/internal/scheduler"
	"github.com/vitalis-app/cputray/internal/settings"
	"github.com/vitalis-app/cputray/internal/window"
)

var (
	// version is set at build time via -ldflags.
	version = "dev"

	configPath  = pflag.StringP("config", "c", "", "Path to configuration file (default: search standard locations)")
	showVersion = pflag.Bool("version", false, "Show version and exit")
	printConfig = pflag.Bool("print-config", false, "Print the effective configuration and exit")
	logLevel    = pflag.String("log-level", "", "Log level: debug, info, warn or error")
	autostartOp = pflag.String("autostart", "", "Login item: enable or disable")
)

func main() {
	pflag.Parse()

	if *showVersion {
		fmt.Printf("cputray %s\n", version)
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		path = config.Locate()
	}
	cfg, err := config.LoadLayered(config.CLIOverrides{LogLevel: *logLevel}, embeddedConfig, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *printConfig {
		data, err := config.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		os.Exit(0)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	if *autostartOp != "" {
		if err := runAutostart(*autostartOp, logger); err != nil {
			logger.Fatal("Autostart failed", zap.Error(err))
		}
		return
	}

	logger.Info("Starting cputray",
		zap.String("version", version),
		zap.String("config", path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := run(ctx, cancel, cfg, path, logger); err != nil {
		logger.Error("Stopped with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("cputray stopped")
}

// run wires every component and blocks until ctx is cancelled.
func run(ctx context.Context, cancel context.CancelFunc, cfg *config.Config, path string, logger *zap.Logger) error {
	plat := platform.New()
	toolkit := headless.NewToolkit(geometry.DefaultScreen, logger)
	icon := headless.NewTray(os.Stdout, logger)
	defer icon.Close()

	windows := window.NewManager(toolkit, plat, window.DefaultSpecs(cfg.WindowSizes()), logger)
	dir := procdir.NewSystem(cfg.Sampling.SettleDelay.Duration, logger)
	engine := sampler.NewEngine(dir, cfg.Sampling.TopProcesses, logger)
	store := settings.NewStore(cfg.Settings)

	cmds := app.New(app.Deps{
		Directory: dir,
		Sampler:   engine,
		Store:     store,
		Windows:   windows,
		Icon:      icon,
		Exit:      func(int) { cancel() },
		Logger:    logger,
	})

	sched := scheduler.New(engine, store, icon, windows, cfg.Sampling.StartupDelay.Duration, logger)

	logger.Info("cputray running",
		zap.String("platform", plat.Name()),
		zap.Int("refresh_interval", store.Read().RefreshInterval),
		zap.Duration("settle_delay", cfg.Sampling.SettleDelay.Duration))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Start(gctx)
		return nil
	})
	if path != "" {
		g.Go(func() error {
			return config.Watch(gctx, path, logger, func(next *config.Config) {
				for _, fixed := range store.Write(next.Settings) {
					logger.Warn("Setting out of range, using default", zap.String("field", fixed))
				}
				logger.Info("Settings reloaded from config file")
			})
		})
	}
	go runConsole(gctx, os.Stdin, os.Stdout, cmds, logger)

	return g.Wait()
}

// runAutostart enables or disables the login item for this executable.
func runAutostart(op string, logger *zap.Logger) error {
	m := autostart.New()
	switch op {
	case "enable":
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("resolving executable: %w", err)
		}
		if err := m.Install(exe); err != nil {
			return err
		}
		logger.Info("Autostart enabled", zap.String("location", m.Location()))
	case "disable":
		if err := m.Uninstall(); err != nil {
			return err
		}
		logger.Info("Autostart disabled", zap.String("location", m.Location()))
	default:
		return fmt.Errorf("unknown autostart operation %q (want enable or disable)", op)
	}
	return nil
}

// initLogger creates a zap logger based on the configuration.
// It outputs to both console (human-readable) and optionally a JSON log file.
// Console output goes to stderr so the tray status line owns stdout.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			fileCore := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			)
			cores = append(cores, fileCore)
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}
