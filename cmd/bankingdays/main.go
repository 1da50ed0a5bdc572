package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bankingdays/bankingdays/internal/config"
	"github.com/bankingdays/bankingdays/pkg/bankingday"
	"github.com/bankingdays/bankingdays/pkg/holidays"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// app carries state shared by all subcommands
type app struct {
	configPath string
	logFile    string
	logLevel   string

	logger   *zap.Logger
	calendar *bankingday.Calendar
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "bankingdays",
		Short: "Banking day calendar",
		Long: "Check banking days and bank holidays and step across them.\n" +
			"Negative day counts must follow a -- separator, e.g. `bankingdays add -- 2024-01-08 -1`.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (default: search ./bankingdays.yaml, ~/.bankingdays, /etc/bankingdays)")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Write JSON logs to this file with rotation")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		checkCmd(a),
		holidayCmd(a),
		addCmd(a),
		subtractCmd(a),
		nextCmd(a),
		prevCmd(a),
		holidaysCmd(a),
		monthCmd(a),
	)

	return rootCmd
}

// setup loads the config, builds the logger and the calendar
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile := cfg.Log.File
	if a.logFile != "" {
		logFile = a.logFile
	}
	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}

	if logFile != "" {
		a.logger = initFileLogger(logFile, level)
	} else {
		a.logger, err = initLogger(level)
		if err != nil {
			return err
		}
	}

	registry, err := holidays.NewRegistry(cfg.HolidayConfiguration(), holidays.WithLogger(a.logger))
	if err != nil {
		a.logger.Error("Holiday configuration rejected", zap.Error(err))
		return fmt.Errorf("failed to build holiday registry: %w", err)
	}

	a.calendar = bankingday.New(registry, bankingday.WithLogger(a.logger))
	return nil
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	return zapLevel
}

func initLogger(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func initFileLogger(logFile string, level string) *zap.Logger {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core)
}
