// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/hellocounter/config"
	"github.com/ava-labs/hellocounter/consts"
	"github.com/ava-labs/hellocounter/greeter"
	"github.com/ava-labs/hellocounter/pebble"
	"github.com/ava-labs/hellocounter/runtime"
	"github.com/ava-labs/hellocounter/state"

	htrace "github.com/ava-labs/hellocounter/trace"
)

const (
	simulatorFolder = ".greeter-simulator"
	dbFolder        = "db"
	logsFolder      = "logs"
)

type simulator struct {
	logLevel   string
	baseDir    string
	configPath string
	cleanup    bool
	metrics    bool

	log     logging.Logger
	tracer  trace.Tracer
	db      state.Mutable
	closers []io.Closer
	rt      *runtime.Runtime

	gatherers prometheus.Gatherers
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&simulator{})
}

func newRootCmd(s *simulator) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greeter-cli",
		Short: "Hello world counter program simulator",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return s.Init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			defer s.Close()
			if !s.metrics {
				return nil
			}
			return s.writeMetrics(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cobra.EnablePrefixMatching = true
	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level (overrides config)")
	cmd.PersistentFlags().StringVar(&s.baseDir, "dir", "", "simulator directory (default $HOME/"+simulatorFolder+")")
	cmd.PersistentFlags().StringVar(&s.configPath, "config", "", "path to a JSON config file")
	cmd.PersistentFlags().BoolVar(&s.cleanup, "cleanup", false, "remove simulator directory on exit")
	cmd.PersistentFlags().BoolVar(&s.metrics, "metrics", false, "print prometheus metrics to stderr on exit")

	cmd.AddCommand(
		newAccountCmd(s),
		newInvokeCmd(s),
		newReadCmd(s),
		newRunCmd(s),
	)
	return cmd
}

// Init opens the simulator directory. Anything opened before a failure is
// released again.
func (s *simulator) Init() (err error) {
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	if s.baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		s.baseDir = path.Join(homeDir, simulatorFolder)
	}

	var configBytes []byte
	if s.configPath != "" {
		b, err := os.ReadFile(s.configPath)
		if err != nil {
			return err
		}
		configBytes = b
	}
	cfg, err := config.New(configBytes)
	if err != nil {
		return err
	}
	if s.logLevel != "" {
		cfg.LogLevel, err = logging.ToLevel(s.logLevel)
		if err != nil {
			return err
		}
	}

	loggingConfig := logging.Config{}
	loggingConfig.LogLevel = cfg.LogLevel
	loggingConfig.DisplayLevel = logging.Warn
	loggingConfig.Directory = path.Join(s.baseDir, logsFolder)
	loggingConfig.LogFormat = logging.JSON
	loggingConfig.LoggerName = consts.Name
	loggingConfig.MaxSize = 8
	loggingConfig.MaxFiles = 4
	loggingConfig.MaxAge = 7
	log := newLogger(loggingConfig)
	s.log = log

	db, dbRegistry, err := pebble.New(path.Join(s.baseDir, dbFolder), cfg.Pebble)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, db)
	s.gatherers = append(s.gatherers, dbRegistry)

	if err := s.setup(log, db, cfg); err != nil {
		return err
	}
	s.log.Info("simulator initialized",
		zap.String("dir", s.baseDir),
		zap.Stringer("logLevel", cfg.LogLevel),
		zap.String("arithmetic", string(cfg.Arithmetic)),
	)
	return nil
}

// setup wires the runtime on top of [db] and deploys the greeter program.
func (s *simulator) setup(log logging.Logger, db state.Mutable, cfg *config.Config) error {
	tracer, err := htrace.New(&cfg.Trace)
	if err != nil {
		return err
	}
	s.closers = append(s.closers, tracer)

	registry := prometheus.NewRegistry()
	rt, err := runtime.New(log, tracer, db, registry)
	if err != nil {
		return err
	}
	if err := rt.Register(consts.ProgramID, greeter.New(log, cfg.Arithmetic)); err != nil {
		return err
	}

	s.log = log
	s.tracer = tracer
	s.db = db
	s.rt = rt
	s.gatherers = append(s.gatherers, registry)
	return nil
}

// writeMetrics prints every gathered metric family in the prometheus text
// format.
func (s *simulator) writeMetrics(w io.Writer) error {
	families, err := s.gatherers.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return err
		}
	}
	return nil
}

// Close releases everything opened by [Init]. It is safe to call more than
// once.
func (s *simulator) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close simulator: %s\n", err)
		}
	}
	s.closers = nil
	if s.log != nil {
		s.log.Stop()
		s.log = nil
	}

	if s.cleanup && s.baseDir != "" {
		if err := os.RemoveAll(s.baseDir); err != nil {
			fmt.Fprintf(os.Stderr, "failed to remove simulator directory: %s\n", err)
		}
	}
}
