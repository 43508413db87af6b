// Root command and shared run state
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/byq77/DeltaKinematics/pkg/batch"
	"github.com/byq77/DeltaKinematics/pkg/config"
	"github.com/byq77/DeltaKinematics/pkg/kinematics"
	"github.com/byq77/DeltaKinematics/pkg/log"
	"github.com/byq77/DeltaKinematics/pkg/metrics"
)

var version = "dev"

// demoDimensions is the robot used when no --config is given.
var demoDimensions = kinematics.Dimensions[float64]{
	BaseSide:              660,
	PlatformSide:          90,
	UpperArm:              200,
	LowerArm:              530,
	ParallelogramWidth:    70,
	MaxNegativeAngle:      config.DefaultMaxNegativeAngle,
	MinParallelogramAngle: config.DefaultMinParallelogramAngle,
}

// app holds flag values and the per-run logger shared by all commands.
type app struct {
	configPath  string
	verbose     bool
	logFormat   string
	workers     int
	dumpMetrics bool

	runID   string
	log     *log.Logger
	metrics *metrics.SolverMetrics
}

// execute builds the command tree and runs it with args. A nil m records
// into the process wide metrics.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, m *metrics.SolverMetrics) error {
	if m == nil {
		m = metrics.GlobalMetrics()
	}
	a := &app{metrics: m}

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	// setup ran only if a command was dispatched
	if a.dumpMetrics && a.log != nil {
		fmt.Fprint(stdout, a.metrics.Gather())
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "deltakin",
		Short: "Delta robot inverse and forward kinematics",
		Long: `deltakin solves the closed-form inverse and forward kinematics of a 3-DOF
delta parallel robot with revolute inputs and parallelogram lower legs.

The robot geometry comes from a Klipper-style .cfg file or a TOML file given
with --config ([delta_robot] section). Without --config the built-in demo
robot is used.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "robot description file (.cfg or .toml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text (default), json, logfmt")
	flags.IntVar(&a.workers, "workers", 0, "poses solved in parallel (default: GOMAXPROCS)")
	flags.BoolVar(&a.dumpMetrics, "metrics", false, "print Prometheus metrics after the run")

	root.AddCommand(a.demoCommand())
	root.AddCommand(a.ikCommand())
	root.AddCommand(a.fkCommand())
	root.AddCommand(a.workspaceCommand())

	return root
}

// setup configures logging for the run and tags it with a fresh run id.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logger := log.New("deltakin")
	logger.SetWriter(cmd.ErrOrStderr())
	log.ConfigureFromEnv(logger)

	if a.logFormat != "" {
		switch strings.ToLower(a.logFormat) {
		case "text", "json", "logfmt":
			logger.SetFormat(log.ParseFormat(a.logFormat))
		default:
			return fmt.Errorf("unknown log format %q (want text, json or logfmt)", a.logFormat)
		}
	}
	if a.verbose {
		logger.SetLevel(log.DEBUG)
	}

	a.runID = uuid.NewString()
	a.log = logger.With(log.Fields{"run_id": a.runID})
	cmd.SetContext(log.NewContext(cmd.Context(), a.log))

	a.log.WithFields(log.Fields{
		"command": cmd.Name(),
		"version": version,
	}).Debug("run started")
	return nil
}

// loadRobot returns an engine for the configured geometry and the named
// poses of the config file, if any.
func (a *app) loadRobot() (*kinematics.Engine[float64], []config.NamedPose, error) {
	dim := demoDimensions
	var poses []config.NamedPose

	if a.configPath != "" {
		cfg, err := config.LoadFile(a.configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load config %s: %w", a.configPath, err)
		}
		if dim, err = config.LoadDimensions(cfg); err != nil {
			return nil, nil, fmt.Errorf("load config %s: %w", a.configPath, err)
		}
		if poses, err = config.LoadPoses(cfg); err != nil {
			return nil, nil, fmt.Errorf("load config %s: %w", a.configPath, err)
		}
		for _, name := range cfg.GetUnusedSections() {
			a.log.WithField("section", name).Warn("unused config section")
		}
		if err := cfg.CheckUnusedOptions(); err != nil {
			a.log.WithError(err).Warn("config has unused options")
		}
	}

	if err := dim.Validate(); err != nil {
		return nil, nil, err
	}
	a.log.WithFields(log.Fields{
		"base_side":     dim.BaseSide,
		"platform_side": dim.PlatformSide,
		"upper_arm":     dim.UpperArm,
		"lower_arm":     dim.LowerArm,
	}).Debug("robot geometry")

	return kinematics.New(dim), poses, nil
}

func (a *app) newRunner(engine *kinematics.Engine[float64]) *batch.Runner[float64] {
	return batch.New(engine, batch.Options{
		Workers: a.workers,
		Logger:  a.log.WithPrefix("batch"),
		Metrics: a.metrics,
	})
}
