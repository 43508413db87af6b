// deltakin solves inverse and forward kinematics of a delta parallel robot.
//
// Usage:
//
//	deltakin <command> [flags]
//
// Commands:
//
//	demo        IK of (0, 0, -500), then FK back from the joint angles
//	ik          joint angles for cartesian targets
//	fk          cartesian position for joint angles
//	workspace   reachable XY slice at a fixed height, optionally plotted
//
// Global flags:
//
//	--config string       robot description, .cfg or .toml (default: built-in demo robot)
//	--log-format string   text, json or logfmt
//	--workers int         poses solved in parallel (default: GOMAXPROCS)
//	--metrics             print Prometheus metrics after the run
//	-v, --verbose         debug logging
//
// Examples:
//
//	# Demonstration with the built-in geometry
//	deltakin demo
//
//	# Solve every [pose <name>] section of a config file
//	deltakin ik --config robot.cfg
//
//	# Plot the workspace at z = -550 mm
//	deltakin workspace --z -550 --step 5 --out slice.png
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := execute(ctx, os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
