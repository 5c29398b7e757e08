/*
hv is the Apiary CLI, a demonstration of multi-actor coordination
through shared mutable state and condition-variable signaling.

The hive simulation runs three kinds of actors concurrently:

  - Bees: workers cycling between home and hunting
  - Hive: releases bees and accumulates a bounded honey counter
  - Bear: raids the hive when honey is high and the home guard is weak

Usage:

	hv <command> [arguments]

Common commands:

	hv run            Run the hive simulation
	hv watch          Tail a run's activity stream in a TUI
	hv philosophers   Run the dining-philosophers demo
	hv version        Print version information

See 'hv help <command>' for more information on a specific command.
*/
package main

import (
	"os"

	"github.com/deeklead/apiary/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
