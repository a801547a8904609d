/* Copyright 2021, Arkadiusz Zarychta */

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"git.solver4all.com/azaryc2s/tspcut"
	"git.solver4all.com/azaryc2s/tspcut/config"
	"git.solver4all.com/azaryc2s/tspcut/engine"
	"git.solver4all.com/azaryc2s/tspcut/engine/bnb"
	"git.solver4all.com/azaryc2s/tspcut/engine/gophersat"
	"git.solver4all.com/azaryc2s/tspcut/tsp"
)

var cuts tspcut.CutFlags

func main() {
	app := cli.NewApp()
	app.Name = "solver"
	app.Usage = "solve a TSP instance exactly, optionally forbidding edges"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "input", Value: "input.json", Usage: "Path to the input instance"},
		cli.StringFlag{Name: "output", Usage: "Path to the output file. By default <input>_sol.json is written"},
		cli.GenericFlag{Name: "cuts", Value: &cuts, Usage: "Forbidden edges as \"a-b, c-d\". Can be repeated"},
		cli.Float64Flag{Name: "time", Usage: "Time limit in seconds (overrides the config)"},
		cli.Float64Flag{Name: "gap", Usage: "Optimality gap tolerance in percent (overrides the config)"},
		cli.StringFlag{Name: "engine", Usage: "Solver engine, gophersat or bnb (overrides the config)"},
		cli.StringFlag{Name: "config", Usage: "Path to a yaml config file"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("time") {
		cfg.TimeLimit = c.Float64("time")
	}
	if c.IsSet("gap") {
		cfg.GapTolerance = c.Float64("gap")
	}
	if c.IsSet("engine") {
		cfg.Engine = c.String("engine")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	inputF := c.String("input")
	inst, err := tspcut.ReadInstance(inputF)
	if err != nil {
		return err
	}
	for _, s := range cuts.Skipped {
		logger.Warn("skipping malformed cut", zap.String("token", s))
	}
	inst.Cuts = tspcut.MergeCuts(inst.Cuts, cuts.Cuts)

	e, err := newEngine(cfg.Engine, logger)
	if err != nil {
		return err
	}
	solver := tsp.NewSolver(e, logger)
	result, err := solver.Solve(inst, tsp.Params{TimeLimit: cfg.TimeLimit, GapTolerance: cfg.GapTolerance})
	if err != nil {
		return err
	}
	result.System = tspcut.CollectSysInfo()
	inst.Solution = result

	outputF := c.String("output")
	if outputF == "" {
		outputF = strings.TrimSuffix(inputF, ".json") + "_sol.json"
	}
	if err := tspcut.WriteJSON(outputF, inst); err != nil {
		return err
	}
	logger.Info("solution written", zap.String("file", outputF))

	fmt.Print(result.String())
	return nil
}

func newEngine(name string, logger *zap.Logger) (engine.Engine, error) {
	switch name {
	case "gophersat":
		return gophersat.New(logger), nil
	case "bnb":
		return bnb.New(logger), nil
	}
	return nil, fmt.Errorf("unknown engine %s", name)
}
