/* Copyright 2021, Arkadiusz Zarychta */

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"git.solver4all.com/azaryc2s/tspcut"
)

func main() {
	app := cli.NewApp()
	app.Name = "analyzer"
	app.Usage = "print a csv summary of the solved instances in a directory"
	app.ArgsUsage = "<dir>"
	app.Action = analyze

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func analyze(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("no directory passed")
	}
	dirName := c.Args().First()
	dir, err := os.ReadDir(dirName)
	if err != nil {
		return fmt.Errorf("couldn't open directory %s: %w", dirName, err)
	}
	fmt.Printf("Name,Status,Optimal,Time,Obj,LBound,Gap,RouteCost,Dimension,Cuts,Comment\n")
	for _, f := range dir {
		if !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		inst, err := tspcut.ReadInstance(filepath.Join(dirName, f.Name()))
		if err != nil {
			log.Printf("Couldn't read %s: %s\n", f.Name(), err.Error())
			continue
		}
		if inst.Solution == nil {
			continue
		}
		sol := *inst.Solution
		if sol.HasTour() {
			cost, err := tspcut.CheckTour(inst, sol.Route)
			if err != nil {
				sol.Comment += fmt.Sprintf(" ANALYZER: Error = %s", err.Error())
			} else if diff := cost - sol.RouteCost; diff > 1e-6 || diff < -1e-6 {
				sol.Comment += fmt.Sprintf(" ANALYZER: route cost %.4f differs from the reported %.4f", cost, sol.RouteCost)
			}
		}
		fmt.Printf("%s,%s,%t,%s,%.2f,%.2f,%.4f,%.2f,%d,%d,%s\n", inst.Name, sol.Status, sol.Optimal, sol.Time,
			sol.Obj, sol.LBound, sol.GapPercent, sol.RouteCost, inst.N(), len(inst.Cuts), strings.TrimSpace(sol.Comment))
	}
	return nil
}
