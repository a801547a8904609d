/* Copyright 2021, Arkadiusz Zarychta */

package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli"

	"git.solver4all.com/azaryc2s/tspcut"
)

var validate = validator.New()

func main() {
	app := cli.NewApp()
	app.Name = "generator"
	app.Usage = "generate random euclidean TSP instances"
	app.Flags = []cli.Flag{
		cli.IntSliceFlag{Name: "n", Usage: "Number of nodes. Can be repeated"},
		cli.IntFlag{Name: "count", Value: 10, Usage: "Number of instances per node count"},
		cli.IntFlag{Name: "x", Value: 10000, Usage: "Max value on the x-axis"},
		cli.IntFlag{Name: "y", Value: 10000, Usage: "Max value on the y-axis"},
		cli.StringFlag{Name: "name", Value: "zarychta", Usage: "Name for the instance"},
		cli.Int64Flag{Name: "seed", Usage: "Random seed. By default the current time is used"},
	}
	app.Action = generate

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(c *cli.Context) error {
	nodes := c.IntSlice("n")
	if len(nodes) == 0 {
		return fmt.Errorf("at least one -n is required")
	}
	for _, n := range nodes {
		if err := validate.Var(n, "gte=5,lte=1000"); err != nil {
			return fmt.Errorf("node count %d must be within [5,1000]", n)
		}
	}
	xTo, yTo := c.Int("x"), c.Int("y")
	if err := validate.Var(xTo, "gt=0"); err != nil {
		return fmt.Errorf("x must be positive, got %d", xTo)
	}
	if err := validate.Var(yTo, "gt=0"); err != nil {
		return fmt.Errorf("y must be positive, got %d", yTo)
	}

	seed := time.Now().UnixNano()
	if c.IsSet("seed") {
		seed = c.Int64("seed")
	}
	rng := rand.New(rand.NewSource(seed))
	name := c.String("name")

	for l := 0; l < c.Int("count"); l++ {
		for _, n := range nodes {
			instName := fmt.Sprintf("%s_%d_%d", name, n, l)
			inst := tspcut.RandomInstance(instName, n, xTo, yTo, rng)
			if err := tspcut.WriteJSON(fmt.Sprintf("%s.json", instName), inst); err != nil {
				return err
			}
		}
	}
	return nil
}
