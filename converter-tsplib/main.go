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
	app.Name = "converter-tsplib"
	app.Usage = "convert the .tsp files of a directory into instance json files"
	app.ArgsUsage = "<dir>"
	app.Action = convert

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func convert(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("no directory passed")
	}
	targetDir := c.Args().First()
	files, err := os.ReadDir(targetDir)
	if err != nil {
		return err
	}
	for _, f := range files {
		if !strings.HasSuffix(f.Name(), ".tsp") {
			continue
		}
		fileName := filepath.Join(targetDir, f.Name())
		fmt.Println(fileName)
		inst, err := readTSPLIB(fileName)
		if err != nil {
			fmt.Printf("Skipping %s: %s\n", fileName, err.Error())
			continue
		}
		if err := tspcut.WriteJSON(strings.TrimSuffix(fileName, ".tsp")+".json", inst); err != nil {
			return err
		}
	}
	return nil
}

func readTSPLIB(fileName string) (*tspcut.Instance, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return tspcut.ParseTSPLIB(file)
}
