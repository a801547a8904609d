/* Copyright 2021, Arkadiusz Zarychta */

package tspcut

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseTSPLIB reads a TSPLIB file with a NODE_COORD_SECTION. Only the
// EUC_2D and CEIL_2D edge weight types are accepted; the solver always
// works on exact euclidean distances.
func ParseTSPLIB(r io.Reader) (*Instance, error) {
	inst := &Instance{Type: "TSP"}
	scanner := bufio.NewScanner(r)
	line := 0
	metaData := true
	for scanner.Scan() {
		line++
		t := strings.TrimSpace(scanner.Text())
		if t == "" {
			continue
		}
		if t == "EOF" {
			break
		}
		if metaData {
			if t == "NODE_COORD_SECTION" {
				metaData = false
				continue
			}
			lineSplit := strings.SplitN(t, ":", 2)
			if len(lineSplit) != 2 {
				return nil, fmt.Errorf("line %d: expected KEY : VALUE, got %q", line, t)
			}
			key := strings.TrimSpace(lineSplit[0])
			value := strings.TrimSpace(lineSplit[1])
			switch key {
			case "NAME":
				inst.Name = value
			case "COMMENT":
				inst.Comment = value
			case "TYPE":
				if value != "TSP" {
					return nil, fmt.Errorf("line %d: unsupported problem type %s", line, value)
				}
			case "DIMENSION":
				d, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: couldn't parse the dimension: %w", line, err)
				}
				inst.Dimension = d
			case "EDGE_WEIGHT_TYPE":
				if value != "EUC_2D" && value != "CEIL_2D" {
					return nil, fmt.Errorf("line %d: edge weight type %s is not supported", line, value)
				}
				inst.EdgeWeightType = value
			}
			continue
		}
		xyString := strings.Fields(t)
		if len(xyString) != 3 {
			return nil, fmt.Errorf("line %d: expected 'index x y', got %q", line, t)
		}
		x, err := strconv.ParseFloat(xyString[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: error parsing coordinate x: %w", line, err)
		}
		y, err := strconv.ParseFloat(xyString[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: error parsing coordinate y: %w", line, err)
		}
		inst.NodeCoordinates = append(inst.NodeCoordinates, []float64{x, y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if metaData {
		return nil, fmt.Errorf("no NODE_COORD_SECTION found")
	}
	if inst.Dimension == 0 {
		inst.Dimension = len(inst.NodeCoordinates)
	}
	if inst.EdgeWeightType == "" {
		inst.EdgeWeightType = "EUC_2D"
	}
	return inst, inst.Validate()
}
