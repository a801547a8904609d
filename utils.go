/* Copyright 2021, Arkadiusz Zarychta */

package tspcut

import (
	"encoding/json"
	"os"
	"regexp"
)

var (
	numbers  = regexp.MustCompile(`\s*([-]?[0-9]+(\.[0-9]+)?(e[-+]?[0-9]+)?),\s+([-]?[0-9]+(\.[0-9]+)?(e[-+]?[0-9]+)?)(,)?`)
	brackets = regexp.MustCompile(`\[((\s*[-]?[0-9]+(\.[0-9]+)?(e[-+]?[0-9]+)?,)*[-]?[0-9]+(\.[0-9]+)?(e[-+]?[0-9]+)?)\s+\](,?)`)
	opening  = regexp.MustCompile(`\[\s+([-]?[0-9])`)
)

// SanitizeJsonArrayLineBreaks puts numeric json arrays produced by
// json.MarshalIndent on a single line.
func SanitizeJsonArrayLineBreaks(json string) string {
	res := json
	for numbers.MatchString(res) {
		res = numbers.ReplaceAllString(res, "$1,$4$7")
	}
	res = opening.ReplaceAllString(res, "[$1")
	for brackets.MatchString(res) {
		res = brackets.ReplaceAllString(res, "[$1]$7")
	}
	return res
}

// ReadInstance loads an instance json file.
func ReadInstance(fileName string) (*Instance, error) {
	instStr, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	var inst Instance
	if err = json.Unmarshal(instStr, &inst); err != nil {
		return nil, err
	}
	return &inst, nil
}

// WriteJSON writes v indented, with numeric arrays compacted.
func WriteJSON(fileName string, v interface{}) error {
	jsonInst, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	jsonInst = []byte(SanitizeJsonArrayLineBreaks(string(jsonInst)))
	return os.WriteFile(fileName, jsonInst, 0644)
}
