/* Copyright 2021, Arkadiusz Zarychta */

package tspcut

import (
	"fmt"
	"strings"
)

// CutFlags collects cuts from a repeatable command line flag. Every value
// is parsed with ParseCuts, malformed tokens end up in Skipped.
type CutFlags struct {
	Cuts    []Cut
	Skipped []string
}

func (f *CutFlags) String() string {
	parts := make([]string, len(f.Cuts))
	for i, c := range f.Cuts {
		parts[i] = c.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ","))
}

func (f *CutFlags) Set(value string) error {
	cuts, skipped := ParseCuts(value)
	f.Cuts = MergeCuts(f.Cuts, cuts)
	f.Skipped = append(f.Skipped, skipped...)
	return nil
}
