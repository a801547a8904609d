/* Copyright 2021, Arkadiusz Zarychta */

package tspcut

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Cut forbids the undirected edge between cities A and B.
type Cut struct {
	A int
	B int
}

func (c Cut) String() string {
	return fmt.Sprintf("%d-%d", c.A, c.B)
}

// Key returns the cut with its endpoints ordered, so that a-b and b-a
// compare equal.
func (c Cut) Key() Cut {
	if c.B < c.A {
		return Cut{A: c.B, B: c.A}
	}
	return c
}

// InRange reports whether both endpoints are distinct cities of an
// n-city instance.
func (c Cut) InRange(n int) bool {
	return c.A >= 0 && c.A < n && c.B >= 0 && c.B < n && c.A != c.B
}

func (c Cut) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.A, c.B})
}

func (c *Cut) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("cut must be a pair of city indices: %w", err)
	}
	c.A, c.B = pair[0], pair[1]
	return nil
}

// ParseCuts reads a comma separated list of "a-b" tokens. Parsing is
// lenient: a token that is not two integers joined by a single '-', or that
// names the same city twice, is skipped and returned in skipped. Empty
// tokens are ignored. Duplicate edges (in either direction) are kept once,
// in order of first occurrence. Indices are not range checked.
func ParseCuts(spec string) (cuts []Cut, skipped []string) {
	seen := make(map[Cut]bool)
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		c, ok := parseCutToken(token)
		if !ok {
			skipped = append(skipped, token)
			continue
		}
		if seen[c.Key()] {
			continue
		}
		seen[c.Key()] = true
		cuts = append(cuts, c)
	}
	return cuts, skipped
}

func parseCutToken(token string) (Cut, bool) {
	parts := strings.Split(token, "-")
	if len(parts) != 2 {
		return Cut{}, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Cut{}, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Cut{}, false
	}
	if a == b {
		return Cut{}, false
	}
	return Cut{A: a, B: b}, true
}

// MergeCuts appends the cuts of extra to base, dropping duplicates.
func MergeCuts(base []Cut, extra []Cut) []Cut {
	seen := make(map[Cut]bool, len(base)+len(extra))
	var merged []Cut
	for _, list := range [][]Cut{base, extra} {
		for _, c := range list {
			if seen[c.Key()] {
				continue
			}
			seen[c.Key()] = true
			merged = append(merged, c)
		}
	}
	return merged
}
