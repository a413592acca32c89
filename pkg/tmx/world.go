package tmx

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// World is a parsed .world descriptor: a set of maps laid out in a shared
// coordinate space, listed explicitly and/or described by filename
// patterns.
type World struct {
	// Source is the path first used to load this world.
	Source string

	// Type is arbitrary user metadata, passed through unchanged.
	Type string

	// Maps are the explicitly listed maps.
	Maps []WorldMap

	// Patterns lay out maps whose placement is derived from their
	// filenames. Declaration order is significant: the first matching
	// pattern wins.
	Patterns []WorldPattern
}

// WorldMap places one map in a world. Width and Height are only present
// for explicit entries; pattern matching never determines size.
type WorldMap struct {
	FileName string  `json:"fileName"`
	X        int32   `json:"x"`
	Y        int32   `json:"y"`
	Width    *uint32 `json:"width,omitempty"`
	Height   *uint32 `json:"height,omitempty"`
}

// WorldPattern computes map placement from a filename. The regex's first
// two capture groups are the decimal x and y indices; placement is
// index*multiplier + offset with overflow-checked arithmetic.
type WorldPattern struct {
	RegExp      string `json:"regexp"`
	MultiplierX uint32 `json:"multiplierX"`
	MultiplierY uint32 `json:"multiplierY"`
	OffsetX     int32  `json:"offsetX"`
	OffsetY     int32  `json:"offsetY"`

	re *regexp.Regexp
}

type worldJSON struct {
	Maps     []WorldMap     `json:"maps"`
	Patterns []WorldPattern `json:"patterns"`
	Type     string         `json:"type"`
}

// ParseWorld parses a world descriptor. Each pattern regex is compiled
// exactly once, here.
func ParseWorld(data []byte, source string) (*World, error) {
	var raw worldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("tmx: parsing world %s: %w", source, err)
	}

	w := &World{
		Source:   source,
		Type:     raw.Type,
		Maps:     raw.Maps,
		Patterns: raw.Patterns,
	}
	for i := range w.Patterns {
		re, err := regexp.Compile(w.Patterns[i].RegExp)
		if err != nil {
			return nil, fmt.Errorf("tmx: world %s: pattern %d: %w", source, i, err)
		}
		w.Patterns[i].re = re
	}
	return w, nil
}

// Match applies one pattern to a candidate path. The second return value
// is false when the regex does not match at all; any other failure
// (missing or unparsable captures, placement overflow) is an error.
func (p *WorldPattern) Match(candidate string) (WorldMap, bool, error) {
	captures := p.re.FindStringSubmatch(candidate)
	if captures == nil {
		return WorldMap{}, false, nil
	}
	if len(captures) < 3 {
		return WorldMap{}, false, fmt.Errorf("tmx: pattern %q needs two capture groups, matched %d on %q",
			p.RegExp, len(captures)-1, candidate)
	}

	cx, err := strconv.ParseInt(captures[1], 10, 32)
	if err != nil {
		return WorldMap{}, false, fmt.Errorf("tmx: pattern capture x %q on %q: %w", captures[1], candidate, err)
	}
	cy, err := strconv.ParseInt(captures[2], 10, 32)
	if err != nil {
		return WorldMap{}, false, fmt.Errorf("tmx: pattern capture y %q on %q: %w", captures[2], candidate, err)
	}

	x, err := checkedPlacement(int32(cx), p.MultiplierX, p.OffsetX, "multiplierX", "offsetX")
	if err != nil {
		return WorldMap{}, false, err
	}
	y, err := checkedPlacement(int32(cy), p.MultiplierY, p.OffsetY, "multiplierY", "offsetY")
	if err != nil {
		return WorldMap{}, false, err
	}

	// Size is never derived from a pattern.
	return WorldMap{FileName: candidate, X: x, Y: y}, true, nil
}

// checkedPlacement computes capture*multiplier + offset in 32-bit space,
// failing with the name of the operation that overflowed.
func checkedPlacement(capture int32, multiplier uint32, offset int32, mulOp, addOp string) (int32, error) {
	product := int64(capture) * int64(multiplier)
	if product > math.MaxInt32 || product < math.MinInt32 {
		return 0, &OverflowError{Op: mulOp}
	}
	sum := product + int64(offset)
	if sum > math.MaxInt32 || sum < math.MinInt32 {
		return 0, &OverflowError{Op: addOp}
	}
	return int32(sum), nil
}

// MatchPath evaluates the world's patterns against one candidate path in
// declaration order and returns the placement computed by the first
// pattern whose regex matches. A candidate matched by no pattern fails
// with ErrNoPatternMatch.
func (w *World) MatchPath(candidate string) (WorldMap, error) {
	for i := range w.Patterns {
		wm, matched, err := w.Patterns[i].Match(candidate)
		if err != nil {
			return WorldMap{}, err
		}
		if matched {
			return wm, nil
		}
	}
	return WorldMap{}, fmt.Errorf("%w: %q", ErrNoPatternMatch, candidate)
}

// WorldMapResult is one entry of a batch match: either a placement or the
// error that candidate produced.
type WorldMapResult struct {
	WorldMap WorldMap
	Err      error
}

// MatchPaths evaluates every candidate independently, preserving input
// order. A failing candidate does not abort its siblings.
func (w *World) MatchPaths(candidates []string) []WorldMapResult {
	results := make([]WorldMapResult, len(candidates))
	for i, candidate := range candidates {
		wm, err := w.MatchPath(candidate)
		results[i] = WorldMapResult{WorldMap: wm, Err: err}
	}
	return results
}
