package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownPreset is returned by ByName.
var ErrUnknownPreset = errors.New("unknown strategy preset")

// Easy takes the biggest capture, ties broken by scan order.
func Easy() Strategy { return easy(0) }

// Medium is Easy but steers away from cells that hand over a corner.
func Medium() Strategy { return medium(0) }

// Hard grabs corners first, then the biggest capture.
func Hard() Strategy { return hard(0) }

func easy(w int) Strategy {
	return Chain(MaxCapture{Workers: w}, UpperLeftMost{})
}

func medium(w int) Strategy {
	return Chain(MaxCapture{Workers: w}, AvoidCornerAdjacent{}, UpperLeftMost{})
}

func hard(w int) Strategy {
	return Chain(PreferCorner{}, MaxCapture{Workers: w}, UpperLeftMost{})
}

var presets = map[string]func(workers int) Strategy{
	"easy":   easy,
	"medium": medium,
	"hard":   hard,
}

// ByName resolves a preset; workers is passed to MaxCapture.
func ByName(name string, workers int) (Strategy, error) {
	mk, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return mk(workers), nil
}

// Names lists the preset names in sorted order.
func Names() []string {
	out := make([]string, 0, len(presets))
	for n := range presets {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
