package silhouette

import "github.com/pkg/errors"

type Mode int

const (
	// ModeHull produces a single convex hull shape.
	ModeHull Mode = iota
	// ModeChain produces a static collision object made of edge boxes.
	ModeChain
)

func (m Mode) String() string {
	switch m {
	case ModeHull:
		return "hull"
	case ModeChain:
		return "chain"
	}
	return "unknown"
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "hull":
		return ModeHull, nil
	case "chain":
		return ModeChain, nil
	}
	return 0, errors.Errorf("unknown mode %q", s)
}
