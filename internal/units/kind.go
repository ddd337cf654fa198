package units

import (
	"fmt"
	"strings"
)

// Kind describes how a measurement unit is interpreted.
type Kind string

const (
	KindWeight Kind = "weight"
	KindVolume Kind = "volume"
	KindCount  Kind = "count"
)

func (k Kind) String() string {
	return string(k)
}

// ParseKind accepts the lower-case kind names plus a few common synonyms.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "weight", "mass":
		return KindWeight, nil
	case "volume":
		return KindVolume, nil
	case "count", "":
		return KindCount, nil
	default:
		return "", fmt.Errorf("unknown unit kind %q (expected weight, volume, or count)", value)
	}
}
