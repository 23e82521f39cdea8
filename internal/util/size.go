package util

import (
	"regexp"
	"strconv"
	"strings"
)

var sizePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(ml|lt|l|kg|gms|gm|gr)\s*$`)

// PackageSize is the parsed trailing size suffix of a product name,
// e.g. "Bakeel 250ml" -> {250, "ml", true}. Litres convert to ml and
// kilograms to gms so sizes compare across units within a family.
// Names without a recognizable suffix report Found=false; callers sort
// those last rather than treating them as errors.
type PackageSize struct {
	Value float64
	Unit  string
	Found bool
}

func ParseSize(name string) PackageSize {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return PackageSize{}
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return PackageSize{}
	}

	unit := strings.ToLower(m[2])
	switch unit {
	case "lt", "l":
		value *= 1000
		unit = "ml"
	case "kg":
		value *= 1000
		unit = "gms"
	case "gm", "gr":
		unit = "gms"
	}

	return PackageSize{Value: value, Unit: unit, Found: true}
}

// BaseName strips the trailing package-size suffix, so "Guru 500gms" and
// "Guru 1kg" both reduce to "Guru".
func BaseName(name string) string {
	return strings.TrimSpace(sizePattern.ReplaceAllString(strings.TrimSpace(name), ""))
}
