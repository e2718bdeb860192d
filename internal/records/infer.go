package records

import (
	"math/big"
	"regexp"
	"strconv"
)

var (
	inferNumber = regexp.MustCompile(`^-?(?:0|[1-9]\d*)?(?:\.\d+)?(?:e[-+]?[1-9]\d*)?$`)
	inferBigInt = regexp.MustCompile(`^-?(?:0|[1-9]\d*)n$`)
)

// Infer converts a string that looks like a boolean, null, number or big
// integer into that type: "true"/"false" give bool, "null"/"undefined" give
// nil, "12.5" and "1e3" give float64 and "123n" gives *big.Int. With
// parseURLBools, "yes"/"on" and "no"/"off" are booleans too. Anything else
// is returned unchanged.
func Infer(input string, parseURLBools bool) interface{} {
	if input == "" {
		return input
	}

	switch {
	case input == "true" || (parseURLBools && (input == "yes" || input == "on")):
		return true
	case input == "false" || (parseURLBools && (input == "no" || input == "off")):
		return false
	case input == "null" || input == "undefined":
		return nil
	}

	if inferNumber.MatchString(input) {
		if f, err := strconv.ParseFloat(input, 64); err == nil {
			return f
		}
		return input
	}

	if inferBigInt.MatchString(input) {
		n, ok := new(big.Int).SetString(input[:len(input)-1], 10)
		if ok {
			return n
		}
	}

	return input
}
