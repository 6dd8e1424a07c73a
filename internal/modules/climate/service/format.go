package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatAverage renders v with 4 significant digits, keeping a trailing ".0"
// on whole numbers ("62.58", "70.0", "1.235e+05").
func formatAverage(v *float64) string {
	if v == nil {
		return "None"
	}
	s := strconv.FormatFloat(*v, 'g', 4, 64)
	if math.IsInf(*v, 0) || math.IsNaN(*v) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// formatReading renders a MIN/MAX aggregate in its stored representation:
// integers as "71", reals as "71.0" or "68.9".
func formatReading(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !math.IsInf(x, 0) && !math.IsNaN(x) && !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
