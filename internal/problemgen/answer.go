package problemgen

import (
	"math"
	"regexp"
	"strings"
)

// optionValue is the numeric reading of an answer option. places is the
// number of decimal places the option was written with.
type optionValue struct {
	value  float64
	places int
	ok     bool
}

var (
	// "x = 5", "n=12"
	optionAssignRe = regexp.MustCompile(`^[a-z]\s*=\s*`)
	// "2 1/2", "-3/4", "1,250.5"
	optionNumberRe = regexp.MustCompile(`^(-?\d+)\s+(\d+)/(\d+)|^(-?\d+)/(\d+)|^(` + numPattern + `)`)
	// Anything left after the number must be a unit, never another number.
	optionUnitRe = regexp.MustCompile(`^[\pL\s%°²³.'"/]*$`)
)

// parseOption extracts the numeric value of an answer option, ignoring
// currency, percent signs, trailing units and a leading "x =".
func parseOption(s string) optionValue {
	s = strings.TrimSpace(normalizeMath(s))
	s = optionAssignRe.ReplaceAllString(s, "")

	m := optionNumberRe.FindStringSubmatch(s)
	if m == nil {
		return optionValue{}
	}
	if rest := s[len(m[0]):]; !optionUnitRe.MatchString(rest) {
		return optionValue{}
	}

	switch {
	case m[1] != "":
		whole, ok1 := parseNumber(m[1])
		n, ok2 := parseNumber(m[2])
		d, ok3 := parseNumber(m[3])
		if !ok1 || !ok2 || !ok3 || d == 0 {
			return optionValue{}
		}
		frac := n / d
		if strings.HasPrefix(m[1], "-") {
			frac = -frac
		}
		return optionValue{value: whole + frac, ok: true}
	case m[4] != "":
		v, ok := parseOperand(m[4] + "/" + m[5])
		return optionValue{value: v, ok: ok}
	default:
		v, ok := parseNumber(m[6])
		places := 0
		if _, dec, found := strings.Cut(m[6], "."); found {
			places = len(dec)
		}
		return optionValue{value: v, places: places, ok: ok}
	}
}

// matches reports whether computed agrees with the option within tolerance.
func (o optionValue) matches(computed float64) bool {
	return o.ok && closeTo(o.value, computed)
}

// roundsTo reports whether computed, rounded to the option's own decimal
// places, equals the option. "28.27" for 9π is the usual case.
func (o optionValue) roundsTo(computed float64) bool {
	if !o.ok || o.places == 0 {
		return false
	}
	scale := math.Pow(10, float64(o.places))
	return closeTo(math.Round(computed*scale)/scale, o.value)
}

func parseOptions(options []string) []optionValue {
	out := make([]optionValue, len(options))
	for i, o := range options {
		out[i] = parseOption(o)
	}
	return out
}

// matchingOptions returns the indices of options equal to computed. Rounded
// options are only consulted when nothing matches exactly and computed has
// no short decimal form, so a rounded distractor never outranks the exact
// answer.
func matchingOptions(values []optionValue, computed float64) []int {
	var idx []int
	for i, v := range values {
		if v.matches(computed) {
			idx = append(idx, i)
		}
	}
	if len(idx) > 0 || !nonTerminating(computed) {
		return idx
	}
	for i, v := range values {
		if v.roundsTo(computed) {
			idx = append(idx, i)
		}
	}
	return idx
}

// maxExactPlaces is the number of decimal places past which a computed
// value is treated as irrational or repeating.
const maxExactPlaces = 6

func nonTerminating(v float64) bool {
	scaled := v * math.Pow(10, maxExactPlaces)
	return math.Abs(scaled-math.Round(scaled)) > 1e-3
}
