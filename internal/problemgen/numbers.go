package problemgen

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numPattern matches a numeric literal with optional sign, thousands
// separators and decimals: "-3", "1,250", "12.5", "1,000.75".
const numPattern = `-?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?`

// tolerance is the absolute difference under which two values are equal.
const tolerance = 0.001

var (
	spaceRe = regexp.MustCompile(`\s+`)
	numRe   = regexp.MustCompile(numPattern)
)

// parseNumber parses a literal matched by numPattern.
func parseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalizeText lowercases s and collapses runs of whitespace. It is the
// key used for duplicate detection across the bank.
func NormalizeText(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(strings.ToLower(s), " "))
}

// mathReplacer folds typographic variants into the ASCII forms the
// extractor patterns expect.
var mathReplacer = strings.NewReplacer(
	"−", "-", // minus sign
	"–", "-", // en dash
	"—", "-", // em dash
	" ", " ", // no-break space
	" ", " ", // thin space
	"⋅", "·", // dot operator
	"✕", "×",
	"∗", "*",
	"$", "",
	"€", "",
	"£", "",
)

// normalizeMath prepares free text for pattern matching.
func normalizeMath(s string) string {
	s = mathReplacer.Replace(s)
	s = strings.ToLower(s)
	return spaceRe.ReplaceAllString(s, " ")
}

// closeTo reports whether a and b are equal within tolerance.
func closeTo(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

// finite guards against results that overflowed or are undefined.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// countNumbers returns how many numeric literals appear in s.
func countNumbers(s string) int {
	return len(numRe.FindAllString(s, -1))
}
