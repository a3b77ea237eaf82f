package problemgen

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnrecognized is returned by ExtractAnswer when no supported pattern
// can be found in the question text.
var ErrUnrecognized = errors.New("no computable expression found")

// matcher is one extraction strategy. match receives text already passed
// through normalizeMath and reports whether it recognised an expression.
type matcher struct {
	name  string
	match func(text string) (float64, bool)
}

// matchers are tried in order; the first hit wins.
var matchers = []matcher{
	{name: "arithmetic", match: matchArithmetic},
	{name: "percent", match: matchPercent},
	{name: "exponent", match: matchExponent},
	{name: "algebra", match: matchAlgebra},
	{name: "geometry", match: matchGeometry},
	{name: "word-template", match: matchWordTemplate},
}

// ExtractAnswer independently recomputes the numeric answer to a question
// from its text. Only a closed set of phrasings is recognised: two-operand
// arithmetic, percentages, powers, single-unknown linear equations, basic
// geometry formulas and a handful of word-problem templates. Anything else
// yields ErrUnrecognized.
func ExtractAnswer(text string) (float64, error) {
	_, v, err := extract(text)
	return v, err
}

// extract is ExtractAnswer that also reports which matcher fired.
func extract(text string) (string, float64, error) {
	t := normalizeMath(text)
	for _, m := range matchers {
		if v, ok := m.match(t); ok && finite(v) {
			return m.name, v, nil
		}
	}
	return "", 0, ErrUnrecognized
}

// operand is a number or an unspaced fraction such as "3/4".
const operand = `(` + numPattern + `(?:/\d+)?)`

// operator is a symbolic operator, or a spaced word form of one.
const operator = `(?:\s*([+*×÷·-])\s*|\s+(/|x|plus|minus|times|multiplied by|divided by)\s+)`

var (
	arithRe = regexp.MustCompile(operand + operator + operand)

	percentRe = regexp.MustCompile(`(` + numPattern + `)\s*(?:%|percent)\s+of\s+(` + numPattern + `)`)

	powerRe      = regexp.MustCompile(`(` + numPattern + `)\s*(?:\^|\*\*|to the power of)\s*(` + numPattern + `)`)
	squaredRe    = regexp.MustCompile(`(` + numPattern + `)\s+(squared|cubed)\b`)
	superPowerRe = regexp.MustCompile(`(` + numPattern + `)([⁰¹²³⁴⁵⁶⁷⁸⁹]+)`)

	// An operator or operator word right before or after a candidate means
	// the expression is part of a longer chain we do not evaluate.
	prefixOpRe = regexp.MustCompile(`(?:[+*×÷·/^-]|\b(?:plus|minus|times|by)|(?:%|percent)\s+of)\s*$`)
	suffixOpRe = regexp.MustCompile(`^\s*(?:[+*×÷·/^-]|(?:plus|minus|times|multiplied|divided)\b|x\s*-?\d)`)
)

// isolated reports whether text[start:end] stands alone rather than being
// a fragment of a longer expression or an identifier like "3x".
func isolated(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '^' || isSuperscript(r) {
			return false
		}
		if prefixOpRe.MatchString(text[:start]) {
			return false
		}
	}
	if end < len(text) {
		rest := text[end:]
		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || isSuperscript(r) || strings.ContainsRune("%^/", r) {
			return false
		}
		if suffixOpRe.MatchString(rest) {
			return false
		}
	}
	return true
}

func isSuperscript(r rune) bool {
	_, ok := superscripts[r]
	return ok
}

var superscripts = map[rune]int{
	'⁰': 0, '¹': 1, '²': 2, '³': 3, '⁴': 4,
	'⁵': 5, '⁶': 6, '⁷': 7, '⁸': 8, '⁹': 9,
}

// parseOperand parses a number or an unspaced fraction.
func parseOperand(s string) (float64, bool) {
	num, den, isFrac := strings.Cut(s, "/")
	n, ok := parseNumber(num)
	if !ok {
		return 0, false
	}
	if !isFrac {
		return n, true
	}
	d, ok := parseNumber(den)
	if !ok || d == 0 {
		return 0, false
	}
	return n / d, true
}

// matchArithmetic evaluates a single binary expression. Questions that name
// both a shape and a measure are left to matchGeometry, since "8 x 5" there
// gives dimensions rather than a product.
func matchArithmetic(text string) (float64, bool) {
	if isGeometry(text) {
		return 0, false
	}
	for _, loc := range arithRe.FindAllStringSubmatchIndex(text, -1) {
		if !isolated(text, loc[0], loc[1]) {
			continue
		}
		a, ok := parseOperand(text[loc[2]:loc[3]])
		if !ok {
			continue
		}
		b, ok := parseOperand(text[loc[8]:loc[9]])
		if !ok {
			continue
		}
		op := ""
		if loc[4] >= 0 {
			op = text[loc[4]:loc[5]]
		} else {
			op = text[loc[6]:loc[7]]
		}
		if v, ok := applyOp(a, op, b); ok {
			return v, true
		}
	}
	return 0, false
}

// applyOp evaluates a binary operator given as a symbol or word.
func applyOp(a float64, op string, b float64) (float64, bool) {
	switch op {
	case "+", "plus":
		return a + b, true
	case "-", "minus":
		return a - b, true
	case "*", "×", "·", "x", "times", "multiplied by":
		return a * b, true
	case "÷", "/", "divided by":
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}

func matchPercent(text string) (float64, bool) {
	for _, m := range findIsolated(percentRe, text) {
		p, ok1 := parseNumber(m[1])
		n, ok2 := parseNumber(m[2])
		if ok1 && ok2 {
			return p * n / 100, true
		}
	}
	return 0, false
}

func matchExponent(text string) (float64, bool) {
	for _, m := range findIsolated(powerRe, text) {
		base, ok1 := parseNumber(m[1])
		exp, ok2 := parseNumber(m[2])
		if ok1 && ok2 {
			return math.Pow(base, exp), true
		}
	}
	for _, m := range findIsolated(squaredRe, text) {
		base, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		if m[2] == "squared" {
			return base * base, true
		}
		return base * base * base, true
	}
	for _, m := range findIsolated(superPowerRe, text) {
		base, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		exp := 0
		for _, r := range m[2] {
			exp = exp*10 + superscripts[r]
		}
		return math.Pow(base, float64(exp)), true
	}
	return 0, false
}

// findIsolated returns the submatches of re in text that pass isolated.
func findIsolated(re *regexp.Regexp, text string) [][]string {
	var out [][]string
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		if !isolated(text, loc[0], loc[1]) {
			continue
		}
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = text[loc[2*i]:loc[2*i+1]]
			}
		}
		out = append(out, groups)
	}
	return out
}
