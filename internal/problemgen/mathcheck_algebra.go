package problemgen

import "regexp"

// Single-unknown linear equations. The unknown is any single letter that
// stands as its own word, optionally glued to its coefficient ("3x").
const (
	coefPattern = `(` + numPattern + `)\s*(?:[*×·]\s*)?`
	varPattern  = `([a-z])\b`
)

var (
	// ax + c = b, ax - c = b
	linearRe = regexp.MustCompile(coefPattern + varPattern + `\s*([+-])\s*(` + numPattern + `)\s*=\s*(` + numPattern + `)`)
	// x + a = b, x - a = b
	offsetRe = regexp.MustCompile(`\b([a-z])\b\s*([+-])\s*(` + numPattern + `)\s*=\s*(` + numPattern + `)`)
	// a + x = b, a - x = b
	leadRe = regexp.MustCompile(`(` + numPattern + `)\s*([+-])\s*\b([a-z])\b\s*=\s*(` + numPattern + `)`)
	// ax = b
	scaleRe = regexp.MustCompile(coefPattern + varPattern + `\s*=\s*(` + numPattern + `)`)
)

func matchAlgebra(text string) (float64, bool) {
	for _, m := range findIsolated(linearRe, text) {
		a, ok1 := parseNumber(m[1])
		c, ok2 := parseNumber(m[4])
		b, ok3 := parseNumber(m[5])
		if !ok1 || !ok2 || !ok3 || a == 0 {
			continue
		}
		if m[3] == "+" {
			return (b - c) / a, true
		}
		return (b + c) / a, true
	}
	for _, m := range findIsolated(offsetRe, text) {
		a, ok1 := parseNumber(m[3])
		b, ok2 := parseNumber(m[4])
		if !ok1 || !ok2 {
			continue
		}
		if m[2] == "+" {
			return b - a, true
		}
		return b + a, true
	}
	for _, m := range findIsolated(leadRe, text) {
		a, ok1 := parseNumber(m[1])
		b, ok2 := parseNumber(m[4])
		if !ok1 || !ok2 {
			continue
		}
		if m[2] == "+" {
			return b - a, true
		}
		return a - b, true
	}
	for _, m := range findIsolated(scaleRe, text) {
		a, ok1 := parseNumber(m[1])
		b, ok2 := parseNumber(m[3])
		if !ok1 || !ok2 || a == 0 {
			continue
		}
		return b / a, true
	}
	return 0, false
}
