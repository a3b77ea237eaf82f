package problemgen

import (
	"math"
	"regexp"
	"strings"
)

type shape int

const (
	shapeNone shape = iota
	shapeRectangle
	shapeSquare
	shapeTriangle
	shapeCircle
	shapePrism
	shapeCube
)

type measure int

const (
	measureNone measure = iota
	measureArea
	measurePerimeter
	measureCircumference
	measureVolume
)

var (
	// Unit phrases like "square feet" would otherwise read as a square.
	areaUnitRe = regexp.MustCompile(`\b(?:square|sq\.?|cubic)\s+(?:units?|feet|foot|ft|inch(?:es)?|meters?|metres?|m|centimeters?|centimetres?|cm|millimeters?|mm|kilometers?|km|miles?|yards?|yd)\b`)

	prismRe = regexp.MustCompile(`\brectangular\s+prism\b|\bcuboid\b|\bbox\b`)

	shapeRes = []struct {
		re    *regexp.Regexp
		shape shape
	}{
		{regexp.MustCompile(`\bcubes?\b`), shapeCube},
		{regexp.MustCompile(`\brectang(?:le|les|ular)\b`), shapeRectangle},
		{regexp.MustCompile(`\bsquares?\b`), shapeSquare},
		{regexp.MustCompile(`\btriang(?:le|les|ular)\b`), shapeTriangle},
		{regexp.MustCompile(`\bcircles?\b|\bcircular\b`), shapeCircle},
	}

	measureRes = []struct {
		re      *regexp.Regexp
		measure measure
	}{
		{regexp.MustCompile(`\barea\b`), measureArea},
		{regexp.MustCompile(`\bperimeter\b`), measurePerimeter},
		{regexp.MustCompile(`\bcircumference\b`), measureCircumference},
		{regexp.MustCompile(`\bvolume\b`), measureVolume},
	}

	byRe = regexp.MustCompile(`(` + numPattern + `)\s*(?:[a-z]+\s+)?(?:by|x|×)\s*(` + numPattern + `)`)
)

// dimension patterns are built once per name.
var dimRes = map[string]*regexp.Regexp{}

func init() {
	for _, name := range []string{"length", "width", "height", "base", "side", "radius", "diameter", "edge"} {
		dimRes[name] = regexp.MustCompile(`\b` + name + `s?\b[^0-9\-]{0,20}?(` + numPattern + `)`)
	}
	for _, suffix := range []string{"long", "wide", "tall", "high"} {
		dimRes[suffix] = regexp.MustCompile(`(` + numPattern + `)\s*(?:[a-z]+\s+)?` + suffix + `\b`)
	}
}

// dim returns the first value introduced by any of the given names.
func dim(text string, names ...string) (float64, bool) {
	for _, n := range names {
		if m := dimRes[n].FindStringSubmatch(text); m != nil {
			if v, ok := parseNumber(m[1]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

func detectShape(text string) shape {
	if prismRe.MatchString(text) {
		text = prismRe.ReplaceAllString(text, " ")
		for _, s := range shapeRes {
			if s.re.MatchString(text) {
				return shapeNone
			}
		}
		return shapePrism
	}
	found := shapeNone
	for _, s := range shapeRes {
		if s.re.MatchString(text) {
			if found != shapeNone {
				return shapeNone
			}
			found = s.shape
		}
	}
	return found
}

func detectMeasure(text string) measure {
	found := measureNone
	for _, m := range measureRes {
		if m.re.MatchString(text) {
			if found != measureNone {
				return measureNone
			}
			found = m.measure
		}
	}
	return found
}

// isGeometry reports whether text asks for a measure of a known shape.
func isGeometry(text string) bool {
	text = areaUnitRe.ReplaceAllString(text, " ")
	return detectShape(text) != shapeNone && detectMeasure(text) != measureNone
}

// piFor honours an explicit approximation stated in the question.
func piFor(text string) float64 {
	switch {
	case strings.Contains(text, "22/7"):
		return 22.0 / 7.0
	case strings.Contains(text, "3.14"):
		return 3.14
	}
	return math.Pi
}

func matchGeometry(text string) (float64, bool) {
	text = areaUnitRe.ReplaceAllString(text, " ")
	s := detectShape(text)
	m := detectMeasure(text)
	if s == shapeNone || m == measureNone {
		return 0, false
	}

	switch s {
	case shapeRectangle:
		l, w, ok := rectDims(text)
		if !ok {
			return 0, false
		}
		switch m {
		case measureArea:
			return l * w, true
		case measurePerimeter:
			return 2 * (l + w), true
		}

	case shapeSquare:
		side, ok := dim(text, "side", "length")
		if !ok {
			return 0, false
		}
		switch m {
		case measureArea:
			return side * side, true
		case measurePerimeter:
			return 4 * side, true
		}

	case shapeTriangle:
		switch m {
		case measureArea:
			b, ok1 := dim(text, "base")
			h, ok2 := dim(text, "height", "tall", "high")
			if ok1 && ok2 {
				return b * h / 2, true
			}
		case measurePerimeter:
			nums := numRe.FindAllString(text, -1)
			if len(nums) != 3 {
				return 0, false
			}
			sum := 0.0
			for _, n := range nums {
				v, ok := parseNumber(n)
				if !ok {
					return 0, false
				}
				sum += v
			}
			return sum, true
		}

	case shapeCircle:
		r, ok := dim(text, "radius")
		if !ok {
			d, ok := dim(text, "diameter")
			if !ok {
				return 0, false
			}
			r = d / 2
		}
		pi := piFor(text)
		switch m {
		case measureArea:
			return pi * r * r, true
		case measureCircumference, measurePerimeter:
			return 2 * pi * r, true
		}

	case shapePrism:
		l, w, ok := rectDims(text)
		h, ok2 := dim(text, "height", "tall", "high")
		if ok && ok2 && m == measureVolume {
			return l * w * h, true
		}

	case shapeCube:
		side, ok := dim(text, "side", "edge", "length")
		if ok && m == measureVolume {
			return side * side * side, true
		}
	}
	return 0, false
}

// rectDims finds length and width from "length L and width W",
// "L long and W wide" or "L by W".
func rectDims(text string) (float64, float64, bool) {
	l, ok1 := dim(text, "length", "long")
	w, ok2 := dim(text, "width", "wide")
	if ok1 && ok2 {
		return l, w, true
	}
	if m := byRe.FindStringSubmatch(text); m != nil {
		l, ok1 := parseNumber(m[1])
		w, ok2 := parseNumber(m[2])
		if ok1 && ok2 {
			return l, w, true
		}
	}
	return 0, 0, false
}
