package problemgen

import "regexp"

const numGroup = `(` + numPattern + `)`

// wordTemplate maps a phrasing to the operation it implies. Every template
// captures exactly two numbers in reading order.
type wordTemplate struct {
	re   *regexp.Regexp
	eval func(a, b float64) (float64, bool)
}

func opMul(a, b float64) (float64, bool) { return a * b, true }
func opAdd(a, b float64) (float64, bool) { return a + b, true }
func opSub(a, b float64) (float64, bool) { return a - b, true }
func opDiv(a, b float64) (float64, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}

var wordTemplates = []wordTemplate{
	// "each of 4 friends gets 3 apples"
	{regexp.MustCompile(`\beach of (?:the |her |his |their )?` + numGroup + `\b.*?\b(?:gets?|has|have|receives?|takes?) ` + numGroup), opMul},
	// "5 boxes, each with 6 pencils"
	{regexp.MustCompile(numGroup + `\s+[a-z]+(?:\s+[a-z]+)?,?\s+each (?:with|has|have|holds?|holding|contains?|containing) ` + numGroup), opMul},
	// "6 rows of 7 chairs"
	{regexp.MustCompile(numGroup + `\s+(?:rows|columns|groups|packs|bags|boxes) of ` + numGroup), opMul},
	// "divide 24 cookies into groups of 6"
	{regexp.MustCompile(`\bdivides? ` + numGroup + `\b.*?\binto (?:groups|bags|boxes|teams|piles|rows) of ` + numGroup), opDiv},
	// "18 stickers shared equally among 3 kids"
	{regexp.MustCompile(numGroup + `\b.*?\b(?:shared|split|divided) equally (?:among|between) ` + numGroup), opDiv},
	// "has 12 marbles and buys 5 more"
	{regexp.MustCompile(`\bhas ` + numGroup + `\b.*?\b(?:buys|gets|finds|receives|collects|picks|earns|adds) ` + numGroup + `\s+(?:[a-z]+\s+)?more\b`), opAdd},
	// "has 15 candies and gives away 4"
	{regexp.MustCompile(`\bhas ` + numGroup + `\b.*?\b(?:gives away|eats|loses|spends|sells|uses|gives) ` + numGroup), opSub},
}

func matchWordTemplate(text string) (float64, bool) {
	if countNumbers(text) != 2 {
		return 0, false
	}
	for _, t := range wordTemplates {
		m := t.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		a, ok1 := parseNumber(m[1])
		b, ok2 := parseNumber(m[2])
		if !ok1 || !ok2 {
			continue
		}
		if v, ok := t.eval(a, b); ok {
			return v, true
		}
	}
	return 0, false
}
