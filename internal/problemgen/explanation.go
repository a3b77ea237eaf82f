package problemgen

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var (
	// "8 × 5 = 40", "3/4 + 1/4 = 1", "12 times 3 equals 36"
	equationRe = regexp.MustCompile(operand + operator + operand +
		`\s*(?:=|equals|is)\s*(` + numPattern + `)`)

	// A word glued between a number and an operator, as in "8 apples - 3".
	unitWordRe = regexp.MustCompile(`(\d)\s+[a-z]{2,}(\s*(?:[+*×÷·=-]|equals\b))`)
)

// checkExplanation cross-checks every "A op B = C" step in the explanation.
// A wrong step rejects the question. Otherwise the result of the final step
// decides: if it names a different option than the claimed one, the index
// is corrected.
func checkExplanation(q Question, values []optionValue) (Question, Verdict) {
	text := normalizeMath(q.Explanation)
	text = strings.NewReplacer("²", "", "³", "").Replace(text)
	text = unitWordRe.ReplaceAllString(text, "$1$2")

	var (
		last  float64
		found bool
	)
	for _, loc := range equationRe.FindAllStringSubmatchIndex(text, -1) {
		if !isolated(text, loc[0], loc[1]) {
			continue
		}
		a, ok1 := parseOperand(text[loc[2]:loc[3]])
		b, ok2 := parseOperand(text[loc[8]:loc[9]])
		claimed, ok3 := parseNumber(text[loc[10]:loc[11]])
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		op := ""
		if loc[4] >= 0 {
			op = text[loc[4]:loc[5]]
		} else {
			op = text[loc[6]:loc[7]]
		}
		computed, ok := applyOp(a, op, b)
		if !ok {
			// division by zero is not something we can judge
			continue
		}
		if !closeTo(computed, claimed) {
			return q, Rejected
		}
		last, found = computed, true
	}

	if !found {
		return q, Accepted
	}
	idx := matchingOptions(values, last)
	if len(idx) == 0 || lo.Contains(idx, q.CorrectIndex) {
		return q, Accepted
	}
	q.CorrectIndex = idx[0]
	return q, Corrected
}
