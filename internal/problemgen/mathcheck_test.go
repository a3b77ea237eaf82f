package problemgen

import (
	"errors"
	"math"
	"testing"
)

func TestExtractAnswer(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"addition", "What is 345 + 278?", 623},
		{"subtraction", "567 - 289 = ?", 278},
		{"multiplication sign", "What is 23 × 45?", 1035},
		{"asterisk", "What is 12 * 11?", 132},
		{"spaced slash", "What is 144 / 12?", 12},
		{"division sign", "What is 56 ÷ 8?", 7},
		{"unicode minus", "What is 20 − 7?", 13},
		{"word times", "What is 7 times 8?", 56},
		{"word plus", "What is 15 plus 27?", 42},
		{"word divided", "What is 81 divided by 9?", 9},
		{"word multiplied", "What is 6 multiplied by 4?", 24},
		{"thousands separator", "What is 1,250 + 750?", 2000},
		{"decimals", "What is 3.5 + 1.25?", 4.75},
		{"money", "What is $4.50 + $2.25?", 6.75},
		{"fractions", "What is 3/4 + 1/4?", 1},
		{"percent", "What is 25% of 80?", 20},
		{"percent word", "What is 10 percent of 250?", 25},
		{"caret power", "What is 2^5?", 32},
		{"double star power", "What is 3 ** 4?", 81},
		{"power phrase", "What is 2 to the power of 10?", 1024},
		{"squared", "What is 9 squared?", 81},
		{"cubed", "What is 4 cubed?", 64},
		{"superscript", "What is 5²?", 25},
		{"linear plus", "Solve for x: 3x + 5 = 20", 5},
		{"linear minus", "Solve for x: 2x - 4 = 10", 7},
		{"offset minus", "If x - 4 = 10, what is x?", 14},
		{"offset plus", "If y + 9 = 15, what is y?", 6},
		{"lead plus", "Find n if 12 + n = 30.", 18},
		{"lead minus", "Find n if 20 - n = 8.", 12},
		{"scale", "Solve 4y = 28.", 7},
		{"scale with sign", "Solve 5 × m = 35.", 7},
		{"rectangle area", "What is the area of a rectangle with length 8 cm and width 5 cm?", 40},
		{"rectangle perimeter", "A rectangle is 9 m long and 4 m wide. What is its perimeter?", 26},
		{"square area units", "What is the area of a square with side 6 cm, in square cm?", 36},
		{"square perimeter", "What is the perimeter of a square with side 7?", 28},
		{"triangle area", "What is the area of a triangle with base 10 and height 4?", 20},
		{"triangle perimeter", "A triangle has sides 3, 4 and 5. What is its perimeter?", 12},
		{"circle area stated pi", "What is the area of a circle with radius 3? Use 3.14 for pi.", 28.26},
		{"circle circumference", "What is the circumference of a circle with a diameter of 10?", 10 * math.Pi},
		{"prism volume", "A box is 4 cm long, 3 cm wide and 2 cm tall. What is its volume?", 24},
		{"cube volume", "What is the volume of a cube with side 3?", 27},
		{"rectangle x dimensions", "What is the perimeter of a 8 x 5 rectangle?", 26},
		{"rectangle times sign dimensions", "Find the area of a 7 × 3 rectangle.", 21},
		{"each of", "Each of 4 friends gets 3 apples. How many apples in all?", 12},
		{"each with", "There are 5 boxes, each with 6 pencils. How many pencils?", 30},
		{"rows of", "There are 6 rows of 7 chairs. How many chairs?", 42},
		{"divide into groups", "Divide 24 cookies into groups of 6. How many groups?", 4},
		{"shared equally", "18 stickers are shared equally among 3 kids. How many each?", 6},
		{"buys more", "Maya has 12 marbles and buys 5 more. How many now?", 17},
		{"eats", "Tom has 15 candies and eats 4. How many are left?", 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractAnswer(tt.text)
			if err != nil {
				t.Fatalf("ExtractAnswer(%q) error: %v", tt.text, err)
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ExtractAnswer(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractAnswer_Unrecognized(t *testing.T) {
	texts := []string{
		"",
		"Which number is the largest?",
		"What is the capital of France?",
		"What is 3 + 4 × 2?",
		"What is 5 + 3x?",
		"What is 8 / 0?",
		"What is 1/0 + 2?",
		"What is 12 - 3 + 4?",
		"÷÷÷ ^^^ ***",
		"What is the area of a rectangle?",
		"What is the area and perimeter of a square with side 4?",
	}
	for _, text := range texts {
		if v, err := ExtractAnswer(text); !errors.Is(err, ErrUnrecognized) {
			t.Errorf("ExtractAnswer(%q) = %v, %v; want ErrUnrecognized", text, v, err)
		}
	}
}

func TestExtractAnswer_Deterministic(t *testing.T) {
	text := "What is 17 × 23?"
	first, err := ExtractAnswer(text)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		got, err := ExtractAnswer(text)
		if err != nil || got != first {
			t.Fatalf("run %d: got %v, %v; want %v", i, got, err, first)
		}
	}
}

func TestExtractAnswer_ReportsMatcher(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"What is 2 + 2?", "arithmetic"},
		{"What is 50% of 10?", "percent"},
		{"What is 3 squared?", "exponent"},
		{"Solve 2x = 8", "algebra"},
		{"What is the perimeter of a square with side 2?", "geometry"},
		{"What is the perimeter of a 8 x 5 rectangle?", "geometry"},
		{"There are 3 rows of 4 desks.", "word-template"},
	}
	for _, tt := range tests {
		name, _, err := extract(tt.text)
		if err != nil {
			t.Fatalf("extract(%q): %v", tt.text, err)
		}
		if name != tt.want {
			t.Errorf("extract(%q) matcher = %q, want %q", tt.text, name, tt.want)
		}
	}
}
