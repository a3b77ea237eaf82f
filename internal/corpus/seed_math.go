package corpus

import "github.com/abhisek/quizbank/internal/problemgen"

var mathSeed = []problemgen.Question{
	q(1, 1, "What is 7 + 5?", "7 + 5 = 12", 2, "10", "11", "12", "13"),
	q(1, 1, "What is 9 - 4?", "9 - 4 = 5", 0, "5", "4", "6", "13"),
	q(1, 2, "What is 3 + 8?", "3 + 8 = 11", 3, "10", "12", "9", "11"),
	q(2, 3, "What is 6 × 7?", "6 × 7 = 42", 1, "36", "42", "48", "49"),
	q(2, 3, "What is 56 ÷ 8?", "56 ÷ 8 = 7", 2, "6", "8", "7", "9"),
	q(2, 2, "There are 6 rows of 8 chairs. How many chairs are there?", "6 × 8 = 48", 0, "48", "14", "42", "56"),
	q(2, 3, "What is 45 + 38?", "45 + 38 = 83", 3, "73", "82", "84", "83"),
	q(3, 4, "What is 25% of 80?", "A quarter of 80 is 20.", 1, "25", "20", "16", "40"),
	q(3, 4, "What is 144 divided by 12?", "144 ÷ 12 = 12", 0, "12", "14", "11", "13"),
	q(3, 5, "If x + 7 = 15, what is x?", "15 - 7 = 8", 2, "7", "22", "8", "9"),
	q(4, 4, "What is the area of a rectangle with length 8 and width 5?", "8 × 5 = 40", 3, "13", "26", "45", "40"),
	q(4, 5, "What is 3 to the power of 4?", "Multiply four threes together to get 81.", 1, "12", "81", "64", "27"),
	q(4, 6, "If 3x = 27, what is x?", "27 ÷ 3 = 9", 0, "9", "8", "24", "30"),
	q(5, 5, "What is the perimeter of a square with side 9?", "4 × 9 = 36", 2, "18", "81", "36", "27"),
	q(5, 7, "If 4x + 6 = 30, what is x?", "30 - 6 = 24 and 24 ÷ 4 = 6", 1, "9", "6", "24", "5"),
	q(5, 6, "What is 12 squared?", "12 × 12 = 144", 3, "24", "124", "122", "144"),
}
