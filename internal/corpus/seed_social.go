package corpus

import "github.com/abhisek/quizbank/internal/problemgen"

var socialSeed = []problemgen.Question{
	q(1, 1, "Who delivers letters to your home?", "A mail carrier brings letters.", 1, "Firefighter", "Mail carrier", "Doctor", "Baker"),
	q(1, 1, "Which of these is a map used for?", "A map shows where places are.", 0, "Finding places", "Telling time", "Cooking food", "Measuring weight"),
	q(1, 2, "What do we call the leader of a city?", "A mayor leads a city.", 2, "King", "Coach", "Mayor", "Captain"),
	q(2, 2, "How many continents are there?", "There are seven continents.", 3, "Five", "Six", "Eight", "Seven"),
	q(2, 3, "What is the capital city of France?", "Paris is the capital of France.", 1, "Berlin", "Paris", "Madrid", "Rome"),
	q(2, 3, "Which ocean is the largest?", "The Pacific Ocean is the largest.", 0, "Pacific", "Atlantic", "Indian", "Arctic"),
	q(3, 3, "On a compass, which direction is opposite north?", "South is opposite north.", 2, "East", "West", "South", "Northeast"),
	q(3, 4, "What do we call money paid to the government to fund schools and roads?", "Taxes pay for public services.", 3, "Wages", "Loans", "Prices", "Taxes"),
	q(3, 4, "Which country is known as the Land of the Rising Sun?", "Japan is called the Land of the Rising Sun.", 1, "China", "Japan", "Korea", "Thailand"),
	q(4, 5, "What is the longest river in Africa?", "The Nile is the longest river in Africa.", 0, "Nile", "Congo", "Niger", "Zambezi"),
	q(4, 5, "Which ancient civilization built the pyramids at Giza?", "The ancient Egyptians built them.", 2, "Romans", "Greeks", "Egyptians", "Vikings"),
	q(4, 6, "What document begins with the words We the People?", "The preamble of the U.S. Constitution starts with We the People.", 1, "Bill of Sale", "U.S. Constitution", "Magna Carta", "A passport"),
	q(5, 6, "Which line divides the Earth into the Northern and Southern Hemispheres?", "The equator divides north from south.", 3, "Prime meridian", "Tropic of Cancer", "Date line", "Equator"),
	q(5, 7, "What is it called when a country sells goods to another country?", "Selling abroad is exporting.", 0, "Exporting", "Importing", "Taxing", "Borrowing"),
	q(5, 8, "Which branch of government makes laws?", "The legislative branch writes laws.", 2, "Executive", "Judicial", "Legislative", "Military"),
}
