package corpus

import "github.com/abhisek/quizbank/internal/problemgen"

var readingSeed = []problemgen.Question{
	q(1, 1, "Which word rhymes with cat?", "Cat and hat end with the same sound.", 1, "Dog", "Hat", "Cup", "Sun"),
	q(1, 1, "Which word is a noun in the sentence: The dog runs fast?", "A noun names a person, place, or thing.", 0, "dog", "runs", "fast", "the dog runs"),
	q(1, 2, "What is the opposite of hot?", "Cold is the antonym of hot.", 2, "Warm", "Wet", "Cold", "Loud"),
	q(2, 2, "Which word is a synonym for happy?", "Glad means the same as happy.", 3, "Angry", "Tired", "Sad", "Glad"),
	q(2, 3, "Which word is a verb?", "A verb names an action.", 1, "Table", "Jump", "Blue", "Slowly"),
	q(2, 3, "Which sentence uses correct punctuation?", "A statement ends with a period.", 0, "I like apples.", "i like apples", "I like apples,", "I like. apples"),
	q(3, 3, "What is the plural of child?", "Child has an irregular plural: children.", 2, "Childs", "Childes", "Children", "Childrens"),
	q(3, 4, "Which word is an adjective in the sentence: The tall tree swayed?", "Tall describes the tree.", 1, "tree", "tall", "swayed", "the tree"),
	q(3, 4, "What is the main idea of a paragraph?", "The main idea is what the paragraph is mostly about.", 3, "The first word", "The longest sentence", "The title of the book", "What it is mostly about"),
	q(4, 5, "Which word is the antonym of generous?", "Selfish is the opposite of generous.", 0, "Selfish", "Kind", "Giving", "Friendly"),
	q(4, 5, "In a story, what is the setting?", "The setting is where and when a story happens.", 2, "The main character", "The problem", "Where and when it happens", "The ending"),
	q(4, 6, "Which prefix means again, as in rewrite?", "Re- means again.", 1, "un-", "re-", "pre-", "dis-"),
	q(5, 6, "What is a metaphor?", "A metaphor compares two things without using like or as.", 3, "A word that sounds like its meaning", "A comparison using like or as", "An exaggeration", "A direct comparison without like or as"),
	q(5, 7, "Which point of view uses the pronoun I?", "A narrator who says I tells the story in first person.", 0, "First person", "Second person", "Third person", "Omniscient"),
	q(5, 8, "What does the word reluctant mean in the sentence: She was reluctant to jump into the cold lake?", "Reluctant means unwilling or hesitant.", 2, "Excited", "Ready", "Unwilling", "Careless"),
}
