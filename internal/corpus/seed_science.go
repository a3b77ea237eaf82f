package corpus

import "github.com/abhisek/quizbank/internal/problemgen"

var scienceSeed = []problemgen.Question{
	q(1, 1, "Which animal lays eggs and has feathers?", "Birds have feathers and lay eggs.", 0, "Bird", "Dog", "Cat", "Horse"),
	q(1, 1, "What do plants need from the sun to grow?", "Plants use sunlight to make food.", 2, "Sound", "Wind", "Light", "Sand"),
	q(1, 2, "What is frozen water called?", "Water freezes into ice.", 1, "Steam", "Ice", "Mud", "Cloud"),
	q(2, 2, "Which planet is known as the Red Planet?", "Mars looks red because of rusty dust.", 3, "Earth", "Venus", "Jupiter", "Mars"),
	q(2, 3, "How many legs does an insect have?", "Every insect has six legs.", 1, "Four", "Six", "Eight", "Ten"),
	q(2, 3, "Which gas do plants take in from the air?", "Plants absorb carbon dioxide for photosynthesis.", 0, "Carbon dioxide", "Oxygen", "Helium", "Neon"),
	q(3, 3, "What is the closest star to Earth?", "The sun is a star and the nearest one to Earth.", 2, "Sirius", "Polaris", "The sun", "Vega"),
	q(3, 4, "Which part of the plant soaks up water from the soil?", "Roots absorb water and minerals.", 1, "Leaf", "Root", "Flower", "Seed"),
	q(3, 4, "In a food chain, what do we call an animal that eats only plants?", "Plant eaters are herbivores.", 3, "Carnivore", "Predator", "Decomposer", "Herbivore"),
	q(4, 5, "What force pulls objects toward the center of the Earth?", "Gravity pulls objects toward Earth.", 0, "Gravity", "Magnetism", "Friction", "Buoyancy"),
	q(4, 5, "Which organ pumps blood through the body?", "The heart pumps blood.", 2, "Lungs", "Liver", "Heart", "Stomach"),
	q(4, 6, "What is the process called when water vapor turns into liquid?", "Vapor cooling into liquid is condensation.", 1, "Evaporation", "Condensation", "Melting", "Freezing"),
	q(5, 6, "Which layer of the Earth lies directly below the crust?", "The mantle sits under the crust.", 3, "Inner core", "Outer core", "Atmosphere", "Mantle"),
	q(5, 7, "What is the smallest unit of life that can carry out all life processes?", "The cell is the basic unit of life.", 0, "Cell", "Atom", "Organ", "Tissue"),
	q(5, 8, "Which energy source is renewable?", "Wind never runs out, unlike fossil fuels.", 2, "Coal", "Oil", "Wind", "Natural gas"),
}
