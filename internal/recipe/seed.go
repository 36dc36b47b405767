package recipe

// Seed returns the starter collection a fresh store is initialized with.
func Seed() []Recipe {
	return []Recipe{
		{
			ID:           1,
			Name:         "Classic Margherita Pizza",
			Ingredients:  []string{"flour", "yeast", "tomato", "mozzarella", "basil", "olive oil"},
			Instructions: []string{"Mix flour and yeast with water", "Let dough rise for 1 hour", "Roll out dough", "Add tomato sauce and cheese", "Bake at 450°F for 12-15 minutes", "Garnish with fresh basil"},
			CookTime:     30,
			Difficulty:   DifficultyMedium,
			Servings:     4,
			Calories:     266,
			Protein:      11,
			Cuisine:      "Italian",
			Dietary:      []string{"vegetarian"},
			Rating:       4.5,
		},
		{
			ID:           2,
			Name:         "Chicken Stir Fry",
			Ingredients:  []string{"chicken", "soy sauce", "ginger", "garlic", "bell pepper", "onion", "rice"},
			Instructions: []string{"Cut chicken into strips", "Heat oil in wok", "Cook chicken until golden", "Add vegetables", "Add soy sauce and ginger", "Serve over rice"},
			CookTime:     20,
			Difficulty:   DifficultyEasy,
			Servings:     4,
			Calories:     320,
			Protein:      28,
			Cuisine:      "Asian",
			Dietary:      []string{"gluten-free"},
			Rating:       4.7,
		},
		{
			ID:           3,
			Name:         "Vegetable Curry",
			Ingredients:  []string{"potato", "carrot", "peas", "coconut milk", "curry powder", "onion", "garlic", "ginger"},
			Instructions: []string{"Sauté onions and garlic", "Add curry powder and ginger", "Add vegetables and cook", "Pour coconut milk", "Simmer for 20 minutes", "Serve with rice"},
			CookTime:     35,
			Difficulty:   DifficultyEasy,
			Servings:     6,
			Calories:     180,
			Protein:      5,
			Cuisine:      "Indian",
			Dietary:      []string{"vegetarian", "vegan", "gluten-free"},
			Rating:       4.6,
		},
		{
			ID:           4,
			Name:         "Caesar Salad",
			Ingredients:  []string{"romaine lettuce", "parmesan", "croutons", "egg", "lemon", "garlic", "olive oil"},
			Instructions: []string{"Wash and chop lettuce", "Make dressing with egg, lemon, garlic", "Toss lettuce with dressing", "Add parmesan and croutons", "Serve immediately"},
			CookTime:     15,
			Difficulty:   DifficultyEasy,
			Servings:     4,
			Calories:     184,
			Protein:      7,
			Cuisine:      "American",
			Dietary:      []string{"vegetarian"},
			Rating:       4.3,
		},
		{
			ID:           5,
			Name:         "Spaghetti Carbonara",
			Ingredients:  []string{"spaghetti", "bacon", "egg", "parmesan", "black pepper", "garlic"},
			Instructions: []string{"Cook spaghetti", "Fry bacon until crispy", "Mix eggs and parmesan", "Combine hot pasta with egg mixture", "Add bacon and pepper", "Serve immediately"},
			CookTime:     25,
			Difficulty:   DifficultyMedium,
			Servings:     4,
			Calories:     420,
			Protein:      18,
			Cuisine:      "Italian",
			Dietary:      []string{},
			Rating:       4.8,
		},
		{
			ID:           6,
			Name:         "Lentil Soup",
			Ingredients:  []string{"lentils", "carrot", "celery", "onion", "garlic", "tomato", "vegetable broth"},
			Instructions: []string{"Sauté vegetables", "Add lentils and broth", "Simmer for 30 minutes", "Season to taste", "Serve hot"},
			CookTime:     45,
			Difficulty:   DifficultyEasy,
			Servings:     6,
			Calories:     165,
			Protein:      12,
			Cuisine:      "Mediterranean",
			Dietary:      []string{"vegetarian", "vegan", "gluten-free"},
			Rating:       4.4,
		},
		{
			ID:           7,
			Name:         "Beef Tacos",
			Ingredients:  []string{"ground beef", "taco seasoning", "tortilla", "lettuce", "tomato", "cheese", "sour cream"},
			Instructions: []string{"Brown ground beef", "Add taco seasoning", "Warm tortillas", "Assemble tacos with toppings", "Serve with lime"},
			CookTime:     20,
			Difficulty:   DifficultyEasy,
			Servings:     4,
			Calories:     340,
			Protein:      22,
			Cuisine:      "Mexican",
			Dietary:      []string{},
			Rating:       4.6,
		},
		{
			ID:           8,
			Name:         "Greek Salad",
			Ingredients:  []string{"cucumber", "tomato", "feta", "olive", "red onion", "olive oil", "lemon"},
			Instructions: []string{"Chop vegetables", "Crumble feta", "Mix all ingredients", "Dress with olive oil and lemon", "Serve chilled"},
			CookTime:     10,
			Difficulty:   DifficultyEasy,
			Servings:     4,
			Calories:     145,
			Protein:      5,
			Cuisine:      "Greek",
			Dietary:      []string{"vegetarian", "gluten-free"},
			Rating:       4.5,
		},
		{
			ID:           9,
			Name:         "Pad Thai",
			Ingredients:  []string{"rice noodles", "shrimp", "egg", "peanuts", "bean sprouts", "lime", "fish sauce", "tamarind"},
			Instructions: []string{"Soak noodles", "Scramble eggs", "Cook shrimp", "Stir fry noodles with sauce", "Add peanuts and sprouts", "Serve with lime"},
			CookTime:     25,
			Difficulty:   DifficultyMedium,
			Servings:     4,
			Calories:     375,
			Protein:      20,
			Cuisine:      "Thai",
			Dietary:      []string{"gluten-free"},
			Rating:       4.7,
		},
		{
			ID:           10,
			Name:         "Mushroom Risotto",
			Ingredients:  []string{"arborio rice", "mushroom", "onion", "white wine", "parmesan", "butter", "vegetable broth"},
			Instructions: []string{"Sauté mushrooms", "Toast rice", "Add wine", "Gradually add broth, stirring", "Finish with butter and parmesan", "Serve immediately"},
			CookTime:     40,
			Difficulty:   DifficultyHard,
			Servings:     4,
			Calories:     310,
			Protein:      9,
			Cuisine:      "Italian",
			Dietary:      []string{"vegetarian"},
			Rating:       4.6,
		},
	}
}
