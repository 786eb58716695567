package recipe

func ing(name string, amount float64, unit string, category IngredientCategory, estimated float64) Ingredient {
	return Ingredient{Name: name, Amount: amount, Unit: unit, Category: category, EstimatedPrice: price(estimated)}
}

// DefaultRecipes returns the built-in catalog. Each call returns fresh slices.
func DefaultRecipes() []Recipe {
	return []Recipe{
		{
			ID:          "r-001",
			Name:        "Veggie Scrambled Eggs",
			Description: "Fluffy eggs scrambled with spinach, peppers and a little cheddar.",
			Category:    CategoryBreakfast,
			MealType:    MealBreakfast,
			PrepTime:    5,
			CookTime:    10,
			Servings:    2,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Eggs", 4, "large", IngredientDairy, 1.50),
				ing("Spinach", 1, "cup", IngredientProduce, 0.80),
				ing("Bell Peppers", 1, "whole", IngredientProduce, 0.99),
				ing("Cheddar Cheese", 0.25, "cup", IngredientDairy, 0.75),
				ing("Butter", 1, "tbsp", IngredientDairy, 0.15),
			},
			Instructions: []string{
				"Whisk the eggs with a pinch of salt.",
				"Saute peppers and spinach in butter until soft.",
				"Add the eggs and stir gently until just set, then fold in the cheese.",
			},
			Tags: []string{"quick", "healthy", "vegetarian", "high-protein"},
		},
		{
			ID:          "r-002",
			Name:        "Overnight Oats with Berries",
			Description: "Rolled oats soaked in milk and yogurt, topped with fresh berries.",
			Category:    CategoryBreakfast,
			MealType:    MealBreakfast,
			PrepTime:    10,
			CookTime:    0,
			Servings:    2,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Oats", 1, "cup", IngredientPantry, 0.45),
				ing("Milk", 1, "cup", IngredientDairy, 0.40),
				ing("Greek Yogurt", 0.5, "cup", IngredientDairy, 0.90),
				ing("Berries", 1, "cup", IngredientProduce, 2.50),
				{Name: "Honey", Amount: 1, Unit: "tbsp", Category: IngredientPantry},
			},
			Instructions: []string{
				"Stir oats, milk and yogurt together in a jar.",
				"Refrigerate overnight.",
				"Top with berries and honey before serving.",
			},
			Tags:          []string{"healthy", "vegetarian", "make-ahead", "low-calorie"},
			EstimatedCost: price(4.25),
		},
		{
			ID:          "r-003",
			Name:        "Buttermilk Pancakes",
			Description: "Classic stack of tender pancakes with maple syrup.",
			Category:    CategoryBreakfast,
			MealType:    MealBreakfast,
			PrepTime:    10,
			CookTime:    15,
			Servings:    4,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Flour", 2, "cup", IngredientPantry, 0.50),
				ing("Eggs", 2, "large", IngredientDairy, 0.75),
				ing("Milk", 1.5, "cup", IngredientDairy, 0.60),
				ing("Butter", 3, "tbsp", IngredientDairy, 0.45),
				ing("Sugar", 2, "tbsp", IngredientPantry, 0.10),
				ing("Maple Syrup", 0.25, "cup", IngredientPantry, 1.80),
			},
			Instructions: []string{
				"Whisk the dry ingredients together.",
				"Beat eggs, milk and melted butter, then fold into the dry mix.",
				"Cook ladlefuls on a hot griddle until golden on both sides.",
			},
			Tags: []string{"classic", "comfort-food", "vegetarian", "kid-friendly"},
		},
		{
			ID:          "r-004",
			Name:        "Avocado Toast with Egg",
			Description: "Smashed avocado on toasted sourdough with a fried egg.",
			Category:    CategoryBreakfast,
			MealType:    MealBreakfast,
			PrepTime:    5,
			CookTime:    5,
			Servings:    2,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Bread", 2, "slices", IngredientBakery, 0.60),
				ing("Avocado", 1, "whole", IngredientProduce, 1.25),
				ing("Eggs", 2, "large", IngredientDairy, 0.75),
				ing("Lemon", 0.5, "whole", IngredientProduce, 0.30),
			},
			Instructions: []string{
				"Toast the bread.",
				"Mash avocado with lemon juice and salt.",
				"Fry the eggs and serve on top of the avocado toast.",
			},
			Tags: []string{"quick", "healthy", "vegetarian"},
		},
		{
			ID:          "r-005",
			Name:        "Grilled Cheese Sandwich",
			Description: "Golden buttery bread with melted cheese.",
			Category:    CategoryLunch,
			MealType:    MealLunch,
			PrepTime:    5,
			CookTime:    10,
			Servings:    1,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Bread", 2, "slices", IngredientBakery, 0.60),
				ing("Cheese", 2, "slices", IngredientDairy, 1.50),
				ing("Butter", 2, "tbsp", IngredientDairy, 0.30),
			},
			Instructions: []string{
				"Butter one side of each slice of bread.",
				"Place cheese between the unbuttered sides.",
				"Cook in a skillet until both sides are golden and the cheese melts.",
			},
			Tags: []string{"classic", "comfort-food", "quick", "vegetarian", "kid-friendly"},
		},
		{
			ID:          "r-006",
			Name:        "Chicken Caesar Salad",
			Description: "Grilled chicken over crisp romaine with parmesan and croutons.",
			Category:    CategoryLunch,
			MealType:    MealLunch,
			PrepTime:    15,
			CookTime:    15,
			Servings:    2,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Chicken Breast", 1, "lb", IngredientMeat, 8.49),
				ing("Lettuce", 1, "head", IngredientProduce, 1.99),
				ing("Parmesan Cheese", 0.25, "cup", IngredientDairy, 1.20),
				ing("Bread", 2, "slices", IngredientBakery, 0.60),
				ing("Caesar Dressing", 0.25, "cup", IngredientPantry, 0.90),
			},
			Instructions: []string{
				"Season and grill the chicken, then slice.",
				"Toast cubed bread into croutons.",
				"Toss lettuce with dressing, top with chicken, croutons and parmesan.",
			},
			Tags: []string{"healthy", "high-protein", "low-carb"},
		},
		{
			ID:          "r-007",
			Name:        "Black Bean Burrito Bowl",
			Description: "Rice, seasoned black beans, peppers and salsa in a bowl.",
			Category:    CategoryLunch,
			MealType:    MealLunch,
			PrepTime:    10,
			CookTime:    20,
			Servings:    4,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Rice", 1, "cup", IngredientPantry, 0.60),
				ing("Black Beans", 2, "can", IngredientPantry, 1.78),
				ing("Bell Peppers", 2, "whole", IngredientProduce, 1.98),
				ing("Onions", 1, "whole", IngredientProduce, 0.50),
				ing("Salsa", 1, "cup", IngredientPantry, 2.49),
				ing("Cumin", 1, "tsp", IngredientSpices, 0.10),
			},
			Instructions: []string{
				"Cook the rice.",
				"Simmer beans with onion and cumin.",
				"Saute peppers and assemble bowls with salsa.",
			},
			Tags: []string{"healthy", "vegetarian", "budget-friendly", "meal-prep"},
		},
		{
			ID:          "r-008",
			Name:        "Tomato Basil Soup",
			Description: "Smooth roasted tomato soup finished with fresh basil.",
			Category:    CategoryLunch,
			MealType:    MealLunch,
			PrepTime:    10,
			CookTime:    30,
			Servings:    4,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Tomatoes", 2, "lb", IngredientProduce, 3.98),
				ing("Onions", 1, "whole", IngredientProduce, 0.50),
				ing("Garlic", 3, "cloves", IngredientProduce, 0.30),
				ing("Basil", 0.5, "cup", IngredientProduce, 1.50),
				ing("Vegetable Broth", 2, "cup", IngredientPantry, 1.20),
				ing("Olive Oil", 2, "tbsp", IngredientPantry, 0.40),
			},
			Instructions: []string{
				"Roast tomatoes, onion and garlic with olive oil.",
				"Simmer with broth for 15 minutes.",
				"Blend with basil until smooth.",
			},
			Tags: []string{"healthy", "vegetarian", "low-calorie", "comfort-food"},
		},
		{
			ID:          "r-009",
			Name:        "Turkey Club Wrap",
			Description: "Sliced turkey, bacon, lettuce and tomato rolled in a tortilla.",
			Category:    CategoryLunch,
			MealType:    MealLunch,
			PrepTime:    10,
			CookTime:    5,
			Servings:    2,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Tortillas", 2, "whole", IngredientBakery, 0.80),
				ing("Turkey Breast", 0.5, "lb", IngredientMeat, 4.50),
				ing("Bacon", 4, "slices", IngredientMeat, 1.60),
				ing("Lettuce", 0.5, "head", IngredientProduce, 1.00),
				ing("Tomatoes", 0.5, "lb", IngredientProduce, 1.00),
			},
			Instructions: []string{
				"Crisp the bacon.",
				"Layer turkey, bacon, lettuce and tomato on tortillas.",
				"Roll tightly and slice in half.",
			},
			Tags: []string{"quick", "high-protein"},
		},
		{
			ID:          "r-010",
			Name:        "Lemon Garlic Chicken with Rice",
			Description: "Pan-seared chicken breast in a lemon garlic sauce over rice.",
			Category:    CategoryDinner,
			MealType:    MealDinner,
			PrepTime:    10,
			CookTime:    25,
			Servings:    4,
			Difficulty:  DifficultyMedium,
			Ingredients: []Ingredient{
				ing("Chicken Breast", 2, "lb", IngredientMeat, 16.98),
				ing("Garlic", 4, "cloves", IngredientProduce, 0.40),
				ing("Lemon", 1, "whole", IngredientProduce, 0.60),
				ing("Rice", 1.5, "cup", IngredientPantry, 0.90),
				ing("Butter", 2, "tbsp", IngredientDairy, 0.30),
				ing("Broccoli", 1, "lb", IngredientProduce, 1.99),
			},
			Instructions: []string{
				"Cook the rice.",
				"Sear the chicken until golden and cooked through.",
				"Make a pan sauce with butter, garlic and lemon.",
				"Steam broccoli and serve everything together.",
			},
			Tags: []string{"healthy", "high-protein", "family-friendly"},
		},
		{
			ID:          "r-011",
			Name:        "Spaghetti Bolognese",
			Description: "Slow simmered beef and tomato sauce over spaghetti.",
			Category:    CategoryDinner,
			MealType:    MealDinner,
			PrepTime:    15,
			CookTime:    45,
			Servings:    6,
			Difficulty:  DifficultyMedium,
			Ingredients: []Ingredient{
				ing("Ground Beef", 1, "lb", IngredientMeat, 5.99),
				ing("Pasta", 1, "lb", IngredientPantry, 1.49),
				ing("Tomatoes", 2, "lb", IngredientProduce, 3.98),
				ing("Onions", 1, "whole", IngredientProduce, 0.50),
				ing("Garlic", 3, "cloves", IngredientProduce, 0.30),
				ing("Carrots", 2, "whole", IngredientProduce, 0.40),
				ing("Parmesan Cheese", 0.5, "cup", IngredientDairy, 2.40),
			},
			Instructions: []string{
				"Brown the beef with onion, carrot and garlic.",
				"Add tomatoes and simmer for 30 minutes.",
				"Cook pasta and toss with the sauce; top with parmesan.",
			},
			Tags: []string{"classic", "comfort-food", "family-friendly"},
		},
		{
			ID:          "r-012",
			Name:        "Sheet Pan Salmon and Vegetables",
			Description: "Roasted salmon fillets with potatoes and asparagus on one pan.",
			Category:    CategoryDinner,
			MealType:    MealDinner,
			PrepTime:    10,
			CookTime:    25,
			Servings:    4,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Salmon Fillet", 1.5, "lb", IngredientSeafood, 14.99),
				ing("Potatoes", 1.5, "lb", IngredientProduce, 1.50),
				ing("Asparagus", 1, "bunch", IngredientProduce, 2.99),
				ing("Olive Oil", 3, "tbsp", IngredientPantry, 0.60),
				ing("Lemon", 1, "whole", IngredientProduce, 0.60),
			},
			Instructions: []string{
				"Roast cubed potatoes for 10 minutes.",
				"Add salmon and asparagus, drizzle with olive oil and lemon.",
				"Roast 15 more minutes until the salmon flakes.",
			},
			Tags: []string{"healthy", "high-protein", "low-carb", "omega-3"},
		},
		{
			ID:          "r-013",
			Name:        "Vegetable Stir Fry",
			Description: "Crisp vegetables and tofu tossed in a ginger soy glaze.",
			Category:    CategoryDinner,
			MealType:    MealDinner,
			PrepTime:    15,
			CookTime:    10,
			Servings:    4,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Tofu", 1, "block", IngredientProduce, 2.29),
				ing("Broccoli", 1, "lb", IngredientProduce, 1.99),
				ing("Bell Peppers", 2, "whole", IngredientProduce, 1.98),
				ing("Carrots", 2, "whole", IngredientProduce, 0.40),
				ing("Soy Sauce", 3, "tbsp", IngredientPantry, 0.30),
				ing("Rice", 1.5, "cup", IngredientPantry, 0.90),
				{Name: "Ginger", Amount: 1, Unit: "tbsp", Category: IngredientSpices},
			},
			Instructions: []string{
				"Press and cube the tofu, then brown it.",
				"Stir fry vegetables over high heat.",
				"Add tofu and sauce, toss and serve over rice.",
			},
			Tags: []string{"quick", "healthy", "vegetarian", "vegan", "low-calorie"},
		},
		{
			ID:          "r-014",
			Name:        "Beef Tacos",
			Description: "Seasoned ground beef in warm tortillas with fresh toppings.",
			Category:    CategoryDinner,
			MealType:    MealDinner,
			PrepTime:    10,
			CookTime:    15,
			Servings:    4,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Ground Beef", 1, "lb", IngredientMeat, 5.99),
				ing("Tortillas", 8, "whole", IngredientBakery, 3.20),
				ing("Lettuce", 0.5, "head", IngredientProduce, 1.00),
				ing("Tomatoes", 0.5, "lb", IngredientProduce, 1.00),
				ing("Cheddar Cheese", 1, "cup", IngredientDairy, 3.00),
				ing("Cumin", 1, "tsp", IngredientSpices, 0.10),
			},
			Instructions: []string{
				"Brown the beef with cumin and salt.",
				"Warm tortillas.",
				"Fill with beef, lettuce, tomato and cheese.",
			},
			Tags: []string{"quick", "comfort-food", "kid-friendly", "family-friendly"},
		},
		{
			ID:          "r-015",
			Name:        "Braised Short Ribs",
			Description: "Red wine braised beef short ribs over mashed potatoes.",
			Category:    CategoryDinner,
			MealType:    MealDinner,
			PrepTime:    30,
			CookTime:    180,
			Servings:    6,
			Difficulty:  DifficultyHard,
			Ingredients: []Ingredient{
				ing("Beef Short Ribs", 4, "lb", IngredientMeat, 35.96),
				ing("Onions", 2, "whole", IngredientProduce, 1.00),
				ing("Carrots", 3, "whole", IngredientProduce, 0.60),
				ing("Red Wine", 2, "cup", IngredientPantry, 6.00),
				ing("Potatoes", 3, "lb", IngredientProduce, 3.00),
				ing("Butter", 4, "tbsp", IngredientDairy, 0.60),
			},
			Instructions: []string{
				"Sear the short ribs on all sides.",
				"Soften onion and carrot, deglaze with wine.",
				"Braise covered in a low oven for three hours.",
				"Mash potatoes with butter and serve under the ribs.",
			},
			Tags: []string{"comfort-food", "classic", "weekend"},
		},
		{
			ID:          "r-016",
			Name:        "Shrimp Scampi Linguine",
			Description: "Garlicky butter shrimp tossed with linguine and parsley.",
			Category:    CategoryDinner,
			MealType:    MealDinner,
			PrepTime:    10,
			CookTime:    15,
			Servings:    4,
			Difficulty:  DifficultyMedium,
			Ingredients: []Ingredient{
				ing("Shrimp", 1, "lb", IngredientSeafood, 9.99),
				ing("Pasta", 1, "lb", IngredientPantry, 1.49),
				ing("Garlic", 5, "cloves", IngredientProduce, 0.50),
				ing("Butter", 4, "tbsp", IngredientDairy, 0.60),
				ing("Lemon", 1, "whole", IngredientProduce, 0.60),
			},
			Instructions: []string{
				"Boil the linguine.",
				"Saute shrimp and garlic in butter.",
				"Toss with pasta, lemon and parsley.",
			},
			Tags: []string{"quick", "classic"},
		},
		{
			ID:          "r-017",
			Name:        "Chocolate Chip Banana Muffins",
			Description: "Moist banana muffins studded with chocolate chips.",
			Category:    CategoryDessert,
			MealType:    MealSnack,
			PrepTime:    15,
			CookTime:    22,
			Servings:    12,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Bananas", 3, "whole", IngredientProduce, 0.75),
				ing("Flour", 2, "cup", IngredientPantry, 0.50),
				ing("Eggs", 1, "large", IngredientDairy, 0.38),
				ing("Butter", 6, "tbsp", IngredientDairy, 0.90),
				ing("Sugar", 0.5, "cup", IngredientPantry, 0.40),
				ing("Chocolate Chips", 0.75, "cup", IngredientPantry, 1.80),
			},
			Instructions: []string{
				"Mash bananas and mix with melted butter, sugar and egg.",
				"Fold in flour and chocolate chips.",
				"Bake at 350F for 22 minutes.",
			},
			Tags: []string{"kid-friendly", "make-ahead", "classic"},
		},
		{
			ID:          "r-018",
			Name:        "Hummus Veggie Snack Plate",
			Description: "Hummus with crunchy carrots, peppers and pita.",
			Category:    CategorySnack,
			MealType:    MealSnack,
			PrepTime:    10,
			CookTime:    0,
			Servings:    2,
			Difficulty:  DifficultyEasy,
			Ingredients: []Ingredient{
				ing("Hummus", 1, "cup", IngredientDairy, 3.49),
				ing("Carrots", 2, "whole", IngredientProduce, 0.40),
				ing("Bell Peppers", 1, "whole", IngredientProduce, 0.99),
				ing("Pita Bread", 2, "whole", IngredientBakery, 1.00),
			},
			Instructions: []string{
				"Slice the vegetables into sticks.",
				"Warm and cut pita into wedges.",
				"Serve around a bowl of hummus.",
			},
			Tags: []string{"healthy", "vegetarian", "quick", "low-calorie"},
		},
	}
}
