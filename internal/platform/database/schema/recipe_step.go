package schema

// RecipeStepTable represents the 'recipe.step' table
type RecipeStepTable struct {
	Table           string
	ID              string
	DishID          string
	Position        string
	Description     string
	ImageURL        string
	DurationMinutes string
}

// RecipeStep is the schema definition for recipe.step
var RecipeStep = RecipeStepTable{
	Table:           "recipe.step",
	ID:              "id",
	DishID:          "dishid",
	Position:        "position",
	Description:     "description",
	ImageURL:        "imageurl",
	DurationMinutes: "durationminutes",
}
