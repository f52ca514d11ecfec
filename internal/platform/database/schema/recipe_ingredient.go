package schema

// RecipeIngredientTable represents the 'recipe.ingredient' table
type RecipeIngredientTable struct {
	Table          string
	ID             string
	DishID         string
	Name           string
	Amount         string
	Unit           string
	ExternalFoodID string
}

// RecipeIngredient is the schema definition for recipe.ingredient
var RecipeIngredient = RecipeIngredientTable{
	Table:          "recipe.ingredient",
	ID:             "id",
	DishID:         "dishid",
	Name:           "name",
	Amount:         "amount",
	Unit:           "unit",
	ExternalFoodID: "externalfoodid",
}
