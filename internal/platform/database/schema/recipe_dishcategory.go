package schema

// RecipeDishCategoryTable represents the 'recipe.dishcategory' table
type RecipeDishCategoryTable struct {
	Table      string
	DishID     string
	CategoryID string
}

// RecipeDishCategory is the schema definition for recipe.dishcategory
var RecipeDishCategory = RecipeDishCategoryTable{
	Table:      "recipe.dishcategory",
	DishID:     "dishid",
	CategoryID: "categoryid",
}
