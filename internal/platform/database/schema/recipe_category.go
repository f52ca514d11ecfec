package schema

// RecipeCategoryTable represents the 'recipe.category' table
type RecipeCategoryTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	SortOrder string
}

// RecipeCategory is the schema definition for recipe.category
var RecipeCategory = RecipeCategoryTable{
	Table:     "recipe.category",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	SortOrder: "sortorder",
}
