package schema

// RecipeDishTable represents the 'recipe.dish' table
type RecipeDishTable struct {
	Table           string
	ID              string
	OwnerID         string
	Title           string
	Description     string
	Servings        string
	ImageURL        string
	Status          string
	ModeratedAt     string
	RejectionReason string
	CreatedAt       string
	UpdatedAt       string
}

// RecipeDish is the schema definition for recipe.dish
var RecipeDish = RecipeDishTable{
	Table:           "recipe.dish",
	ID:              "id",
	OwnerID:         "ownerid",
	Title:           "title",
	Description:     "description",
	Servings:        "servings",
	ImageURL:        "imageurl",
	Status:          "status",
	ModeratedAt:     "moderatedat",
	RejectionReason: "rejectionreason",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}
