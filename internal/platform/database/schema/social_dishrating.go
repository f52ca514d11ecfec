package schema

// SocialDishRatingTable represents the 'social.dishrating' table
type SocialDishRatingTable struct {
	Table      string
	DishID     string
	UserID     string
	RatingType string
	CreatedAt  string
	UpdatedAt  string
}

// SocialDishRating is the schema definition for social.dishrating
var SocialDishRating = SocialDishRatingTable{
	Table:      "social.dishrating",
	DishID:     "dishid",
	UserID:     "userid",
	RatingType: "ratingtype",
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}
