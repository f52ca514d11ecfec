// Copyright (c) 2026 Dishly. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema holds the table and column identifiers of the Dishly database.

Repositories never spell a table or column literally; they reference these
definitions so a rename is a single edit here plus a migration.
*/
package schema

// UniqueKeys lists the unique constraints declared in data/migrations, keyed by
// table. The in-memory store registers them so it rejects and deduplicates rows
// exactly like PostgreSQL.
func UniqueKeys() map[string][][]string {
	return map[string][][]string{
		RecipeDish.Table:         {{RecipeDish.ID}},
		RecipeIngredient.Table:   {{RecipeIngredient.ID}},
		RecipeStep.Table:         {{RecipeStep.ID}, {RecipeStep.DishID, RecipeStep.Position}},
		RecipeDishCategory.Table: {{RecipeDishCategory.DishID, RecipeDishCategory.CategoryID}},
		RecipeCategory.Table:     {{RecipeCategory.ID}, {RecipeCategory.Slug}},
		LibraryCollection.Table: {
			{LibraryCollection.ID},
			{LibraryCollection.UserID, LibraryCollection.SystemSubtype},
		},
		LibraryCollectionItem.Table: {
			{LibraryCollectionItem.CollectionID, LibraryCollectionItem.DishID, LibraryCollectionItem.UserID},
		},
		SocialDishRating.Table: {{SocialDishRating.DishID, SocialDishRating.UserID}},
		SocialComment.Table:    {{SocialComment.ID}},
		UsersProfile.Table:     {{UsersProfile.UserID}, {UsersProfile.Tag}},
	}
}
