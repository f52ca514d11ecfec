package schema

// LibraryCollectionItemTable represents the 'library.collectionitem' table
type LibraryCollectionItemTable struct {
	Table        string
	CollectionID string
	DishID       string
	UserID       string
	AddedAt      string
}

// LibraryCollectionItem is the schema definition for library.collectionitem
var LibraryCollectionItem = LibraryCollectionItemTable{
	Table:        "library.collectionitem",
	CollectionID: "collectionid",
	DishID:       "dishid",
	UserID:       "userid",
	AddedAt:      "addedat",
}
