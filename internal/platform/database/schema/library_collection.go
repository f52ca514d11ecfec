package schema

// LibraryCollectionTable represents the 'library.collection' table
type LibraryCollectionTable struct {
	Table         string
	ID            string
	UserID        string
	Name          string
	Description   string
	Type          string
	SystemSubtype string
	CreatedAt     string
	UpdatedAt     string
}

// LibraryCollection is the schema definition for library.collection
var LibraryCollection = LibraryCollectionTable{
	Table:         "library.collection",
	ID:            "id",
	UserID:        "userid",
	Name:          "name",
	Description:   "description",
	Type:          "type",
	SystemSubtype: "systemsubtype",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}
