package schema

// UsersProfileTable represents the 'users.profile' table
type UsersProfileTable struct {
	Table       string
	UserID      string
	DisplayName string
	Tag         string
	CreatedAt   string
}

// UsersProfile is the schema definition for users.profile
var UsersProfile = UsersProfileTable{
	Table:       "users.profile",
	UserID:      "userid",
	DisplayName: "displayname",
	Tag:         "tag",
	CreatedAt:   "createdat",
}
