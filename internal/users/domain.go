package users

// UserLite is the public display identity of a user. It carries no role or
// authorization state.
type UserLite struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// deletedUser stands in for creators whose account no longer resolves.
func deletedUser(id int64) UserLite {
	return UserLite{ID: id, Username: "[deleted]"}
}
