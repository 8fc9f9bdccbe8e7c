package entity

// User is a registered account. Id is unique and immutable; IsOnline is
// owned by the session registry and never persisted.
type User struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Don't expose password in JSON
	IsOnline bool   `json:"isOnline"`
}

// UserStatus is a friend-list or member-list entry as pushed to clients.
type UserStatus struct {
	Id       string
	Username string
	IsOnline bool
}
