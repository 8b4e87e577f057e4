package model

// User is a stored dashboard account row.
// There is no login surface; rows exist only as data the producer manages.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// InsertUser carries the producer-settable fields of a User.
// The id is assigned by the store.
type InsertUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
