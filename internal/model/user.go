package model

// User represents an application user record as stored in the `users`
// table. Each field corresponds to a column in the database. The hashed
// password is never serialized into API responses; handlers that return
// user data rely on the json:"-" tag to keep it out of payloads.
//
// Fields:
//
//	ID             – primary key identifier of the user.
//	Username       – unique login name.
//	Email          – unique email address.
//	FirstName      – given name.
//	LastName       – family name.
//	HashedPassword – bcrypt hashed password (never plaintext).
//	IsActive       – whether the account is active.
//	Role           – free-text role name; "Admin" unlocks moderation routes.
type User struct {
	ID             uint64 `json:"id"`         // users.id
	Username       string `json:"username"`   // users.username
	Email          string `json:"email"`      // users.email
	FirstName      string `json:"first_name"` // users.first_name
	LastName       string `json:"last_name"`  // users.last_name
	HashedPassword string `json:"-"`          // users.hashed_password
	IsActive       bool   `json:"is_active"`  // users.is_active
	Role           string `json:"role"`       // users.role
}
