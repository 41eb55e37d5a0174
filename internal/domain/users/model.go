package users

import "time"

// User es la identidad registrada. PasswordHash nunca se serializa hacia afuera.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	UserName     string
	CreatedAt    time.Time
}

// Session es lo que devuelven register y login.
type Session struct {
	Token string
	User  User
}
