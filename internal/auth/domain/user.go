package domain

import "time"

// User is a stored account. PasswordHash is a bcrypt hash and never leaves
// the auth package.
type User struct {
	Username     string
	PasswordHash []byte
	FirstName    string
	LastName     string
	MobileNumber string
	CreatedAt    time.Time
}

// Profile is the public view of a User.
type Profile struct {
	Username     string
	FirstName    string
	LastName     string
	MobileNumber string
}

func (u User) Profile() Profile {
	return Profile{
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MobileNumber: u.MobileNumber,
	}
}
