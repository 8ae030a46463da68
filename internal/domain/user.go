package domain

import "time"

type User struct {
	ID        string    `json:"id,omitempty"`
	Email     string    `json:"email"`
	LastLogin time.Time `json:"last_login"`
}

func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	return nil
}

// Location is the structured shape used everywhere a place is recorded,
// on profiles and listings alike.
type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// UserProfile is the editable part of a user record. Email is the login
// identity and is never changed through the profile editor; PreferredEmail
// is the contact address shown to other users.
type UserProfile struct {
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	PreferredEmail string   `json:"preferred_email"`
	Preferences    []string `json:"preferences"`
	Location       Location `json:"location"`
}
