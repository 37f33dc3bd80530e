package models

import "time"

// User is an account created on first login. Users are never deleted.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	GoogleID  *string   `json:"google_id"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfilePicture derives the avatar URL from the Google account id, nil when
// the user has none.
func (u *User) ProfilePicture() *string {
	if u.GoogleID == nil || *u.GoogleID == "" {
		return nil
	}
	s := "https://lh3.googleusercontent.com/a/" + *u.GoogleID + "=s96-c"
	return &s
}

// UserSummary is the user part of joined admin listings.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Principal is the authenticated caller, resolved from a bearer token and
// passed explicitly to every protected handler.
type Principal struct {
	User *User
}

func (p *Principal) UserID() string { return p.User.ID }

func (p *Principal) IsAdmin() bool { return p != nil && p.User != nil && p.User.IsAdmin }
