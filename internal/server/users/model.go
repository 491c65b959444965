package users

import "time"

// User is the stored identity record. PasswordHash holds a bcrypt hash from
// the moment of creation onward, never the plaintext password.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	ProfilePic   string
	Bio          string
	Tasks        []string
	CreatedAt    time.Time
}

// Profile is the restricted public view of a user. It never carries the
// password hash.
type Profile struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
}

// Profile returns the public view of u.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Bio:        u.Bio,
		ProfilePic: u.ProfilePic,
	}
}
