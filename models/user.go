package models

// AuthUser is the portal's view of an authenticated account.
type AuthUser struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Avatar          string `json:"avatar,omitempty"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

// Valid reports whether the user payload carries the structurally required
// fields. A success signal with an invalid user is treated as an error.
func (u AuthUser) Valid() bool {
	return u.ID != "" && u.Email != ""
}

// AuthResponse is returned to the portal client after a completed sign-in.
type AuthResponse struct {
	User       AuthUser `json:"user"`
	Token      string   `json:"token"`
	Remembered bool     `json:"remembered"`
}
