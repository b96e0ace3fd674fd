package models

// User is an account known to the service. Password holds the bcrypt hash
// and is persisted with the document but never returned by the API.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Roles recognised by the authorization rules.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DisplayName prefers the user's name, falling back to the email address.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
