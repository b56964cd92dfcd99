package models

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// AuthenticatedUser is the identity the request layer hands to the core.
// Credential issuance and verification live outside this service; the auth
// middleware only validates the bearer token and extracts these fields.
type AuthenticatedUser struct {
	ID   string   `json:"id"`
	Role UserRole `json:"role"`
}
