package models

// Role of an authenticated session, as issued by the remote auth service.
type Role string

const (
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// LoginRequest delegates phone/email sign-in to the remote auth service.
// One of Phone or Email must be set.
type LoginRequest struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// SessionUser is the authenticated store manager.
type SessionUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	StoreID string `json:"storeId"`
	Role    Role   `json:"role"`
}

// LoginResponse carries the session token minted by the remote auth service.
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
