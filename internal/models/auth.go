package models

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest defines the structure for account registration requests.
// The UID comes from the auth provider; the users document is keyed by it.
// There is deliberately no role field: every registration starts as a plain
// user, elevated roles are assigned out of band.
type RegisterRequest struct {
	UID      string `json:"uid" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Nom      string `json:"nom" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginResponse carries the issued JWT back to the client
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
