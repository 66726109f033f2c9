package dto

// LoginRequest is the credential payload accepted by every login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin staff student"`
}

// LoginResponse carries the signed token and the authenticated identity.
type LoginResponse struct {
	Token string       `json:"token"`
	User  AuthUserInfo `json:"user"`
}

// AuthUserInfo is the minimal identity block returned after login.
type AuthUserInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
