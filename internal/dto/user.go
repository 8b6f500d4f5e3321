package dto

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON body for POST /register. The password fields
// must match; eqfield surfaces a mismatch as a 422 validation error.
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	FullName        string `json:"full_name" binding:"required,min=1,max=120"`
	Password        string `json:"password" binding:"required,min=1"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

// RefreshRequest is the JSON body for POST /refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// TokenPairResponse is returned on successful login.
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessTokenResponse is returned on successful refresh.
type AccessTokenResponse struct {
	Access string `json:"access"`
}

// MessageResponse is a bare success message (register, logout).
type MessageResponse struct {
	Msg string `json:"msg"`
}
