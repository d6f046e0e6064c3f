package dto

// LoginRequest defines the credentials for a password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token and the user it belongs to.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ExchangeCodeRequest carries the Google authorization code from the client.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
