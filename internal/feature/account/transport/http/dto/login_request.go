package dto

// LoginReq represents the request body for POST /<kind>/login.
// Every kind logs in with its identifying email, including schools.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
