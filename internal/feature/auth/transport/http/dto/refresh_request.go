package dto

// RefreshReq represents the request for token refresh.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutReq represents the request for logout (refresh token revocation).
type LogoutReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
