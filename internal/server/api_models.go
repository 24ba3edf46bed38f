package server

// SignupRequest registers a new account.
type SignupRequest struct {
	Name     string `json:"name" example:"Jamie Doe"`
	Email    string `json:"email" example:"jamie@example.com"`
	Password string `json:"password" example:"hunter22"`
}

// LoginRequest exchanges credentials for a session token.
type LoginRequest struct {
	Email    string `json:"email" example:"jamie@example.com"`
	Password string `json:"password" example:"hunter22"`
}

// ScanAPIRequest starts one profile scan.
type ScanAPIRequest struct {
	Platform   string `json:"platform" example:"Instagram"`
	ProfileURL string `json:"profileUrl" example:"https://instagram.com/someone"`
}

// HealthResponse reports service liveness plus the display-only classifier
// connectivity indicator.
type HealthResponse struct {
	Status     string `json:"status" example:"healthy"`
	Classifier string `json:"classifier" example:"connected"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"profile identifier is required"`
}
