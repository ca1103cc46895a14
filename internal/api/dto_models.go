package api

// AuthVerifyResponse describes the verified caller returned by POST /auth/verify.
type AuthVerifyResponse struct {
	UID           string                 `json:"uid"`
	Email         string                 `json:"email,omitempty"`
	Name          string                 `json:"name,omitempty"`
	Picture       string                 `json:"picture,omitempty"`
	EmailVerified bool                   `json:"emailVerified"`
	Claims        map[string]interface{} `json:"claims,omitempty"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}
