package dto

type AuthConfigResponse struct {
	ClientID     string `json:"clientId"`
	Issuer       string `json:"issuer"`
	FIDO2Enabled bool   `json:"fido2Enabled"`
	FIDO2Path    string `json:"fido2Path"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	UserID        string `json:"userId,omitempty"`
	Role          string `json:"role,omitempty"`
}
