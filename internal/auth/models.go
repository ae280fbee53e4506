package auth

// DevAuthRequest: тело запроса dev-авторизации (всё опционально)
type DevAuthRequest struct {
	PersonID string `json:"person_id"`
}

// DevAuthResponse: ответ на dev-авторизацию
type DevAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	PersonID    string `json:"person_id"`
}
