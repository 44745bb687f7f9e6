package dto

// CreateAccessTokenRequestBody defines a request body for CreateAccessToken
// service: the sign-up confirmation code is exchanged for a bearer token.
type CreateAccessTokenRequestBody struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}
