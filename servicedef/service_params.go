// Package servicedef contains the JSON wire formats of the account
// service's auth API. Names follow the service's OpenAPI schemas.
package servicedef

// ClaimUsernamePassword is the claim type for a credential-exchange
// request that presents a username and password.
const ClaimUsernamePassword = "username+password"

// Account is the request body for POST /v1/auth/register.
type Account struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthClaim is the request body for POST /v1/auth/auth.
type AuthClaim struct {
	Claim    string `json:"claim"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// JWT is the success response of POST /v1/auth/auth.
type JWT struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int32  `json:"expires_in"`
}

// APIError is the body the service returns with any non-2xx status.
type APIError struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// VerifyEmail is the request body for POST /v1/auth/verifyemail.
type VerifyEmail struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// PasswordResetRequest is the request body for
// POST /v1/auth/passwordreset/request.
type PasswordResetRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PasswordResetVerify is the request body for
// POST /v1/auth/passwordreset/verify.
type PasswordResetVerify struct {
	Username string `json:"username"`
	Token    string `json:"token"`
	Password string `json:"password"`
}
