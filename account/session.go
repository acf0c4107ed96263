package account

import (
	"strings"
	"time"

	"github.com/efantasy/account-contract-tests/servicedef"
)

// Session is the in-memory authentication state of one account: its
// credentials plus the access token and expiry obtained by the last
// successful login. A session starts unauthenticated. The session owns
// its credentials; nothing else mutates them except UpdatePassword.
//
// A Session is not safe for concurrent use. Tests that need concurrent
// logins must create one session per goroutine.
type Session struct {
	Username string
	Email    string

	client      *Client
	password    string
	accessToken string
	expiry      time.Time
	now         func() time.Time
}

func newSession(client *Client, username, email, password string) *Session {
	return &Session{
		Username: strings.ToLower(username),
		Email:    email,
		client:   client,
		password: password,
		now:      time.Now,
	}
}

// NewSession builds an unauthenticated session for an account that is
// already registered with the service behind client.
func NewSession(client *Client, username, email, password string) *Session {
	return newSession(client, username, email, password)
}

func (s *Session) BaseURL() string { return s.client.BaseURL() }

// Login exchanges the stored credentials for an access token. On any
// failure the session stays unauthenticated and the failure is surfaced.
func (s *Session) Login() error {
	claim := servicedef.AuthClaim{
		Claim:    servicedef.ClaimUsernamePassword,
		Username: s.Username,
		Password: s.password,
	}
	var jwt servicedef.JWT
	if err := s.client.post("/v1/auth/auth", claim, &jwt, ""); err != nil {
		return err
	}
	s.accessToken = jwt.AccessToken
	s.expiry = s.now().Add(time.Duration(jwt.ExpiresIn) * time.Second)
	return nil
}

// Logout invalidates the session server-side. Local state is cleared only
// if the request succeeds; a failed logout leaves the session unchanged.
func (s *Session) Logout() error {
	if err := s.client.post("/v1/auth/logout", struct{}{}, nil, s.accessToken); err != nil {
		return err
	}
	s.clear()
	return nil
}

// CheckAuthenticated reports whether the session currently holds a live
// access token. An expired token is cleared without any network call.
// Otherwise the token is checked against the who-am-I endpoint and
// cleared if the service rejects it. A transport failure is surfaced
// without drawing any conclusion about the token.
func (s *Session) CheckAuthenticated() (bool, error) {
	if s.accessToken == "" {
		return false, nil
	}
	if !s.now().Before(s.expiry) {
		s.clear()
		return false, nil
	}
	err := s.client.get("/v1/user/me", s.accessToken)
	if err == nil {
		return true, nil
	}
	if IsRejection(err) {
		s.clear()
		return false, nil
	}
	return false, err
}

// UpdatePassword replaces the stored credential after a completed
// password reset, so the next Login uses the new password. It does not
// change the authentication state.
func (s *Session) UpdatePassword(newPassword string) {
	s.password = newPassword
}

func (s *Session) clear() {
	s.accessToken = ""
	s.expiry = time.Time{}
}
