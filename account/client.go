// Package account is the harness's client for the service's
// account-lifecycle API: registration, credential exchange, email
// verification, and password reset. Responses outside the 2xx range are
// translated into typed failures, never swallowed.
package account

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/efantasy/account-contract-tests/framework"
	"github.com/efantasy/account-contract-tests/servicedef"
)

const defaultTimeout = 30 * time.Second

// Client issues account-lifecycle requests against one deployment of the
// service. It performs no transport-level retries: retrying is a
// domain-specific concern that belongs to the verification poller alone.
type Client struct {
	http    *resty.Client
	baseURL string
	log     framework.Logger
}

// NewClient creates a client bound to the given base URL. The URL is
// normalized first: the scheme is forced to https and any trailing slash
// is stripped. Certificate validation is skipped only when the host is a
// local development host (a *localhost name or a loopback address); every
// other host gets full verification.
func NewClient(baseURL string, log framework.Logger) *Client {
	if log == nil {
		log = framework.NullLogger()
	}
	normalized := NormalizeBaseURL(baseURL)

	hc := resty.New().
		SetBaseURL(normalized).
		SetTimeout(defaultTimeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if isLocalHost(hostOf(normalized)) {
		hc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &Client{http: hc, baseURL: normalized, log: log}
}

func (c *Client) BaseURL() string { return c.baseURL }

// NormalizeBaseURL forces the https scheme (even local development is
// served over TLS) and strips a trailing slash.
func NormalizeBaseURL(raw string) string {
	u := raw
	if i := strings.Index(u, "//"); i >= 0 {
		u = u[i+2:]
	}
	return "https://" + strings.TrimSuffix(u, "/")
}

func hostOf(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func isLocalHost(host string) bool {
	if strings.HasSuffix(host, "localhost") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

// Register creates a new account. On success it returns an
// unauthenticated session bound to this client's normalized base URL;
// call Session.Login to authenticate it.
func (c *Client) Register(username, email, password string) (*Session, error) {
	body := servicedef.Account{Username: username, Email: email, Password: password}
	if err := c.post("/v1/auth/register", body, nil, ""); err != nil {
		return nil, err
	}
	return newSession(c, username, email, password), nil
}

// VerifyEmail submits a verification token extracted from a welcome
// email. The service treats re-verification with the same token as a
// no-op, so calling this twice with one token succeeds both times.
func (c *Client) VerifyEmail(s *Session, token string) error {
	body := servicedef.VerifyEmail{Username: s.Username, Token: token}
	return c.post("/v1/auth/verifyemail", body, nil, "")
}

// RequestPasswordReset asks the service to send a password-reset email
// for the session's account.
func (c *Client) RequestPasswordReset(s *Session) error {
	body := servicedef.PasswordResetRequest{Username: s.Username, Email: s.Email}
	return c.post("/v1/auth/passwordreset/request", body, nil, "")
}

// ConfirmPasswordReset submits the emailed token together with the new
// password. On success the caller is expected to update the session via
// UpdatePassword and re-authenticate.
func (c *Client) ConfirmPasswordReset(s *Session, token, newPassword string) error {
	body := servicedef.PasswordResetVerify{Username: s.Username, Token: token, Password: newPassword}
	return c.post("/v1/auth/passwordreset/verify", body, nil, "")
}

func (c *Client) post(path string, body, out interface{}, authToken string) error {
	req := c.http.R().SetBody(body)
	if out != nil {
		req.SetResult(out)
	}
	if authToken != "" {
		req.SetAuthToken(authToken)
	}
	c.log.Printf("POST %s%s", c.baseURL, path)
	resp, err := req.Post(path)
	return c.outcome(resp, err, path)
}

func (c *Client) get(path, authToken string) error {
	req := c.http.R()
	if authToken != "" {
		req.SetAuthToken(authToken)
	}
	c.log.Printf("GET %s%s", c.baseURL, path)
	resp, err := req.Get(path)
	return c.outcome(resp, err, path)
}

func (c *Client) outcome(resp *resty.Response, err error, path string) error {
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode()}
		var payload servicedef.APIError
		if jsonErr := json.Unmarshal(resp.Body(), &payload); jsonErr == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
		}
		c.log.Printf("%s returned HTTP %d: %s", path, resp.StatusCode(), string(resp.Body()))
		return apiErr
	}
	return nil
}
