package account

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efantasy/account-contract-tests/servicedef"
)

var jsonHeaders = http.Header{"Content-Type": {"application/json"}}

func TestNormalizeBaseURL(t *testing.T) {
	for input, want := range map[string]string{
		"api.efantasy.com":             "https://api.efantasy.com",
		"api.efantasy.com/":            "https://api.efantasy.com",
		"http://api.efantasy.com":      "https://api.efantasy.com",
		"https://api.efantasy.com/":    "https://api.efantasy.com",
		"https://api.efantasy.localhost": "https://api.efantasy.localhost",
	} {
		assert.Equal(t, want, NormalizeBaseURL(input), "input %q", input)
	}
}

func TestIsLocalHost(t *testing.T) {
	for host, want := range map[string]bool{
		"localhost":              true,
		"api.efantasy.localhost": true,
		"127.0.0.1":              true,
		"::1":                    true,
		"api.efantasy.com":       false,
		"efantasy.dev":           false,
		"10.1.2.3":               false,
	} {
		assert.Equal(t, want, isLocalHost(host), "host %q", host)
	}
}

func TestRejectionCarriesServerPayload(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(http.StatusBadRequest, jsonHeaders,
		[]byte(`{"code":1001,"message":"username already taken"}`))
	server := httptest.NewTLSServer(handler)
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.Register("some_user", "some_user@test.nu", "long-enough-password")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, int32(1001), apiErr.Code)
	assert.Equal(t, "username already taken", apiErr.Message)
	assert.True(t, IsRejection(err))
}

func TestRejectionWithUnparsableBody(t *testing.T) {
	handler := httphelpers.HandlerWithResponse(http.StatusBadGateway, nil, []byte("<html>nope</html>"))
	server := httptest.NewTLSServer(handler)
	defer server.Close()

	client := NewClient(server.URL, nil)
	err := client.VerifyEmail(NewSession(client, "some_user", "u@test.nu", "pw"), "tok")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestTransportFailureIsNotRejection(t *testing.T) {
	// Nothing listens here.
	client := NewClient("https://127.0.0.1:1", nil)
	_, err := client.Register("some_user", "some_user@test.nu", "long-enough-password")
	require.Error(t, err)
	assert.False(t, IsRejection(err), "transport failures must not look like service rejections")
}

func TestRegisterReturnsUnauthenticatedSession(t *testing.T) {
	handler := httphelpers.HandlerWithStatus(http.StatusCreated)
	server := httptest.NewTLSServer(handler)
	defer server.Close()

	client := NewClient(server.URL, nil)
	s, err := client.Register("Some_User", "some_user@test.nu", "long-enough-password")
	require.NoError(t, err)

	assert.Equal(t, "some_user", s.Username, "username is case-normalized")
	assert.Equal(t, server.URL, s.BaseURL())

	authenticated, err := s.CheckAuthenticated()
	require.NoError(t, err)
	assert.False(t, authenticated, "a fresh registration is not authenticated")
}

func TestVerifyEmailSendsUsernameAndToken(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(http.StatusOK))
	server := httptest.NewTLSServer(handler)
	defer server.Close()

	client := NewClient(server.URL, nil)
	s := NewSession(client, "some_user", "some_user@test.nu", "pw")
	require.NoError(t, client.VerifyEmail(s, "tok-123"))

	info := <-requests
	assert.Equal(t, "/v1/auth/verifyemail", info.Request.URL.Path)
	var sent servicedef.VerifyEmail
	require.NoError(t, json.Unmarshal(info.Body, &sent))
	assert.Equal(t, servicedef.VerifyEmail{Username: "some_user", Token: "tok-123"}, sent)
}

func TestConfirmPasswordResetSendsNewPassword(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(http.StatusOK))
	server := httptest.NewTLSServer(handler)
	defer server.Close()

	client := NewClient(server.URL, nil)
	s := NewSession(client, "some_user", "some_user@test.nu", "old-password")
	require.NoError(t, client.ConfirmPasswordReset(s, "tok-123", "brand-new-password"))

	info := <-requests
	assert.Equal(t, "/v1/auth/passwordreset/verify", info.Request.URL.Path)
	var sent servicedef.PasswordResetVerify
	require.NoError(t, json.Unmarshal(info.Body, &sent))
	assert.Equal(t, servicedef.PasswordResetVerify{
		Username: "some_user",
		Token:    "tok-123",
		Password: "brand-new-password",
	}, sent)
}
