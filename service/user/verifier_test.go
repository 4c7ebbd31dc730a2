package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nocall/nocall-server/cmd/models"
)

func TestRemoteVerifier_Valid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "0xabc", payload["address"])

		json.NewEncoder(w).Encode(map[string]bool{"valid": true})
	}))
	defer server.Close()

	verifier := NewRemoteVerifier(server.URL)
	valid, err := verifier.Verify(context.Background(), "0xabc", "message", "signature")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestRemoteVerifier_Invalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"valid": false})
	}))
	defer server.Close()

	verifier := NewRemoteVerifier(server.URL)
	valid, err := verifier.Verify(context.Background(), "0xabc", "message", "signature")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestRemoteVerifier_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	verifier := NewRemoteVerifier(server.URL)
	_, err := verifier.Verify(context.Background(), "0xabc", "message", "signature")
	assert.Error(t, err)
}

func TestRefreshTokenMatches(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("token-value"), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &models.User{RefreshTokenHash: string(hash)}
	user.RefreshTokenExpiredAt = time.Now().Add(time.Hour)

	assert.True(t, refreshTokenMatches(user, "token-value"))
	assert.False(t, refreshTokenMatches(user, "wrong-value"))

	user.RefreshTokenExpiredAt = time.Now().Add(-time.Hour)
	assert.False(t, refreshTokenMatches(user, "token-value"))

	assert.False(t, refreshTokenMatches(&models.User{}, "token-value"))
}
