package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *Verifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	v := NewVerifier("test-secret")
	v.verifyURL = srv.URL
	return v
}

func TestVerify(t *testing.T) {
	t.Run("passes a valid token", func(t *testing.T) {
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "test-secret", r.Form.Get("secret"))
			assert.Equal(t, "good-token", r.Form.Get("response"))
			w.Write([]byte(`{"success": true}`))
		})

		assert.NoError(t, v.Verify(context.Background(), "good-token"))
	})

	t.Run("returns ErrNotVerified on rejection", func(t *testing.T) {
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success": false, "error-codes": ["invalid-input-response"]}`))
		})

		err := v.Verify(context.Background(), "bad-token")
		assert.ErrorIs(t, err, ErrNotVerified)
		assert.Contains(t, err.Error(), "invalid-input-response")
	})

	t.Run("rejects an empty token without a request", func(t *testing.T) {
		called := false
		v := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		assert.ErrorIs(t, v.Verify(context.Background(), ""), ErrMissingToken)
		assert.False(t, called)
	})
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, NewVerifier("").IsConfigured())
	assert.True(t, NewVerifier("key").IsConfigured())
}
