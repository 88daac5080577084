package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

var (
	ErrMissingToken = errors.New("captcha: token is required")
	ErrNotVerified  = errors.New("captcha: verification failed")
)

// Verifier checks reCAPTCHA response tokens against Google's siteverify API.
type Verifier struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

func NewVerifier(secretKey string) *Verifier {
	return &Verifier{
		secretKey: secretKey,
		verifyURL: defaultVerifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// IsConfigured reports whether a secret key is present. When unconfigured,
// callers decide whether to skip or reject.
func (v *Verifier) IsConfigured() bool {
	return v.secretKey != ""
}

type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify checks the client token. Returns ErrNotVerified when Google rejects
// the token, transport errors otherwise.
func (v *Verifier) Verify(ctx context.Context, token string) error {
	if token == "" {
		return ErrMissingToken
	}

	form := url.Values{}
	form.Set("secret", v.secretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("captcha: siteverify request failed: %w", err)
	}
	defer resp.Body.Close()

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("captcha: invalid siteverify response: %w", err)
	}

	if !body.Success {
		return fmt.Errorf("%w: %s", ErrNotVerified, strings.Join(body.ErrorCodes, ", "))
	}
	return nil
}
