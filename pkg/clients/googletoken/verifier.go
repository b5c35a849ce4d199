package googletoken

import (
	"context"
	"fmt"

	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Verifier validates a bearer identity token and returns the email it was
// issued to.
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}

// GoogleVerifier checks tokens against Google's tokeninfo endpoint, which
// also covers Firebase-issued identity tokens.
type GoogleVerifier struct {
	service  *oauth2api.Service
	audience string
}

// NewGoogleVerifier builds the tokeninfo-backed verifier. audience, when
// non-empty, must match the token's issued-to client id.
func NewGoogleVerifier(ctx context.Context, audience string) (*GoogleVerifier, error) {
	service, err := oauth2api.NewService(ctx, option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokeninfo client: %w", err)
	}
	return &GoogleVerifier{service: service, audience: audience}, nil
}

// VerifyIDToken resolves the token and returns its verified email address.
func (v *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", fmt.Errorf("empty id token")
	}

	info, err := v.service.Tokeninfo().IdToken(idToken).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("tokeninfo lookup: %w", err)
	}

	if v.audience != "" && info.IssuedTo != v.audience {
		return "", fmt.Errorf("token issued to unexpected audience %s", info.IssuedTo)
	}
	if info.Email == "" {
		return "", fmt.Errorf("token carries no email claim")
	}
	if !info.VerifiedEmail {
		return "", fmt.Errorf("email %s is not verified", info.Email)
	}

	return info.Email, nil
}
