// Package auth wraps federated identity-token verification.
package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleProfile is the subset of the verified ID-token payload the auth
// service needs.
type GoogleProfile struct {
	Email   string
	Name    string
	Subject string
}

// TokenVerifier verifies a raw identity token; tests substitute a stub.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleProfile, error)
}

// GoogleVerifier validates Google ID tokens against the configured OAuth
// client id (signature, audience, expiry).
type GoogleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("id token verification failed: %w", err)
	}

	profile := &GoogleProfile{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		profile.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		profile.Name = name
	}

	if profile.Email == "" {
		return nil, fmt.Errorf("id token carries no email claim")
	}

	return profile, nil
}
