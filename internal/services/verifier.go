package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseVerifier validates Firebase ID tokens and extracts the verified
// email.
type FirebaseVerifier struct {
	auth *auth.Client
}

// NewFirebaseVerifier builds a verifier from the base64-encoded service
// account JSON.
func NewFirebaseVerifier(ctx context.Context, encodedServiceKey string) (*FirebaseVerifier, error) {
	serviceKey, err := base64.StdEncoding.DecodeString(encodedServiceKey)
	if err != nil {
		return nil, fmt.Errorf("decode service key: %w", err)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsJSON(serviceKey))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth client: %w", err)
	}

	return &FirebaseVerifier{auth: client}, nil
}

// Verify checks the ID token and returns the verified email, lowercased.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := v.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}

	email, ok := token.Claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("token has no email claim")
	}

	return strings.ToLower(email), nil
}
