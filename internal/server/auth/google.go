package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// Identity is what the identity provider vouches for.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// IdentityVerifier turns a provider credential into an Identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

type payloadValidator interface {
	Validate(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)
}

// GoogleVerifier validates Google-issued ID tokens for one OAuth client id.
type GoogleVerifier struct {
	validator payloadValidator
	audience  string
}

// newIDTokenValidator is a seam for testing idtoken.NewValidator.
var newIDTokenValidator = func(ctx context.Context, opts ...option.ClientOption) (payloadValidator, error) {
	return idtoken.NewValidator(ctx, opts...)
}

// NewGoogleVerifier builds a verifier for clientID. httpClient is optional and
// is used to fetch Google's signing certificates.
func NewGoogleVerifier(ctx context.Context, clientID string, httpClient *http.Client) (*GoogleVerifier, error) {
	var opts []option.ClientOption
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	v, err := newIDTokenValidator(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("idtoken validator: %w", err)
	}
	return &GoogleVerifier{validator: v, audience: clientID}, nil
}

// Verify checks signature, issuer, expiry and audience of an ID token.
// Every rejection wraps common.ErrInvalidToken.
func (g *GoogleVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, common.ErrInvalidToken
	}
	if g.audience == "" {
		return nil, fmt.Errorf("%w: google client id is not configured", common.ErrInvalidToken)
	}

	payload, err := g.validator.Validate(ctx, credential, g.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	id := &Identity{Subject: payload.Subject}
	id.Email, _ = payload.Claims["email"].(string)
	id.Name, _ = payload.Claims["name"].(string)
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, fmt.Errorf("%w: email not verified", common.ErrInvalidToken)
	}
	if id.Email == "" {
		return nil, fmt.Errorf("%w: token has no email", common.ErrInvalidToken)
	}
	id.Email = strings.ToLower(id.Email)
	if id.Name == "" {
		id.Name, _, _ = strings.Cut(id.Email, "@")
	}
	return id, nil
}
