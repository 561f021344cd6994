package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/lendcore/veriflow/internal/config"
)

// ErrUnauthenticated indicates the request carried no resolvable identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// Resolver produces a Caller from an incoming request.
type Resolver interface {
	Resolve(r *http.Request) (Caller, error)
}

// NewResolver creates a Resolver from auth configuration. When auth is
// disabled it returns a static resolver carrying the configured dev caller.
func NewResolver(ctx context.Context, cfg *config.AuthConfig) (Resolver, error) {
	if !cfg.Enabled {
		role, err := ParseRole(cfg.DevRole)
		if err != nil {
			return nil, fmt.Errorf("dev role: %w", err)
		}
		return &staticResolver{
			caller: Caller{
				Subject: cfg.DevSubject,
				Name:    cfg.DevSubject,
				Role:    role,
				BankID:  cfg.DevBankID,
			},
		}, nil
	}

	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider: %w", err)
	}

	return &oidcResolver{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

type staticResolver struct {
	caller Caller
}

func (s *staticResolver) Resolve(r *http.Request) (Caller, error) {
	return s.caller, nil
}

type oidcResolver struct {
	verifier *oidc.IDTokenVerifier
}

type tokenClaims struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	BankID string `json:"bank_id"`
}

func (o *oidcResolver) Resolve(r *http.Request) (Caller, error) {
	raw, err := bearerToken(r)
	if err != nil {
		return Caller{}, err
	}

	token, err := o.verifier.Verify(r.Context(), raw)
	if err != nil {
		return Caller{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	var claims tokenClaims
	if err := token.Claims(&claims); err != nil {
		return Caller{}, fmt.Errorf("%w: claims: %v", ErrUnauthenticated, err)
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return Caller{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	return Caller{
		Subject: token.Subject,
		Name:    claims.Name,
		Role:    role,
		BankID:  claims.BankID,
	}, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("%w: missing authorization header", ErrUnauthenticated)
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", fmt.Errorf("%w: malformed authorization header", ErrUnauthenticated)
	}

	return token, nil
}
