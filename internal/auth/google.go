package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"chore-coin-go/internal/domain/account"
	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
)

var ErrIdentityRejected = errors.New("identity token rejected")

// errKeysUnavailable means Google's signing keys could not be fetched. The
// token itself was never judged, so it is not an ErrIdentityRejected.
var errKeysUnavailable = errors.New("google signing keys unavailable")

const (
	keysMaxAge     = time.Hour
	keysMinRefetch = time.Minute
	clockLeeway    = 30 * time.Second
)

var googleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

type googleClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// GoogleVerifier checks Google ID tokens locally: the RS256 signature against
// Google's published key set, then audience, issuer and expiry. Keys are
// cached and refetched when they age out or a token names an unknown key id.
type GoogleVerifier struct {
	certsURL string
	clientID string
	client   *http.Client
	now      func() time.Time

	mu        sync.Mutex
	keys      jose.JSONWebKeySet
	fetchedAt time.Time
}

func NewGoogleVerifier(certsURL, clientID string, timeout time.Duration) *GoogleVerifier {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &GoogleVerifier{
		certsURL: strings.TrimSpace(certsURL),
		clientID: strings.TrimSpace(clientID),
		client: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (account.Identity, error) {
	if v.clientID == "" {
		return account.Identity{}, fmt.Errorf("%w: client id not configured", ErrIdentityRejected)
	}

	var claims googleClaims
	_, err := jwt.ParseWithClaims(idToken, &claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		return v.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(clockLeeway),
		jwt.WithTimeFunc(v.now),
	)
	if errors.Is(err, errKeysUnavailable) {
		return account.Identity{}, fmt.Errorf("verify google token: %w", err)
	}
	if err != nil {
		return account.Identity{}, fmt.Errorf("%w: %v", ErrIdentityRejected, err)
	}

	if !slices.Contains(googleIssuers, claims.Issuer) {
		return account.Identity{}, fmt.Errorf("%w: unexpected issuer %q", ErrIdentityRejected, claims.Issuer)
	}

	return account.Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

func (v *GoogleVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	age := now.Sub(v.fetchedAt)
	if !v.fetchedAt.IsZero() && age < keysMaxAge {
		if key, ok := v.lookup(kid); ok {
			return key, nil
		}
		if age < keysMinRefetch {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
	}

	if err := v.refresh(ctx); err != nil {
		return nil, err
	}
	v.fetchedAt = now

	if key, ok := v.lookup(kid); ok {
		return key, nil
	}
	return nil, fmt.Errorf("unknown key id %q", kid)
}

func (v *GoogleVerifier) lookup(kid string) (*rsa.PublicKey, bool) {
	if kid == "" {
		return nil, false
	}
	for _, jwk := range v.keys.Key(kid) {
		if key, ok := jwk.Key.(*rsa.PublicKey); ok {
			return key, true
		}
	}
	return nil, false
}

func (v *GoogleVerifier) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", errKeysUnavailable, err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errKeysUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: certs status %d", errKeysUnavailable, resp.StatusCode)
	}

	var keys jose.JSONWebKeySet
	if err := json.NewDecoder(resp.Body).Decode(&keys); err != nil {
		return fmt.Errorf("%w: decode certs: %v", errKeysUnavailable, err)
	}

	v.keys = keys
	return nil
}
