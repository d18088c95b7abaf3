package identity

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"time"
)

// Caller is the signed-in user as asserted by the website session.
// Roles are deliberately absent, they are always resolved from the store.
type Caller struct {
	DiscordId string
	Name      string
	// IsAdmin is the session level admin flag. Only bot deletion consults it.
	IsAdmin bool
}

type Claims struct {
	Name    string `json:"name,omitempty"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid session token")

type Parser struct {
	key []byte
}

func NewParser(signingKey string) *Parser {
	return &Parser{key: []byte(signingKey)}
}

func (p *Parser) Parse(token string) (*Caller, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Caller{
		DiscordId: claims.Subject,
		Name:      claims.Name,
		IsAdmin:   claims.IsAdmin,
	}, nil
}

type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(signingKey string, ttl time.Duration) *Issuer {
	return &Issuer{key: []byte(signingKey), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(caller Caller) (string, error) {
	now := i.now()
	claims := Claims{
		Name:    caller.Name,
		IsAdmin: caller.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.DiscordId,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
}
