package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

const tokenIssuer = "veritas-api"

// Claims is the payload carried by every issued access token. Sub-admin
// tokens snapshot the permission set at issuance time; the token is the
// only carrier, there is no server-side revocation list.
type Claims struct {
	jwt.RegisteredClaims
	Role  Role     `json:"role"`
	Email string   `json:"email"`
	Perms []string `json:"perms,omitempty"`
}

// TokenIssuer mints and verifies signed access tokens.
type TokenIssuer struct {
	secret      []byte
	adminTTL    time.Duration
	subAdminTTL time.Duration
	now         func() time.Time
}

// NewTokenIssuer constructs a TokenIssuer. The secret must already have
// been validated as present at startup.
func NewTokenIssuer(secret string, adminTTL, subAdminTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:      []byte(secret),
		adminTTL:    adminTTL,
		subAdminTTL: subAdminTTL,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// IssueAdmin mints a token for an administrator.
func (i *TokenIssuer) IssueAdmin(admin *Admin) (string, error) {
	return i.sign(admin.ID, RoleAdmin, admin.Email, nil, i.adminTTL)
}

// IssueSubAdmin mints a token for a sub-administrator, embedding the
// permission set snapshot.
func (i *TokenIssuer) IssueSubAdmin(account *SubAdminAccount) (string, error) {
	return i.sign(account.ID, RoleSubAdmin, account.Email, account.Caps.Modules(), i.subAdminTTL)
}

func (i *TokenIssuer) sign(subject string, role Role, email string, perms []string, ttl time.Duration) (string, error) {
	issuedAt := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Role:  role,
		Email: email,
		Perms: perms,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", shared.Internal("Internal server error.", err)
	}
	return signed, nil
}

// Verify checks signature and expiry, returning the decoded claims.
// Failures map onto the authentication taxonomy so the guard can reject
// with the right message.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, shared.Authentication("Token expired.")
		}
		return nil, shared.Authentication("Invalid token.")
	}
	if claims.Subject == "" || (claims.Role != RoleAdmin && claims.Role != RoleSubAdmin) {
		return nil, shared.Authentication("Invalid token format.")
	}
	return claims, nil
}

// Principal converts verified claims into the request-scoped identity.
func (c *Claims) Principal() Principal {
	p := Principal{ID: c.Subject, Email: c.Email, Role: c.Role}
	if c.Role == RoleSubAdmin {
		set := make(CapabilitySet, len(c.Perms))
		for _, name := range c.Perms {
			set[Capability(name)] = true
		}
		p.Caps = set
	}
	return p
}
