package auth

import (
	"time"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"

	"github.com/Subby575/irctc/internal/domain"
)

// Claims is what a bearer token carries.
type Claims struct {
	UserID string
	Role   domain.Role
}

const tokenName = "irctc_token"
const defaultTokenTTL = 24 * time.Hour

// Tokens encodes and verifies signed bearer tokens. The token is an
// authenticated securecookie value transported in the Authorization header
// rather than a cookie, since the API is consumed by a SPA.
type Tokens struct {
	sc *securecookie.SecureCookie
}

func NewTokens(hashKey, blockKey []byte, ttl time.Duration) *Tokens {
	sc := securecookie.New(hashKey, blockKey)
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	sc.MaxAge(int(ttl.Seconds()))
	return &Tokens{sc: sc}
}

func (t *Tokens) Issue(c Claims) (string, error) {
	return t.sc.Encode(tokenName, c)
}

func (t *Tokens) Verify(token string) (Claims, error) {
	var c Claims
	if err := t.sc.Decode(tokenName, token, &c); err != nil {
		return Claims{}, err
	}
	return c, nil
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
