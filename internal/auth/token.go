package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/enterprize-service/internal/domain"
)

// ErrInvalidToken covers signature failures, malformed tokens, expiry and
// purpose mismatches alike.
var ErrInvalidToken = domain.ErrInvalidToken

// Token purposes, carried in the registered subject claim. Decoding checks
// the subject so a token issued for one flow cannot be replayed in another.
const (
	subjectAccess     = "access"
	subjectActivation = "activation"
	subjectPassword   = "password"
	subjectUsername   = "username"
)

// Claims describes the JWT payload for all token categories.
type Claims struct {
	Username    string `json:"username"`
	NewUsername string `json:"new_username,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates the four categories of signed assertions:
// access, activation, password change and username change.
type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
	changeTTL time.Duration
}

// NewTokenManager builds a manager. accessTTL scopes access tokens, changeTTL
// scopes the short-lived password/username change tokens.
func NewTokenManager(secret string, accessTTL, changeTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if changeTTL <= 0 {
		changeTTL = 10 * time.Minute
	}
	return &TokenManager{secret: []byte(secret), accessTTL: accessTTL, changeTTL: changeTTL}
}

// CreateAccessToken issues a login session token.
func (tm *TokenManager) CreateAccessToken(username string) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.accessTTL)
	token, err := tm.sign(Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectAccess,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	return token, expiresAt, err
}

// CreateActivationToken issues the code mailed after registration. No expiry
// is enforced for this category.
func (tm *TokenManager) CreateActivationToken(username string) (string, error) {
	return tm.sign(Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subjectActivation,
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
}

// CreatePasswordChangeToken issues a short-lived password change token.
func (tm *TokenManager) CreatePasswordChangeToken(username string) (string, error) {
	return tm.sign(Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectPassword,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.changeTTL)),
		},
	})
}

// CreateUsernameChangeToken binds the current and the desired username in one
// short-lived token.
func (tm *TokenManager) CreateUsernameChangeToken(username, newUsername string) (string, error) {
	return tm.sign(Claims{
		Username:    username,
		NewUsername: newUsername,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectUsername,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.changeTTL)),
		},
	})
}

// DecodeAccessToken validates an access token and returns the username.
func (tm *TokenManager) DecodeAccessToken(token string) (string, error) {
	claims, err := tm.parse(token, subjectAccess)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// DecodeActivationToken validates an activation token and returns the username.
func (tm *TokenManager) DecodeActivationToken(token string) (string, error) {
	claims, err := tm.parse(token, subjectActivation)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// DecodePasswordChangeToken validates a password change token.
func (tm *TokenManager) DecodePasswordChangeToken(token string) (string, error) {
	claims, err := tm.parse(token, subjectPassword)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// DecodeUsernameChangeToken validates a username change token and returns the
// old and the new username it was issued for.
func (tm *TokenManager) DecodeUsernameChangeToken(token string) (username, newUsername string, err error) {
	claims, err := tm.parse(token, subjectUsername)
	if err != nil {
		return "", "", err
	}
	return claims.Username, claims.NewUsername, nil
}

func (tm *TokenManager) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

func (tm *TokenManager) parse(tokenStr, expectedSubject string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject != expectedSubject {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
