package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authdomain "github.com/WooodHead/everpost-backend/internal/auth/domain"
	"github.com/WooodHead/everpost-backend/internal/common/clock"
	"github.com/WooodHead/everpost-backend/internal/common/jwtverify"
)

var ErrMissingJWTSecret = errors.New("jwt secret is empty")

type TokenIssuer struct {
	jwtSecret      []byte
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(jwtSecret string, accessTokenTTL time.Duration, clock clock.Clock) (*TokenIssuer, error) {
	if jwtSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		clock:          clock,
		accessTokenTTL: accessTokenTTL,
	}, nil
}

// Issue signs {id, email} with HS512. iat and exp are the only other claims.
func (ti *TokenIssuer) Issue(userID int64, email string) (authdomain.Token, error) {
	now := ti.clock.Now()
	expiresAt := now.Add(ti.accessTokenTTL)

	claims := jwtverify.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(ti.jwtSecret)
	if err != nil {
		return authdomain.Token{}, err
	}

	incrementAccessTokensIssued()
	return authdomain.Token{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

func (ti *TokenIssuer) Verify(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret, ti.clock.Now)
}
