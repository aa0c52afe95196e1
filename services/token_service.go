package services

import (
	"errors"
	"time"

	"sunnah-steps/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Claims is the only accepted token payload. Anything that does not decode
// into it with a valid UUID user id is rejected.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless HS256 bearer tokens. There is no
// server-side record of issued tokens; a token stays valid until it expires.
type TokenService interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) TokenService {
	return &tokenService{secret: secret, ttl: ttl, now: time.Now}
}

func (s *tokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("token subject is empty")
	}

	now := s.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify returns the user id carried by a valid token. Malformed, tampered,
// expired and wrongly shaped tokens all yield models.ErrInvalidToken.
func (s *tokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", models.ErrInvalidToken
	}

	now := s.now()
	if !claims.VerifyExpiresAt(now, true) || !claims.VerifyNotBefore(now, false) {
		return "", models.ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.UserID); err != nil {
		return "", models.ErrInvalidToken
	}

	return claims.UserID, nil
}
