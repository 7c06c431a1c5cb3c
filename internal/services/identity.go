package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const identityIssuer = "pickup-api"

// IdentityService issues and checks the anonymous identity tokens clients
// present as "Authorization: Bearer". A token only proves a stable user id
// and display name; it grants nothing beyond that.
type IdentityService struct {
	secret []byte
	expiry time.Duration
}

type IdentityClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

type IdentityToken struct {
	Token     string
	UserID    string
	Name      string
	ExpiresIn int64
}

func NewIdentityService(secret string, expiry time.Duration) *IdentityService {
	return &IdentityService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Issue signs a token for userID, minting a new id when userID is empty.
func (s *IdentityService) Issue(userID, name string) (*IdentityToken, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = uuid.NewString()
	}
	name = sanitizeText(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	now := time.Now()
	claims := IdentityClaims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    identityIssuer,
			Subject:   userID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign identity token: %w", err)
	}

	return &IdentityToken{
		Token:     token,
		UserID:    userID,
		Name:      name,
		ExpiresIn: int64(s.expiry.Seconds()),
	}, nil
}

func (s *IdentityService) Validate(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(identityIssuer))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
