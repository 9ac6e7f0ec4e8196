// Package auth guards the review and force-retrain endpoints behind a
// single moderator credential: Argon2id password hashing and JWT
// issuance/verification. There is no per-tenant RBAC.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidHashFormat  = errors.New("invalid password hash format")
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// Claims is the JWT payload for the single moderator role.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Service struct {
	moderatorUsername string
	moderatorHash     string
	jwtSecret         []byte
	tokenTTL          time.Duration
}

func New(moderatorUsername, moderatorPasswordHash, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{
		moderatorUsername: moderatorUsername,
		moderatorHash:     moderatorPasswordHash,
		jwtSecret:         []byte(jwtSecret),
		tokenTTL:          tokenTTL,
	}
}

// HashPassword produces an Argon2id encoded hash suitable for
// moderator_password_hash in the config file.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(encodedHash, password string) (bool, error) {
	sections := strings.Split(encodedHash, "$")
	if len(sections) != 6 {
		return false, ErrInvalidHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(sections[2], "v=%d", &version); err != nil {
		return false, ErrInvalidHashFormat
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(sections[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false, ErrInvalidHashFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil {
		return false, ErrInvalidHashFormat
	}
	expected, err := base64.RawStdEncoding.DecodeString(sections[5])
	if err != nil {
		return false, ErrInvalidHashFormat
	}

	actual := argon2.IDKey([]byte(password), salt, t, m, p, uint32(len(expected)))
	return subtle.ConstantTimeCompare(actual, expected) == 1, nil
}

// Login checks username/password against the single configured moderator
// and issues a JWT on success.
func (s *Service) Login(username, password string) (string, time.Time, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.moderatorUsername)) != 1 {
		return "", time.Time{}, ErrInvalidCredentials
	}
	ok, err := verifyPassword(s.moderatorHash, password)
	if err != nil || !ok {
		return "", time.Time{}, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken parses and validates a bearer token, returning its claims.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
