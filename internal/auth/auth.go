// Package auth implements signup, login and token verification. Passwords
// are bcrypt-hashed; sessions are short-lived JWTs whose IDs are persisted so
// logout actually revokes them.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/calder-r/veriscan/internal/interfaces"
	"github.com/calder-r/veriscan/internal/logging"
	"github.com/calder-r/veriscan/internal/model"
)

var (
	ErrMissingFields      = errors.New("please fill in all fields")
	ErrInvalidEmail       = errors.New("please enter a valid email")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired session token")
)

// Loose on purpose: anything shaped like an address passes, the way the
// signup form always validated it.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Config parameterizes token signing.
type Config struct {
	// JWTSecret signs session tokens. Required outside of tests.
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTLHours is the session lifetime. Zero means 24.
	TokenTTLHours int `yaml:"token_ttl_hours"`
}

// Service owns user records and session tokens, both persisted through the
// KV contract under user:<email> and session:<jti> keys.
type Service struct {
	kv       interfaces.KVStore
	secret   []byte
	tokenTTL time.Duration
	logger   logging.Logger
}

// userRecord is the stored shape; the password hash never leaves this package.
type userRecord struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewService(cfg Config, kv interfaces.KVStore, logger logging.Logger) (*Service, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("auth requires a jwt_secret")
	}
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		kv:       kv,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: ttl,
		logger:   logger.With(logging.Field{Key: "component", Value: "auth"}),
	}, nil
}

func userKey(email string) string  { return "user:" + strings.ToLower(strings.TrimSpace(email)) }
func sessionKey(jti string) string { return "session:" + jti }

func (r *userRecord) public() *model.User {
	return &model.User{Name: r.Name, Email: r.Email, CreatedAt: r.CreatedAt}
}

// Signup registers a new account. Name, email and password are all required;
// the email must look like an address and must not be taken.
func (s *Service) Signup(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	if _, exists, err := s.kv.Get(ctx, userKey(email)); err != nil {
		return nil, fmt.Errorf("checking existing account: %w", err)
	} else if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	record := userRecord{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	encoded, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding user record: %w", err)
	}
	if err := s.kv.Set(ctx, userKey(email), string(encoded)); err != nil {
		return nil, fmt.Errorf("persisting user record: %w", err)
	}

	s.logger.Info("account created", logging.Field{Key: "email", Value: email})
	return record.public(), nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", nil, ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return "", nil, ErrInvalidEmail
	}

	raw, exists, err := s.kv.Get(ctx, userKey(email))
	if err != nil {
		return "", nil, fmt.Errorf("loading user record: %w", err)
	}
	if !exists {
		return "", nil, ErrInvalidCredentials
	}

	var record userRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		// A corrupt record means the account is unusable, not a crash.
		s.logger.Warn("discarding corrupt user record", logging.Field{Key: "email", Value: email})
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(record.PasswordHash, []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	jti := uuid.NewString()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "veriscan",
		Subject:   record.Email,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("signing session token: %w", err)
	}
	if err := s.kv.Set(ctx, sessionKey(jti), record.Email); err != nil {
		return "", nil, fmt.Errorf("persisting session: %w", err)
	}

	s.logger.Info("login", logging.Field{Key: "email", Value: record.Email})
	return token, record.public(), nil
}

// Verify validates a session token and returns the email it belongs to.
// Tokens whose session row was removed (logout) are rejected.
func (s *Service) Verify(ctx context.Context, token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if _, exists, err := s.kv.Get(ctx, sessionKey(claims.ID)); err != nil {
		return "", fmt.Errorf("checking session: %w", err)
	} else if !exists {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Logout revokes the session behind token. An already-invalid token is not
// an error; the session is gone either way.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	if err := s.kv.Remove(ctx, sessionKey(claims.ID)); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	s.logger.Info("logout", logging.Field{Key: "email", Value: claims.Subject})
	return nil
}

func (s *Service) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
