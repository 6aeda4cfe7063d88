package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing.
	BcryptCost = 10

	// AccessTokenExpiration bounds how long a session token is honored.
	AccessTokenExpiration = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
)

// Profile is the signed-in user as seen by the client.
type Profile struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Claims are the JWT claims carried by a session token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// SessionService issues and validates session tokens. The token is the whole
// authorization model here: holding a valid one marks the session signed in,
// nothing more. Accounts live in memory for the process lifetime.
type SessionService interface {
	Signup(ctx context.Context, email, password, firstName, lastName string) (token string, profile *Profile, err error)
	Login(ctx context.Context, email, password string) (token string, profile *Profile, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type account struct {
	email        string
	passwordHash string
	firstName    string
	lastName     string
}

type sessionService struct {
	mu        sync.Mutex
	accounts  map[string]*account
	jwtSecret string
}

// NewSessionService creates a session service with an empty account registry.
func NewSessionService(jwtSecret string) SessionService {
	return &sessionService{
		accounts:  make(map[string]*account),
		jwtSecret: jwtSecret,
	}
}

// Signup registers an account with a bcrypt-hashed password and signs the
// new user in.
func (s *sessionService) Signup(ctx context.Context, email, password, firstName, lastName string) (string, *Profile, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	if _, exists := s.accounts[email]; exists {
		s.mu.Unlock()
		return "", nil, ErrEmailTaken
	}
	acc := &account{
		email:        email,
		passwordHash: string(hashed),
		firstName:    firstName,
		lastName:     lastName,
	}
	s.accounts[email] = acc
	s.mu.Unlock()

	return s.issueToken(acc)
}

// Login verifies the password and issues a fresh session token.
func (s *sessionService) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	s.mu.Lock()
	acc, exists := s.accounts[email]
	s.mu.Unlock()
	if !exists {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	return s.issueToken(acc)
}

// ValidateToken parses a session token and returns its claims.
func (s *sessionService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *sessionService) issueToken(acc *account) (string, *Profile, error) {
	name := strings.TrimSpace(acc.firstName + " " + acc.lastName)
	claims := &Claims{
		Email: acc.email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenExpiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, &Profile{
		Email:     acc.email,
		Name:      name,
		FirstName: acc.firstName,
		LastName:  acc.lastName,
	}, nil
}
