package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/teamtasker/task-manager-api/internal/models"
	"github.com/teamtasker/task-manager-api/internal/repository"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrUsernameRequired     = errors.New("username is required")
	ErrPasswordRequired     = errors.New("password is required")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// Principal is the authenticated identity decoded from a validated token.
type Principal struct {
	Username string
	IsAdmin  bool
}

type tokenClaims struct {
	IsAdmin bool `json:"is_admin"`
	jwt.RegisteredClaims
}

// AuthService handles registration, credential verification and tokens.
type AuthService struct {
	userRepo  repository.UserRepository
	secret    []byte
	tokenTTL  time.Duration
	dummyHash []byte
}

// NewAuthService creates a new AuthService. The signing secret and token
// lifetime come from configuration; the service never reads globals.
func NewAuthService(userRepo repository.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	// Hash compared against when the login does not exist, so both
	// failure paths cost one bcrypt verification.
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("login-timing-equalizer"), bcrypt.DefaultCost)
	if err != nil {
		dummyHash = nil
	}

	return &AuthService{
		userRepo:  userRepo,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		dummyHash: dummyHash,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Username string
	Password string
	IsAdmin  bool
}

// Register creates a new account with a salted one-way password hash.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		IsAdmin:      input.IsAdmin,
	}

	if err := s.userRepo.Create(user); err != nil {
		// The unique index is the backstop for two concurrent
		// registrations racing past the lookup above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token   string
	IsAdmin bool
	User    *models.User
}

// Login verifies credentials and issues a signed, time-limited token.
// Unknown logins and wrong passwords return the same error.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.dummyHash != nil {
				_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(input.Password))
			}
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{
		Token:   token,
		IsAdmin: user.IsAdmin,
		User:    user,
	}, nil
}

// ValidateToken verifies signature and expiry, then returns the embedded
// principal. It performs no database lookup: a valid signature implies
// trust in the claims until expiry.
func (s *AuthService) ValidateToken(raw string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Principal{
		Username: claims.Subject,
		IsAdmin:  claims.IsAdmin,
	}, nil
}

// GetUserByUsername retrieves the account backing a principal.
func (s *AuthService) GetUserByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
