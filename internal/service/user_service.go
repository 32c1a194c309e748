package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"souq-api/internal/domain"
	"souq-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	// DefaultTokenExpiry matches the clients' expectation of long-lived
	// sessions. Expiry is the only invalidation path; there is no
	// revocation mechanism.
	DefaultTokenExpiry = 72 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("email or password incorrect")
	ErrInvalidToken       = errors.New("invalid token")
)

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	PromoteToAdmin(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// Claims represents the JWT claims carried by every issued token
type Claims struct {
	UserID  uuid.UUID `json:"user_id"`
	IsAdmin bool      `json:"is_admin"`
	jwt.RegisteredClaims
}

type userService struct {
	userRepo    repository.UserRepository
	cartRepo    repository.CartRepository
	jwtSecret   string
	tokenExpiry time.Duration
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepo repository.UserRepository,
	cartRepo repository.CartRepository,
	jwtSecret string,
	tokenExpiry time.Duration,
) UserService {
	if tokenExpiry <= 0 {
		tokenExpiry = DefaultTokenExpiry
	}
	return &userService{
		userRepo:    userRepo,
		cartRepo:    cartRepo,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// Register creates a new user account with a hashed password, gives it
// a cart, and returns a signed token. Accounts are never created with
// the admin flag set; promotion is a separate admin action.
func (s *userService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && err != repository.ErrUserNotFound {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, "", repository.ErrUserAlreadyExists
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	// Every user owns exactly one cart, created at registration
	cart := &domain.Cart{
		ID:     uuid.New(),
		UserID: user.ID,
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, "", fmt.Errorf("failed to create cart: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a signed token
func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *userService) ValidateToken(tokenString string) (*Claims, error) {
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

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// PromoteToAdmin sets the admin flag on an existing user
func (s *userService) PromoteToAdmin(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.SetAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// issueToken signs a JWT carrying the user id and admin flag
func (s *userService) issueToken(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.tokenExpiry)
	claims := &Claims{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}
