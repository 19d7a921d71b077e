package member

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials signals wrong email or password.
	ErrInvalidCredentials = errors.New("member: invalid credentials")
	// ErrWeakPassword signals the password doesn't meet requirements.
	ErrWeakPassword = errors.New("member: password must be at least 8 characters")
)

const tokenTTL = 24 * time.Hour

// Service handles member registration and session tokens.
type Service struct {
	repo      Repository
	jwtSecret []byte
	now       func() time.Time
}

// LoginResult bundles the token and domain member returned after a successful login.
type LoginResult struct {
	Token  string
	Member Member
}

// NewService creates a new member service.
func NewService(repo Repository, jwtSecret string) *Service {
	return &Service{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// Register creates a new member account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Member, error) {
	if len(req.Password) < 8 {
		return nil, ErrWeakPassword
	}
	if req.Email == "" || req.FullName == "" {
		return nil, fmt.Errorf("member: email and full_name are required")
	}
	if req.Branch == "" {
		return nil, fmt.Errorf("member: branch is required")
	}
	if req.Year <= 0 {
		return nil, fmt.Errorf("member: year must be positive")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("member: hash password: %w", err)
	}

	m, err := s.repo.Create(ctx, CreateParams{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(passwordHash),
		Branch:       req.Branch,
		Year:         req.Year,
		Skills:       req.Skills,
	})
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// Login authenticates a member and returns a JWT token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	m, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.generateToken(m.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("member: generate token: %w", err)
	}

	return LoginResult{
		Token:  token,
		Member: m,
	}, nil
}

// GetByID retrieves member information by ID.
func (s *Service) GetByID(ctx context.Context, memberID string) (*Member, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// VerifyToken validates a JWT token and returns the member ID.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("member: parse token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		memberID, ok := claims["member_id"].(string)
		if !ok {
			return "", fmt.Errorf("member: invalid member_id in token")
		}
		return memberID, nil
	}

	return "", fmt.Errorf("member: invalid token")
}

func (s *Service) generateToken(memberID string) (string, error) {
	issued := s.now()
	claims := jwt.MapClaims{
		"member_id": memberID,
		"exp":       issued.Add(tokenTTL).Unix(),
		"iat":       issued.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
