package member

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestService_RegisterAndLogin(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret")

	req := RegisterRequest{
		Email:    "priya@college.edu",
		Password: "supersafe",
		FullName: "Priya Sharma",
		Branch:   "ECE",
		Year:     3,
		Skills:   []string{"soldering"},
	}

	ctx := context.Background()
	m, err := svc.Register(ctx, req)
	if err != nil {
		t.Fatalf("register: unexpected error: %v", err)
	}

	if m.Email != req.Email {
		t.Fatalf("expected email %q got %q", req.Email, m.Email)
	}
	if m.ReputationScore != 50 {
		t.Fatalf("register: expected default reputation 50 got %d", m.ReputationScore)
	}

	resp, err := svc.Login(ctx, LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		t.Fatalf("login: unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login: expected token, got empty string")
	}
	if resp.Member.ID != m.ID {
		t.Fatalf("login: expected member id %q got %q", m.ID, resp.Member.ID)
	}

	tokenMemberID, err := svc.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if tokenMemberID != m.ID {
		t.Fatalf("verify token: expected %q got %q", m.ID, tokenMemberID)
	}
}

func TestService_RegisterValidation(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret")

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "priya@college.edu",
		Password: "short",
		FullName: "Priya Sharma",
		Branch:   "ECE",
		Year:     3,
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "",
		Password: "strongpassword",
		FullName: "",
		Branch:   "ECE",
		Year:     3,
	}); err == nil {
		t.Fatal("expected validation error for missing fields")
	}

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "priya@college.edu",
		Password: "strongpassword",
		FullName: "Priya Sharma",
		Branch:   "",
		Year:     3,
	}); err == nil {
		t.Fatal("expected validation error for missing branch")
	}
}

func TestService_DuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret")

	req := RegisterRequest{
		Email:    "priya@college.edu",
		Password: "strongpassword",
		FullName: "Priya Sharma",
		Branch:   "ECE",
		Year:     3,
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestService_LoginInvalidCredentials(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, "test-secret")

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "unknown@college.edu",
		Password: "irrelevant",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

type fakeRepository struct {
	byEmail map[string]Member
	byID    map[string]Member
	nextID  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byEmail: make(map[string]Member),
		byID:    make(map[string]Member),
		nextID:  1,
	}
}

func (f *fakeRepository) Create(ctx context.Context, params CreateParams) (Member, error) {
	if _, exists := f.byEmail[strings.ToLower(params.Email)]; exists {
		return Member{}, ErrDuplicateEmail
	}

	id := fmt.Sprintf("member-%d", f.nextID)
	f.nextID++

	m := Member{
		ID:              id,
		Email:           params.Email,
		FullName:        params.FullName,
		PasswordHash:    params.PasswordHash,
		Branch:          params.Branch,
		Year:            params.Year,
		ReputationScore: 50,
		Skills:          params.Skills,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	f.byEmail[strings.ToLower(m.Email)] = m
	f.byID[m.ID] = m

	return m, nil
}

func (f *fakeRepository) GetByEmail(ctx context.Context, email string) (Member, error) {
	m, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return Member{}, ErrNotFound
	}
	return m, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, memberID string) (Member, error) {
	m, ok := f.byID[memberID]
	if !ok {
		return Member{}, ErrNotFound
	}
	return m, nil
}
