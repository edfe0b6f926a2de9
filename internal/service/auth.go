package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"parkgate/internal/model"
	"parkgate/internal/repository"
)

// AdminClaims are carried by admin bearer tokens.
type AdminClaims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// AdminID returns the numeric admin id stored in the subject.
func (c *AdminClaims) AdminID() int64 {
	id, _ := strconv.ParseInt(c.Subject, 10, 64)
	return id
}

// AuthService registers operators and issues their tokens.
type AuthService interface {
	// Register creates an operator on behalf of an authenticated admin.
	Register(ctx context.Context, username, password, fullName string) (*model.AdminUser, error)

	// Bootstrap creates the first operator of a fresh install. Once any operator
	// exists it fails with ErrBootstrapClosed.
	Bootstrap(ctx context.Context, username, password, fullName string) (*model.AdminUser, error)

	// Login returns a signed token for valid credentials.
	Login(ctx context.Context, username, password string) (string, *model.AdminUser, error)

	// Verify parses and validates a bearer token.
	Verify(token string) (*AdminClaims, error)
}

// AuthOptions configures token issuance.
type AuthOptions struct {
	// Secret signs tokens. An empty secret is replaced by a random one, which invalidates tokens on restart.
	Secret   string
	TokenTTL time.Duration
	Now      func() time.Time
}

type authService struct {
	repo   repository.AdminRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(repo repository.AdminRepository, opts AuthOptions) (AuthService, error) {
	if opts.Secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate secret: %w", err)
		}
		opts.Secret = base64.StdEncoding.EncodeToString(buf)
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 8 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &authService{repo: repo, secret: []byte(opts.Secret), ttl: opts.TokenTTL, now: opts.Now}, nil
}

func (s *authService) Register(ctx context.Context, username, password, fullName string) (*model.AdminUser, error) {
	u, err := newAdmin(username, password, fullName)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return created, nil
}

func (s *authService) Bootstrap(ctx context.Context, username, password, fullName string) (*model.AdminUser, error) {
	u, err := newAdmin(username, password, fullName)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.CreateFirst(ctx, u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBootstrapClosed
		}
		return nil, err
	}
	return created, nil
}

// newAdmin validates credentials and hashes the password.
func newAdmin(username, password, fullName string) (*model.AdminUser, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 64 {
		return nil, fmt.Errorf("%w: username must be 3 to 64 characters", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &model.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
	}, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *model.AdminUser, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.now()
	claims := AdminClaims{
		Username: u.Username,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.ttl).Unix(),
			Issuer:    "parkgate",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, u, nil
}

func (s *authService) Verify(token string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
