package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/studycards/backend/internal/domain/user"
	"github.com/studycards/backend/internal/id"
	"github.com/studycards/backend/internal/store"
)

const (
	DefaultTokenTTL   = 7 * 24 * time.Hour
	DefaultBcryptCost = 12
	issuer            = "studycards"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("invalid or expired token")
	ErrEmailTaken         = errors.New("email already registered")
)

// Store is the persistence the auth service needs.
type Store interface {
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	SaveAuthSession(ctx context.Context, as *user.AuthSession) error
	GetAuthSession(ctx context.Context, tokenHash string, now time.Time) (*user.AuthSession, error)
	DeleteAuthSession(ctx context.Context, tokenHash string) error
}

type Claims struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.Role == string(user.RoleAdmin)
}

type Config struct {
	Secret      string
	TokenTTL    time.Duration
	AdminEmails []string
	BcryptCost  int
}

// Service issues HS256 tokens backed by a server-side session row. Logging
// out deletes the row, which invalidates the token before it expires.
type Service struct {
	store  Store
	hmac   []byte
	ttl    time.Duration
	cost   int
	admins map[string]struct{}
	now    func() time.Time
}

func NewService(s Store, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultBcryptCost
	}
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		if e = normalizeEmail(e); e != "" {
			admins[e] = struct{}{}
		}
	}
	return &Service{
		store:  s,
		hmac:   []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
		cost:   cfg.BcryptCost,
		admins: admins,
		now:    time.Now,
	}
}

// SetClock replaces the clock used for issuing and validating tokens.
func (a *Service) SetClock(now func() time.Time) {
	a.now = now
}

// Register creates the user and logs them in.
func (a *Service) Register(ctx context.Context, email, password, name string) (*user.User, string, error) {
	email = normalizeEmail(email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	role := user.RoleUser
	if _, ok := a.admins[email]; ok {
		role = user.RoleAdmin
	}
	u := user.New(email, strings.TrimSpace(name), string(hash), role)
	if err := a.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := a.issue(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (a *Service) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := a.store.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.issue(ctx, u)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (a *Service) Logout(ctx context.Context, token string) error {
	err := a.store.DeleteAuthSession(ctx, hashToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return ErrUnauthorized
	}
	return err
}

// Authenticate verifies the signature and that the session row is still live.
func (a *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := a.parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if _, err := a.store.GetAuthSession(ctx, hashToken(token), a.now()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return claims, nil
}

// Me returns the current record of the authenticated user.
func (a *Service) Me(ctx context.Context, userID string) (*user.User, error) {
	return a.store.GetUser(ctx, userID)
}

func (a *Service) issue(ctx context.Context, u *user.User) (string, error) {
	now := a.now()
	expires := now.Add(a.ttl)
	claims := &Claims{
		Sub:   u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.GenerateID(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.hmac)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := a.store.SaveAuthSession(ctx, &user.AuthSession{
		ID:        claims.ID,
		UserID:    u.ID,
		TokenHash: hashToken(token),
		ExpiresAt: expires,
	}); err != nil {
		return "", fmt.Errorf("save auth session: %w", err)
	}
	return token, nil
}

func (a *Service) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, err
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrUnauthorized
	}
	return c, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
