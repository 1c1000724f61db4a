package auth

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/urbanthreads-backend/internal/users"
	pkgAuth "github.com/angelmondragon/urbanthreads-backend/pkg/auth"
	"github.com/angelmondragon/urbanthreads-backend/pkg/auth/session"
	"github.com/angelmondragon/urbanthreads-backend/pkg/config"
	"github.com/angelmondragon/urbanthreads-backend/pkg/db/models"
	"github.com/angelmondragon/urbanthreads-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/urbanthreads-backend/pkg/errors"
	"github.com/angelmondragon/urbanthreads-backend/pkg/security"
)

var testJWTConfig = config.JWTConfig{
	Secret:                 "secret",
	Issuer:                 "urbanthreads",
	ExpirationMinutes:      30,
	RefreshTokenTTLMinutes: 600,
}

func TestServiceRegisterNormalizesEmailAndDefaultsRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := buildTestService(t, repo, &stubSessionManager{})

	user, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "  Ada Lovelace ",
		Email:    " Ada@Example.COM ",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	stored := repo.byEmail["ada@example.com"]
	if stored == nil || stored.PasswordHash == "correct-horse" {
		t.Fatalf("expected hashed password to be stored")
	}
}

func TestServiceRegisterDuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := buildTestService(t, repo, &stubSessionManager{})
	req := RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "correct-horse"}

	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), req)
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceLoginIssuesTokens(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessionManager{refreshToken: "refresh-token"}
	svc := buildTestService(t, repo, sessions)
	mustRegister(t, svc, "pm@example.com", "pm-password")
	repo.byEmail["pm@example.com"].Role = enums.UserRoleProductManager

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "PM@example.com", Password: "pm-password"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Role != enums.UserRoleProductManager {
		t.Fatalf("expected product_manager role claim, got %s", claims.Role)
	}
	if claims.ID != sessions.generatedFor {
		t.Fatalf("expected jti %q to match session id %q", claims.ID, sessions.generatedFor)
	}
	if resp.RefreshToken != "refresh-token" || resp.TokenType != "Bearer" {
		t.Fatalf("unexpected token response %+v", resp)
	}
	if resp.User.LastLoginAt == nil {
		t.Fatalf("expected last login to be recorded")
	}
}

func TestServiceLoginRejectsBadCredentialsGenerically(t *testing.T) {
	repo := newStubUserRepo()
	svc := buildTestService(t, repo, &stubSessionManager{})
	mustRegister(t, svc, "ada@example.com", "correct-horse")

	_, wrongPassword := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "nope"})
	_, unknownEmail := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "nope"})

	for _, err := range []error{wrongPassword, unknownEmail} {
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("expected unauthorized error, got %v", err)
		}
		if typed.Message() != invalidCredentialsMessage {
			t.Fatalf("expected generic message, got %q", typed.Message())
		}
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessionManager{refreshToken: "refresh-token"}
	svc := buildTestService(t, repo, sessions)
	mustRegister(t, svc, "ada@example.com", "correct-horse")

	login, err := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	oldID := sessions.generatedFor

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{AccessToken: login.AccessToken, RefreshToken: "refresh-token"})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if sessions.rotatedFrom != oldID {
		t.Fatalf("expected rotation from %q, got %q", oldID, sessions.rotatedFrom)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, refreshed.AccessToken)
	if err != nil {
		t.Fatalf("parse refreshed token: %v", err)
	}
	if claims.ID != "rotated-id" {
		t.Fatalf("expected new jti, got %q", claims.ID)
	}
}

func TestServiceRefreshInvalidToken(t *testing.T) {
	repo := newStubUserRepo()
	sessions := &stubSessionManager{refreshToken: "refresh-token"}
	svc := buildTestService(t, repo, sessions)
	mustRegister(t, svc, "ada@example.com", "correct-horse")
	login, err := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{AccessToken: login.AccessToken, RefreshToken: "stolen"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceLogoutRevokes(t *testing.T) {
	sessions := &stubSessionManager{}
	svc := buildTestService(t, newStubUserRepo(), sessions)

	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revoked != "access-1" {
		t.Fatalf("expected access-1 revoked, got %q", sessions.revoked)
	}
	if err := svc.Logout(context.Background(), " "); !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for blank id, got %v", err)
	}
}

func buildTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		Hasher:         security.NewHasher(config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}),
		JWTConfig:      testJWTConfig,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func mustRegister(t *testing.T, svc Service, email, password string) {
	t.Helper()
	if _, err := svc.Register(context.Background(), RegisterRequest{Name: "Test", Email: email, Password: password}); err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
}

type stubUserRepo struct {
	nextID  int64
	byEmail map[string]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*models.User{}}
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	s.nextID++
	user := dto.ToModel()
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.byEmail[user.Email] = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if user, err := s.FindByID(ctx, id); err == nil {
		user.LastLoginAt = &at
	}
	return nil
}

func (s *stubUserRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	if user, err := s.FindByID(ctx, id); err == nil {
		user.PasswordHash = hash
	}
	return nil
}

type stubSessionManager struct {
	refreshToken string
	generatedFor string
	rotatedFrom  string
	revoked      string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generatedFor = accessID
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, presented string) (*session.Rotation, error) {
	if oldAccessID != s.generatedFor || presented != s.refreshToken {
		return nil, session.ErrInvalidRefreshToken
	}
	s.rotatedFrom = oldAccessID
	return &session.Rotation{AccessID: "rotated-id", RefreshToken: "rotated-refresh"}, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = accessID
	return nil
}
