package application

import (
	"context"
	"testing"
	"time"

	"github.com/prostore/storefront/internal/auth/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserGateway struct {
	accounts map[string]*UserAccount
	nextID   uint
}

func newMockUserGateway() *mockUserGateway {
	return &mockUserGateway{accounts: make(map[string]*UserAccount), nextID: 1}
}

func (m *mockUserGateway) GetByEmail(_ context.Context, email string) (*UserAccount, error) {
	if a, ok := m.accounts[email]; ok {
		return a, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockUserGateway) Create(_ context.Context, name, email, passwordHash string) (*UserAccount, error) {
	account := &UserAccount{ID: m.nextID, Name: name, Email: email, PasswordHash: passwordHash, Role: "user"}
	m.nextID++
	m.accounts[email] = account
	return account, nil
}

type mockSessionRepository struct {
	sessions map[string]*domain.Session
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (m *mockSessionRepository) Save(_ context.Context, session *domain.Session, _ int) error {
	m.sessions[session.TokenID] = session
	return nil
}

func (m *mockSessionRepository) Get(_ context.Context, tokenID string) (*domain.Session, error) {
	if s, ok := m.sessions[tokenID]; ok {
		return s, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (m *mockSessionRepository) Delete(_ context.Context, tokenID string) error {
	delete(m.sessions, tokenID)
	return nil
}

type mockCartRebinder struct {
	rebound       bool
	sessionCartID string
	userID        uint
}

func (m *mockCartRebinder) RebindToUser(_ context.Context, sessionCartID string, userID uint) error {
	m.rebound = true
	m.sessionCartID = sessionCartID
	m.userID = userID
	return nil
}

func newAuthService(users *mockUserGateway, sessions *mockSessionRepository, carts *mockCartRebinder) *AuthApplicationService {
	return NewAuthApplicationService(users, sessions, carts, "test-secret", time.Hour)
}

func register(t *testing.T, svc *AuthApplicationService, sessionCartID string) *SignInResult {
	t.Helper()
	result, err := svc.Register(context.Background(), RegisterCommand{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		SessionCartID:   sessionCartID,
	})
	require.NoError(t, err)
	return result
}

func TestRegister_CreatesAccountAndSession(t *testing.T) {
	users := newMockUserGateway()
	sessions := newMockSessionRepository()
	svc := newAuthService(users, sessions, &mockCartRebinder{})

	result := register(t, svc, "")

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "jane@example.com", result.Email)
	// 密码以 bcrypt 散列存储
	assert.NotEqual(t, "secret123", users.accounts["jane@example.com"].PasswordHash)
	assert.Len(t, sessions.sessions, 1)

	identity, err := svc.Authenticate(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.UserID, identity.UserID)
	assert.Equal(t, "user", identity.Role)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc := newAuthService(newMockUserGateway(), newMockSessionRepository(), &mockCartRebinder{})

	_, err := svc.Register(context.Background(), RegisterCommand{
		Name: "Jane", Email: "jane@example.com",
		Password: "secret123", ConfirmPassword: "other456",
	})

	assert.Error(t, err)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := newAuthService(newMockUserGateway(), newMockSessionRepository(), &mockCartRebinder{})
	register(t, svc, "")

	_, err := svc.Register(context.Background(), RegisterCommand{
		Name: "Other", Email: "jane@example.com",
		Password: "secret123", ConfirmPassword: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSignIn_WrongPassword(t *testing.T) {
	svc := newAuthService(newMockUserGateway(), newMockSessionRepository(), &mockCartRebinder{})
	register(t, svc, "")

	_, err := svc.SignIn(context.Background(), SignInCommand{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	svc := newAuthService(newMockUserGateway(), newMockSessionRepository(), &mockCartRebinder{})

	_, err := svc.SignIn(context.Background(), SignInCommand{
		Email:    "nobody@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignIn_RebindsSessionCart(t *testing.T) {
	carts := &mockCartRebinder{}
	svc := newAuthService(newMockUserGateway(), newMockSessionRepository(), carts)
	result := register(t, svc, "")

	_, err := svc.SignIn(context.Background(), SignInCommand{
		Email:         "jane@example.com",
		Password:      "secret123",
		SessionCartID: "anon-cart-42",
	})

	require.NoError(t, err)
	assert.True(t, carts.rebound)
	assert.Equal(t, "anon-cart-42", carts.sessionCartID)
	assert.Equal(t, result.UserID, carts.userID)
}

func TestSignOut_RevokesSession(t *testing.T) {
	svc := newAuthService(newMockUserGateway(), newMockSessionRepository(), &mockCartRebinder{})
	result := register(t, svc, "")

	require.NoError(t, svc.SignOut(context.Background(), result.Token))

	_, err := svc.Authenticate(context.Background(), result.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAuthenticate_RejectsGarbageToken(t *testing.T) {
	svc := newAuthService(newMockUserGateway(), newMockSessionRepository(), &mockCartRebinder{})

	_, err := svc.Authenticate(context.Background(), "not-a-jwt")

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthenticate_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	users := newMockUserGateway()
	sessions := newMockSessionRepository()
	svc := newAuthService(users, sessions, &mockCartRebinder{})
	result := register(t, svc, "")

	other := NewAuthApplicationService(users, sessions, nil, "other-secret", time.Hour)
	_, err := other.Authenticate(context.Background(), result.Token)

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
