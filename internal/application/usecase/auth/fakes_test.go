package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

type memoryUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memoryUserRepo) Create(ctx context.Context, user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *memoryUserRepo) UpdateAccount(ctx context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domainerror.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memoryUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

// prefixHasher "hashes" by prefixing, which is enough to test the flows.
type prefixHasher struct{}

func (prefixHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (prefixHasher) Matches(hash, plain string) bool {
	return hash == "hashed:"+plain
}

// stubTokenService issues opaque tokens and remembers their claims.
type stubTokenService struct {
	mu           sync.Mutex
	claims       map[string]*adapter.TokenClaims
	kinds        map[string]string
	revoked      map[string]bool
	revokedUsers []uuid.UUID
}

func newStubTokenService() *stubTokenService {
	return &stubTokenService{
		claims:  make(map[string]*adapter.TokenClaims),
		kinds:   make(map[string]string),
		revoked: make(map[string]bool),
	}
}

func (s *stubTokenService) issue(kind string, userID uuid.UUID, email string, verified bool) string {
	token := kind + ":" + uuid.NewString()
	s.claims[token] = &adapter.TokenClaims{UserID: userID, Email: email, EmailVerified: verified, ExpiresAt: time.Now().Add(time.Hour)}
	s.kinds[token] = kind
	return token
}

func (s *stubTokenService) validate(kind, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.claims[token]
	if !ok || s.kinds[token] != kind {
		return nil, domainerror.ErrInvalidToken
	}
	return c, nil
}

func (s *stubTokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, emailVerified bool) (*adapter.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &adapter.TokenPair{
		AccessToken:  s.issue("access", userID, email, emailVerified),
		RefreshToken: s.issue("refresh", userID, email, emailVerified),
	}, nil
}

func (s *stubTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validate("access", token)
}

func (s *stubTokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validate("refresh", token)
}

func (s *stubTokenService) RevokeRefreshToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
	return nil
}

func (s *stubTokenService) RevokeUserSessions(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revokedUsers = append(s.revokedUsers, userID)
	return nil
}

func (s *stubTokenService) DeleteAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (s *stubTokenService) IsRefreshTokenLive(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.revoked[token], nil
}

func (s *stubTokenService) GenerateVerificationToken(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issue("verify", userID, email, false), nil
}

func (s *stubTokenService) ValidateVerificationToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validate("verify", token)
}

type stubResetTokenService struct {
	tokens map[string]*adapter.PasswordResetToken
}

func newStubResetTokenService() *stubResetTokenService {
	return &stubResetTokenService{tokens: make(map[string]*adapter.PasswordResetToken)}
}

func (s *stubResetTokenService) GenerateResetToken(ctx context.Context, userID uuid.UUID, email string) (*adapter.PasswordResetToken, error) {
	t := &adapter.PasswordResetToken{Token: uuid.NewString(), UserID: userID, Email: email, ExpiresAt: time.Now().UTC().Add(time.Hour)}
	s.tokens[t.Token] = t
	return t, nil
}

func (s *stubResetTokenService) LookupResetToken(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	t, ok := s.tokens[token]
	if !ok {
		return nil, domainerror.ErrInvalidResetToken
	}
	return t, nil
}

func (s *stubResetTokenService) ConsumeResetToken(ctx context.Context, token string) error {
	if _, ok := s.tokens[token]; !ok {
		return domainerror.ErrInvalidResetToken
	}
	delete(s.tokens, token)
	return nil
}

type recordingMailer struct {
	sent []adapter.AccountEmail
}

func (m *recordingMailer) Enqueue(ctx context.Context, email adapter.AccountEmail) error {
	m.sent = append(m.sent, email)
	return nil
}

func (m *recordingMailer) ofKind(kind entity.EmailKind) []adapter.AccountEmail {
	var out []adapter.AccountEmail
	for _, e := range m.sent {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
