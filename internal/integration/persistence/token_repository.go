package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dompet/ledger/internal/integration/persistence/model"
)

// TokenRepository stores issued refresh and reset tokens by digest.
// Callers never pass the raw token.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, digest string, userID uuid.UUID, expiresAt time.Time) error

	// RefreshTokenLive reports whether the digest belongs to a session that is
	// neither revoked nor past its expiry at now.
	RefreshTokenLive(ctx context.Context, digest string, now time.Time) (bool, error)

	RevokeRefreshToken(ctx context.Context, digest string) error
	RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	SaveResetToken(ctx context.Context, digest string, userID uuid.UUID, email string, expiresAt time.Time) error

	// FindUnusedResetToken returns nil, nil when no unused token has the digest.
	// Expired tokens are returned so the caller can tell them apart.
	FindUnusedResetToken(ctx context.Context, digest string) (*model.PasswordResetTokenModel, error)

	// ConsumeResetToken stamps the token as used. It reports false when the
	// token was already used or does not exist.
	ConsumeResetToken(ctx context.Context, digest string, at time.Time) (bool, error)

	// DeleteUserTokens removes every refresh and reset token of a user.
	DeleteUserTokens(ctx context.Context, userID uuid.UUID) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) SaveRefreshToken(ctx context.Context, digest string, userID uuid.UUID, expiresAt time.Time) error {
	return conn(ctx, r.db).Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		TokenHash: digest,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}).Error
}

func (r *tokenRepository) RefreshTokenLive(ctx context.Context, digest string, now time.Time) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ? AND revoked = ? AND expires_at > ?", digest, false, now).
		Count(&count).Error
	return count > 0, err
}

func (r *tokenRepository) RevokeRefreshToken(ctx context.Context, digest string) error {
	return conn(ctx, r.db).
		Model(&model.RefreshTokenModel{}).
		Where("token_hash = ?", digest).
		Update("revoked", true).Error
}

func (r *tokenRepository) RevokeUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return conn(ctx, r.db).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

func (r *tokenRepository) SaveResetToken(ctx context.Context, digest string, userID uuid.UUID, email string, expiresAt time.Time) error {
	return conn(ctx, r.db).Create(&model.PasswordResetTokenModel{
		ID:        uuid.New(),
		TokenHash: digest,
		UserID:    userID,
		Email:     email,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}).Error
}

func (r *tokenRepository) FindUnusedResetToken(ctx context.Context, digest string) (*model.PasswordResetTokenModel, error) {
	var row model.PasswordResetTokenModel
	err := conn(ctx, r.db).
		Where("token_hash = ? AND used_at IS NULL", digest).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *tokenRepository) ConsumeResetToken(ctx context.Context, digest string, at time.Time) (bool, error) {
	result := conn(ctx, r.db).
		Model(&model.PasswordResetTokenModel{}).
		Where("token_hash = ? AND used_at IS NULL", digest).
		Update("used_at", at)
	return result.RowsAffected == 1, result.Error
}

func (r *tokenRepository) DeleteUserTokens(ctx context.Context, userID uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Delete(&model.RefreshTokenModel{}, "user_id = ?", userID).Error; err != nil {
		return err
	}
	return db.Delete(&model.PasswordResetTokenModel{}, "user_id = ?", userID).Error
}
