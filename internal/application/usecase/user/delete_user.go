package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// DeleteUserInput represents the input for account deletion.
type DeleteUserInput struct {
	UserID uuid.UUID
}

// DeleteUserOutput represents the output of account deletion.
type DeleteUserOutput struct {
	Message string
}

// DeleteUserUseCase removes an account and everything it owns.
type DeleteUserUseCase struct {
	userRepo   adapter.UserRepository
	assetRepo  adapter.AssetRepository
	recordRepo adapter.RecordRepository
	tokens     adapter.TokenService
	transactor adapter.Transactor
	lock       adapter.LedgerLock
}

// NewDeleteUserUseCase creates a new DeleteUserUseCase instance.
func NewDeleteUserUseCase(
	userRepo adapter.UserRepository,
	assetRepo adapter.AssetRepository,
	recordRepo adapter.RecordRepository,
	tokens adapter.TokenService,
	transactor adapter.Transactor,
	lock adapter.LedgerLock,
) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo:   userRepo,
		assetRepo:  assetRepo,
		recordRepo: recordRepo,
		tokens:     tokens,
		transactor: transactor,
		lock:       lock,
	}
}

// Execute deletes records, assets, tokens and the user in one transaction.
// The ledger lock keeps in-flight record mutations from racing the cascade.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, input DeleteUserInput) (*DeleteUserOutput, error) {
	release, err := uc.lock.Acquire(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLedgerBusy) {
			return nil, domainerror.NewRecordError(
				domainerror.ErrCodeLedgerBusy,
				"another change to this ledger is in progress, try again",
				domainerror.ErrLedgerBusy,
			)
		}
		return nil, fmt.Errorf("failed to acquire ledger lock: %w", err)
	}
	defer release()

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.recordRepo.DeleteByUser(ctx, input.UserID); err != nil {
			return fmt.Errorf("failed to delete records: %w", err)
		}
		if err := uc.assetRepo.DeleteByUser(ctx, input.UserID); err != nil {
			return fmt.Errorf("failed to delete assets: %w", err)
		}
		if err := uc.tokens.DeleteAllUserTokens(ctx, input.UserID); err != nil {
			return fmt.Errorf("failed to delete tokens: %w", err)
		}
		if err := uc.userRepo.Delete(ctx, input.UserID); err != nil {
			if errors.Is(err, domainerror.ErrUserNotFound) {
				return domainerror.NewAuthError(
					domainerror.ErrCodeUserNotFound,
					"user not found",
					domainerror.ErrUserNotFound,
				)
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("User deleted", "userID", input.UserID)

	return &DeleteUserOutput{
		Message: "User and all related data deleted successfully",
	}, nil
}
