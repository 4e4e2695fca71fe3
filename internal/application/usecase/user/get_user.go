// Package user contains account-level use cases.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// GetUserInput represents the input for fetching the current user.
type GetUserInput struct {
	UserID uuid.UUID
}

// GetUserOutput is the user together with everything they own.
type GetUserOutput struct {
	User    *entity.User
	Assets  []*entity.Asset
	Records []*entity.Record
}

// GetUserUseCase handles profile retrieval.
type GetUserUseCase struct {
	userRepo   adapter.UserRepository
	assetRepo  adapter.AssetRepository
	recordRepo adapter.RecordRepository
}

// NewGetUserUseCase creates a new GetUserUseCase instance.
func NewGetUserUseCase(
	userRepo adapter.UserRepository,
	assetRepo adapter.AssetRepository,
	recordRepo adapter.RecordRepository,
) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo:   userRepo,
		assetRepo:  assetRepo,
		recordRepo: recordRepo,
	}
}

// Execute performs the profile retrieval.
func (uc *GetUserUseCase) Execute(ctx context.Context, input GetUserInput) (*GetUserOutput, error) {
	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	assets, err := uc.assetRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	records, err := uc.recordRepo.FindByFilter(ctx, adapter.RecordFilter{UserID: input.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return &GetUserOutput{
		User:    u,
		Assets:  assets,
		Records: records,
	}, nil
}
