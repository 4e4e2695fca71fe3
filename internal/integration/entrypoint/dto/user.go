// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/dompet/ledger/internal/application/usecase/user"
)

// UserResponse is the profile returned by GET /user.
type UserResponse struct {
	ID            string           `json:"id"`
	Email         string           `json:"email"`
	EmailVerified bool             `json:"emailVerified"`
	CreatedAt     time.Time        `json:"createdAt"`
	Assets        []AssetResponse  `json:"assets"`
	Records       []RecordResponse `json:"records"`
}

// ToUserResponse converts the profile use case output.
func ToUserResponse(out *user.GetUserOutput) UserResponse {
	return UserResponse{
		ID:            out.User.ID.String(),
		Email:         out.User.Email,
		EmailVerified: out.User.EmailVerified,
		CreatedAt:     out.User.CreatedAt,
		Assets:        ToAssetListResponse(out.Assets),
		Records:       ToRecordListResponse(out.Records),
	}
}
