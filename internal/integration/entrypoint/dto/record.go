// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dompet/ledger/internal/application/usecase/record"
	"github.com/dompet/ledger/internal/domain/entity"
)

// RecordRequest is the body of record create and update. Presence and range
// checks live in the record validator so every failure carries a record error code.
type RecordRequest struct {
	Day         *int             `json:"day"`
	Month       *int             `json:"month"`
	Year        *int             `json:"year"`
	AssetID     string           `json:"assetId"`
	Type        string           `json:"type"`
	Category    string           `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Fee         *decimal.Decimal `json:"fee,omitempty"`
	Note        string           `json:"note,omitempty"`
	Description string           `json:"description,omitempty"`
}

// ToPayload converts the request body to the validator's payload.
func (r RecordRequest) ToPayload() record.RecordPayload {
	return record.RecordPayload{
		Day:         r.Day,
		Month:       r.Month,
		Year:        r.Year,
		AssetID:     r.AssetID,
		Type:        r.Type,
		Category:    r.Category,
		Amount:      r.Amount,
		Fee:         r.Fee,
		Note:        r.Note,
		Description: r.Description,
	}
}

// RecordQueryRequest binds the GET /records query string.
type RecordQueryRequest struct {
	Date      string `form:"date"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Month     string `form:"month"`
	Year      string `form:"year"`
	Asset     string `form:"asset"`
	Type      string `form:"type"`
	Category  string `form:"category"`
}

// ToRawQuery converts the bound query string to the query engine's input.
func (q RecordQueryRequest) ToRawQuery() record.RawQuery {
	return record.RawQuery{
		Date:      q.Date,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		Month:     q.Month,
		Year:      q.Year,
		Asset:     q.Asset,
		Type:      q.Type,
		Category:  q.Category,
	}
}

// RecordResponse represents a record in API responses.
type RecordResponse struct {
	ID            string    `json:"id"`
	Day           int       `json:"day"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	Date          time.Time `json:"date"`
	AssetID       string    `json:"assetId"`
	Asset         string    `json:"asset"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	TargetAssetID *string   `json:"targetAssetId,omitempty"`
	Amount        string    `json:"amount"`
	Note          string    `json:"note"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateRecordResponse is returned by POST /records. FeeID is set when a transfer fee produced its own expense.
type CreateRecordResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	FeeID   string `json:"feeId,omitempty"`
}

// ToRecordResponse converts a Record entity to its response form.
func ToRecordResponse(r *entity.Record) RecordResponse {
	resp := RecordResponse{
		ID:          r.ID.String(),
		Day:         r.Day,
		Month:       r.Month,
		Year:        r.Year,
		Date:        r.Date,
		AssetID:     r.AssetID.String(),
		Asset:       r.Asset,
		Type:        string(r.Type),
		Category:    r.Category,
		Amount:      r.Amount.StringFixed(2),
		Note:        r.Note,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.TargetAssetID != nil {
		target := r.TargetAssetID.String()
		resp.TargetAssetID = &target
	}
	return resp
}

// ToRecordListResponse converts a slice of records, never returning nil.
func ToRecordListResponse(records []*entity.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToRecordResponse(r))
	}
	return out
}

// ToGroupedRecordResponse converts month -> day-key -> records buckets.
func ToGroupedRecordResponse(groups map[int]map[string][]*entity.Record) map[int]map[string][]RecordResponse {
	out := make(map[int]map[string][]RecordResponse, len(groups))
	for month, days := range groups {
		out[month] = make(map[string][]RecordResponse, len(days))
		for key, records := range days {
			out[month][key] = ToRecordListResponse(records)
		}
	}
	return out
}
