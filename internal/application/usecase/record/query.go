package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// dateLayouts are the accepted query date formats, tried in order.
var dateLayouts = []string{"2006-01-02", "02-01-2006", time.RFC3339}

// RawQuery holds the record list filters as received from the client.
type RawQuery struct {
	Date      string
	StartDate string
	EndDate   string
	Month     string
	Year      string
	Asset     string
	Type      string
	Category  string
}

// RecordQuery is a validated RawQuery.
type RecordQuery struct {
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
	Month     *int
	Year      *int
	Asset     string
	Type      string
	Category  string
}

// ParseQuery validates the filter combination and parses its values.
func ParseQuery(raw RawQuery) (*RecordQuery, error) {
	raw = RawQuery{
		Date:      strings.TrimSpace(raw.Date),
		StartDate: strings.TrimSpace(raw.StartDate),
		EndDate:   strings.TrimSpace(raw.EndDate),
		Month:     strings.TrimSpace(raw.Month),
		Year:      strings.TrimSpace(raw.Year),
		Asset:     raw.Asset,
		Type:      raw.Type,
		Category:  raw.Category,
	}

	if (raw.StartDate == "") != (raw.EndDate == "") {
		return nil, queryError(domainerror.ErrCodeUnpairedDateRange, "startDate and endDate must be provided together")
	}
	if raw.Date != "" && (raw.Month != "" || raw.Year != "") {
		return nil, queryError(domainerror.ErrCodeDateWithMonthOrYear, "date cannot be combined with month or year")
	}
	if raw.Month != "" && raw.Year == "" {
		return nil, queryError(domainerror.ErrCodeMonthWithoutYear, "month requires year")
	}

	q := &RecordQuery{
		Asset:    raw.Asset,
		Type:     raw.Type,
		Category: raw.Category,
	}

	var err error
	if q.Date, err = parseQueryDate("date", raw.Date); err != nil {
		return nil, err
	}
	if q.StartDate, err = parseQueryDate("startDate", raw.StartDate); err != nil {
		return nil, err
	}
	if q.EndDate, err = parseQueryDate("endDate", raw.EndDate); err != nil {
		return nil, err
	}
	if q.Month, err = parseQueryInt("month", raw.Month); err != nil {
		return nil, err
	}
	if q.Year, err = parseQueryInt("year", raw.Year); err != nil {
		return nil, err
	}

	if q.Month != nil && (*q.Month < 1 || *q.Month > 12) {
		return nil, queryError(domainerror.ErrCodeInvalidQueryMonth, "month must be between 1 and 12")
	}

	return q, nil
}

// Filter returns the storage criteria for the query. Resolution order is date,
// then range, then month and year, then year alone.
func (q *RecordQuery) Filter(userID uuid.UUID) adapter.RecordFilter {
	filter := adapter.RecordFilter{UserID: userID}
	switch {
	case q.Date != nil:
		filter.Date = q.Date
	case q.StartDate != nil && q.EndDate != nil:
		filter.StartDate = q.StartDate
		filter.EndDate = q.EndDate
	case q.Year != nil:
		filter.Month = q.Month
		filter.Year = q.Year
	}
	return filter
}

// Match applies the in-memory post-filters. Asset matches either the source
// label or the source asset id.
func (q *RecordQuery) Match(r *entity.Record) bool {
	if q.Asset != "" && q.Asset != r.Asset && q.Asset != r.AssetID.String() {
		return false
	}
	if q.Type != "" && q.Type != string(r.Type) {
		return false
	}
	if q.Category != "" && q.Category != r.Category {
		return false
	}
	return true
}

// Group buckets records by month number, then by "day-month-year". Records keep
// their input order inside a bucket.
func Group(records []*entity.Record) map[int]map[string][]*entity.Record {
	groups := make(map[int]map[string][]*entity.Record)
	for _, r := range records {
		month := int(r.Date.Month())
		days, ok := groups[month]
		if !ok {
			days = make(map[string][]*entity.Record)
			groups[month] = days
		}
		key := r.DayKey()
		days[key] = append(days[key], r)
	}
	return groups
}

func parseQueryDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, queryError(domainerror.ErrCodeInvalidQueryValue, fmt.Sprintf("%s must be a date (YYYY-MM-DD)", field))
}

func parseQueryInt(field, value string) (*int, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, queryError(domainerror.ErrCodeInvalidQueryValue, fmt.Sprintf("%s must be a number", field))
	}
	return &n, nil
}

func queryError(code domainerror.RecordErrorCode, message string) error {
	return domainerror.NewRecordError(code, message, domainerror.ErrInvalidRecordQuery)
}
