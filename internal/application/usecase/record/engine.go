package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// Delta maps asset ids to the signed amount their balance must move by.
type Delta map[uuid.UUID]decimal.Decimal

func (d Delta) add(id uuid.UUID, amount decimal.Decimal) {
	sum := d[id].Add(amount)
	if sum.IsZero() {
		delete(d, id)
		return
	}
	d[id] = sum
}

// Negate returns the delta that undoes d.
func (d Delta) Negate() Delta {
	out := make(Delta, len(d))
	for id, amount := range d {
		out[id] = amount.Neg()
	}
	return out
}

// Effect returns the balance movement a live record has caused.
func Effect(r *entity.Record) Delta {
	d := Delta{}
	switch r.Type {
	case entity.RecordTypeExpense:
		d.add(r.AssetID, r.Amount.Neg())
	case entity.RecordTypeIncome:
		d.add(r.AssetID, r.Amount)
	case entity.RecordTypeTransfer:
		d.add(r.AssetID, r.Amount.Neg())
		if r.TargetAssetID != nil {
			d.add(*r.TargetAssetID, r.Amount)
		}
	}
	return d
}

// Transition returns the movement that turns the balances left by old into the
// balances next would have left: Effect(next) - Effect(old), merged per asset.
func Transition(old, next *entity.Record) Delta {
	d := Delta{}
	for id, amount := range Effect(old) {
		d.add(id, amount.Neg())
	}
	for id, amount := range Effect(next) {
		d.add(id, amount)
	}
	return d
}

// Engine writes balance deltas to the asset store.
type Engine struct {
	assetRepo adapter.AssetRepository
}

// NewEngine creates a new Engine instance.
func NewEngine(assetRepo adapter.AssetRepository) *Engine {
	return &Engine{
		assetRepo: assetRepo,
	}
}

// Apply adjusts every asset in d. Assets that no longer exist are skipped:
// only an asset deleted after the record was written can be missing here.
func (e *Engine) Apply(ctx context.Context, userID uuid.UUID, d Delta) error {
	ids := make([]uuid.UUID, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	// Stable order keeps row locks acquired in the same sequence across requests.
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		err := e.assetRepo.AdjustBalance(ctx, userID, id, d[id])
		if err != nil {
			if errors.Is(err, domainerror.ErrAssetNotFound) {
				slog.Warn("Skipping balance adjustment for missing asset",
					"userID", userID,
					"assetID", id,
					"delta", d[id].String(),
				)
				continue
			}
			return fmt.Errorf("failed to adjust asset balance: %w", err)
		}
	}
	return nil
}
