package record

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dompet/ledger/internal/application/adapter"
	"github.com/dompet/ledger/internal/domain/entity"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

// memoryStore backs both fake repositories so the fake transactor can roll
// back assets and records together.
type memoryStore struct {
	mu      sync.Mutex
	assets  map[uuid.UUID]entity.Asset
	records map[uuid.UUID]entity.Record
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		assets:  make(map[uuid.UUID]entity.Asset),
		records: make(map[uuid.UUID]entity.Record),
	}
}

func (s *memoryStore) addAsset(userID uuid.UUID, label string, amount int64) *entity.Asset {
	a := entity.NewAsset(userID, entity.AssetCategoryBank, label, decimal.NewFromInt(amount))
	s.mu.Lock()
	s.assets[a.ID] = *a
	s.mu.Unlock()
	return a
}

func (s *memoryStore) balance(id uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets[id].Amount
}

func (s *memoryStore) removeAsset(id uuid.UUID) {
	s.mu.Lock()
	delete(s.assets, id)
	s.mu.Unlock()
}

func (s *memoryStore) recordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

type fakeAssetRepo struct{ s *memoryStore }

func (r fakeAssetRepo) Create(ctx context.Context, asset *entity.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.assets[asset.ID] = *asset
	return nil
}

func (r fakeAssetRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assets[id]
	if !ok || a.UserID != userID {
		return nil, domainerror.ErrAssetNotFound
	}
	return &a, nil
}

func (r fakeAssetRepo) FindByIDForUpdate(ctx context.Context, userID, id uuid.UUID) (*entity.Asset, error) {
	return r.FindByID(ctx, userID, id)
}

func (r fakeAssetRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Asset
	for _, a := range r.s.assets {
		if a.UserID == userID {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r fakeAssetRepo) Update(ctx context.Context, asset *entity.Asset) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assets[asset.ID]; !ok {
		return domainerror.ErrAssetNotFound
	}
	r.s.assets[asset.ID] = *asset
	return nil
}

func (r fakeAssetRepo) AdjustBalance(ctx context.Context, userID, id uuid.UUID, delta decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.assets[id]
	if !ok || a.UserID != userID {
		return domainerror.ErrAssetNotFound
	}
	a.Amount = a.Amount.Add(delta)
	r.s.assets[id] = a
	return nil
}

func (r fakeAssetRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assets[id]; !ok {
		return domainerror.ErrAssetNotFound
	}
	delete(r.s.assets, id)
	return nil
}

func (r fakeAssetRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, a := range r.s.assets {
		if a.UserID == userID {
			delete(r.s.assets, id)
		}
	}
	return nil
}

type fakeRecordRepo struct{ s *memoryStore }

func (r fakeRecordRepo) Create(ctx context.Context, record *entity.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.records[record.ID] = *record
	return nil
}

func (r fakeRecordRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.records[id]
	if !ok || rec.UserID != userID {
		return nil, domainerror.ErrRecordNotFound
	}
	return &rec, nil
}

func (r fakeRecordRepo) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Record
	for _, rec := range r.s.records {
		if rec.UserID != filter.UserID {
			continue
		}
		switch {
		case filter.Date != nil:
			if !rec.Date.Equal(*filter.Date) {
				continue
			}
		case filter.StartDate != nil && filter.EndDate != nil:
			if rec.Date.Before(*filter.StartDate) || rec.Date.After(*filter.EndDate) {
				continue
			}
		case filter.Month != nil && filter.Year != nil:
			if rec.Month != *filter.Month || rec.Year != *filter.Year {
				continue
			}
		case filter.Year != nil:
			if rec.Year != *filter.Year {
				continue
			}
		}
		rec := rec
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r fakeRecordRepo) Update(ctx context.Context, record *entity.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.records[record.ID]; !ok {
		return domainerror.ErrRecordNotFound
	}
	r.s.records[record.ID] = *record
	return nil
}

func (r fakeRecordRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.records[id]; !ok {
		return domainerror.ErrRecordNotFound
	}
	delete(r.s.records, id)
	return nil
}

func (r fakeRecordRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, rec := range r.s.records {
		if rec.UserID == userID {
			delete(r.s.records, id)
		}
	}
	return nil
}

// fakeTransactor snapshots the store and restores it when fn fails.
type fakeTransactor struct{ s *memoryStore }

func (t fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.s.mu.Lock()
	assets := make(map[uuid.UUID]entity.Asset, len(t.s.assets))
	for k, v := range t.s.assets {
		assets[k] = v
	}
	records := make(map[uuid.UUID]entity.Record, len(t.s.records))
	for k, v := range t.s.records {
		records[k] = v
	}
	t.s.mu.Unlock()

	if err := fn(ctx); err != nil {
		t.s.mu.Lock()
		t.s.assets = assets
		t.s.records = records
		t.s.mu.Unlock()
		return err
	}
	return nil
}

type busyLock struct{}

func (busyLock) Acquire(ctx context.Context, userID uuid.UUID) (func(), error) {
	return nil, domainerror.ErrLedgerBusy
}

type countingLock struct {
	mu       sync.Mutex
	acquired int
	released int
}

func (l *countingLock) Acquire(ctx context.Context, userID uuid.UUID) (func(), error) {
	l.mu.Lock()
	l.acquired++
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.released++
		l.mu.Unlock()
	}, nil
}
