package inmemory

import (
	"context"
	"sort"
	"sync"

	"money-tracker-go/internal/domain/ledger"
	syncdomain "money-tracker-go/internal/domain/sync"
)

type profileRecords struct {
	incomes     map[string]ledger.Income
	spendings   map[string]ledger.Spending
	obligations map[string]ledger.Obligation
	assets      map[string]ledger.Asset
}

func newProfileRecords() *profileRecords {
	return &profileRecords{
		incomes:     make(map[string]ledger.Income),
		spendings:   make(map[string]ledger.Spending),
		obligations: make(map[string]ledger.Obligation),
		assets:      make(map[string]ledger.Asset),
	}
}

// RecordsRepository is an in-memory remote mirror. Transaction holds the
// write lock for the whole callback, so a collection sync is atomic with
// respect to readers.
type RecordsRepository struct {
	mu       *sync.RWMutex
	profiles map[string]*profileRecords
	inTx     bool
}

func NewRecordsRepository() *RecordsRepository {
	return &RecordsRepository{
		mu:       &sync.RWMutex{},
		profiles: make(map[string]*profileRecords),
	}
}

func (r *RecordsRepository) Transaction(ctx context.Context, fn func(syncdomain.Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// stage on a copy so a failed callback leaves the mirror untouched
	staged := &RecordsRepository{mu: r.mu, profiles: cloneProfiles(r.profiles), inTx: true}
	if err := fn(staged); err != nil {
		return err
	}
	r.profiles = staged.profiles
	return nil
}

func (r *RecordsRepository) lockRead() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.RLock()
	return r.mu.RUnlock
}

func (r *RecordsRepository) lockWrite() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *RecordsRepository) records(profileID string) *profileRecords {
	records, ok := r.profiles[profileID]
	if !ok {
		records = newProfileRecords()
		r.profiles[profileID] = records
	}
	return records
}

func (r *RecordsRepository) ListIncomes(ctx context.Context, profileID string) ([]ledger.Income, error) {
	defer r.lockRead()()
	records, ok := r.profiles[profileID]
	if !ok {
		return []ledger.Income{}, nil
	}
	return sortedValues(records.incomes, func(a, b ledger.Income) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

func (r *RecordsRepository) ListSpendings(ctx context.Context, profileID string) ([]ledger.Spending, error) {
	defer r.lockRead()()
	records, ok := r.profiles[profileID]
	if !ok {
		return []ledger.Spending{}, nil
	}
	return sortedValues(records.spendings, func(a, b ledger.Spending) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

func (r *RecordsRepository) ListObligations(ctx context.Context, profileID string) ([]ledger.Obligation, error) {
	defer r.lockRead()()
	records, ok := r.profiles[profileID]
	if !ok {
		return []ledger.Obligation{}, nil
	}
	return sortedValues(records.obligations, func(a, b ledger.Obligation) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

func (r *RecordsRepository) ListAssets(ctx context.Context, profileID string) ([]ledger.Asset, error) {
	defer r.lockRead()()
	records, ok := r.profiles[profileID]
	if !ok {
		return []ledger.Asset{}, nil
	}
	return sortedValues(records.assets, func(a, b ledger.Asset) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

func (r *RecordsRepository) UpsertIncomes(ctx context.Context, profileID string, incomes []ledger.Income) error {
	defer r.lockWrite()()
	put(r.records(profileID).incomes, incomes, func(item ledger.Income) string { return item.ID })
	return nil
}

func (r *RecordsRepository) UpsertSpendings(ctx context.Context, profileID string, spendings []ledger.Spending) error {
	defer r.lockWrite()()
	put(r.records(profileID).spendings, spendings, func(item ledger.Spending) string { return item.ID })
	return nil
}

func (r *RecordsRepository) UpsertObligations(ctx context.Context, profileID string, obligations []ledger.Obligation) error {
	defer r.lockWrite()()
	put(r.records(profileID).obligations, obligations, func(item ledger.Obligation) string { return item.ID })
	return nil
}

func (r *RecordsRepository) UpsertAssets(ctx context.Context, profileID string, assets []ledger.Asset) error {
	defer r.lockWrite()()
	put(r.records(profileID).assets, assets, func(item ledger.Asset) string { return item.ID })
	return nil
}

func (r *RecordsRepository) DeleteIncomesExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error) {
	defer r.lockWrite()()
	return prune(r.records(profileID).incomes, keepIDs), nil
}

func (r *RecordsRepository) DeleteSpendingsExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error) {
	defer r.lockWrite()()
	return prune(r.records(profileID).spendings, keepIDs), nil
}

func (r *RecordsRepository) DeleteObligationsExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error) {
	defer r.lockWrite()()
	return prune(r.records(profileID).obligations, keepIDs), nil
}

func (r *RecordsRepository) DeleteAssetsExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error) {
	defer r.lockWrite()()
	return prune(r.records(profileID).assets, keepIDs), nil
}

func put[T any](table map[string]T, items []T, idOf func(T) string) {
	for _, item := range items {
		table[idOf(item)] = item
	}
}

func prune[T any](table map[string]T, keepIDs []string) int64 {
	keep := make(map[string]struct{}, len(keepIDs))
	for _, id := range keepIDs {
		keep[id] = struct{}{}
	}
	var deleted int64
	for id := range table {
		if _, ok := keep[id]; !ok {
			delete(table, id)
			deleted++
		}
	}
	return deleted
}

// sortedValues orders by less, ties broken by id.
func sortedValues[T any](table map[string]T, less func(a, b T) bool) []T {
	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	items := make([]T, 0, len(table))
	for _, key := range keys {
		items = append(items, table[key])
	}
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	return items
}

func cloneMap[T any](table map[string]T) map[string]T {
	next := make(map[string]T, len(table))
	for key, value := range table {
		next[key] = value
	}
	return next
}

func cloneProfiles(profiles map[string]*profileRecords) map[string]*profileRecords {
	next := make(map[string]*profileRecords, len(profiles))
	for id, records := range profiles {
		next[id] = &profileRecords{
			incomes:     cloneMap(records.incomes),
			spendings:   cloneMap(records.spendings),
			obligations: cloneMap(records.obligations),
			assets:      cloneMap(records.assets),
		}
	}
	return next
}
