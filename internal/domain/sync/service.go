package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"money-tracker-go/internal/domain/ledger"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// FetchAll reads the four remote collections of a profile. Budgets are local
// only and come back empty.
func (s *Service) FetchAll(ctx context.Context, profileID string) (ledger.State, error) {
	profileID, err := requireProfile(profileID)
	if err != nil {
		return ledger.State{}, err
	}

	state := ledger.NewState()
	if state.Incomes, err = s.repo.ListIncomes(ctx, profileID); err != nil {
		return ledger.State{}, fmt.Errorf("fetch %s: %w", CollectionIncomes, err)
	}
	if state.Spendings, err = s.repo.ListSpendings(ctx, profileID); err != nil {
		return ledger.State{}, fmt.Errorf("fetch %s: %w", CollectionSpendings, err)
	}
	if state.Obligations, err = s.repo.ListObligations(ctx, profileID); err != nil {
		return ledger.State{}, fmt.Errorf("fetch %s: %w", CollectionObligations, err)
	}
	if state.Assets, err = s.repo.ListAssets(ctx, profileID); err != nil {
		return ledger.State{}, fmt.Errorf("fetch %s: %w", CollectionAssets, err)
	}

	return state.Normalize(), nil
}

func (s *Service) SyncIncomes(ctx context.Context, profileID string, incomes []ledger.Income) (Report, error) {
	return runSync(ctx, s.repo, profileID, incomesSync, incomes)
}

func (s *Service) SyncSpendings(ctx context.Context, profileID string, spendings []ledger.Spending) (Report, error) {
	return runSync(ctx, s.repo, profileID, spendingsSync, spendings)
}

func (s *Service) SyncObligations(ctx context.Context, profileID string, obligations []ledger.Obligation) (Report, error) {
	return runSync(ctx, s.repo, profileID, obligationsSync, obligations)
}

func (s *Service) SyncAssets(ctx context.Context, profileID string, assets []ledger.Asset) (Report, error) {
	return runSync(ctx, s.repo, profileID, assetsSync, assets)
}

// PushAll mirrors every remote collection in turn and stops at the first
// failure. Collections synced before the failure stay synced.
func (s *Service) PushAll(ctx context.Context, profileID string, state ledger.State) (PushResult, error) {
	result := PushResult{Reports: make([]Report, 0, 4)}

	steps := []func() (Report, error){
		func() (Report, error) { return s.SyncIncomes(ctx, profileID, state.Incomes) },
		func() (Report, error) { return s.SyncObligations(ctx, profileID, state.Obligations) },
		func() (Report, error) { return s.SyncSpendings(ctx, profileID, state.Spendings) },
		func() (Report, error) { return s.SyncAssets(ctx, profileID, state.Assets) },
	}
	for _, step := range steps {
		report, err := step()
		if err != nil {
			return result, err
		}
		result.Reports = append(result.Reports, report)
	}

	result.PushedAt = s.now().UTC()
	return result, nil
}

type collectionSync[T any] struct {
	name   Collection
	id     func(T) string
	upsert func(Repository, context.Context, string, []T) error
	prune  func(Repository, context.Context, string, []string) (int64, error)
}

var (
	incomesSync = collectionSync[ledger.Income]{
		name:   CollectionIncomes,
		id:     func(record ledger.Income) string { return record.ID },
		upsert: Repository.UpsertIncomes,
		prune:  Repository.DeleteIncomesExcept,
	}
	spendingsSync = collectionSync[ledger.Spending]{
		name:   CollectionSpendings,
		id:     func(record ledger.Spending) string { return record.ID },
		upsert: Repository.UpsertSpendings,
		prune:  Repository.DeleteSpendingsExcept,
	}
	obligationsSync = collectionSync[ledger.Obligation]{
		name:   CollectionObligations,
		id:     func(record ledger.Obligation) string { return record.ID },
		upsert: Repository.UpsertObligations,
		prune:  Repository.DeleteObligationsExcept,
	}
	assetsSync = collectionSync[ledger.Asset]{
		name:   CollectionAssets,
		id:     func(record ledger.Asset) string { return record.ID },
		upsert: Repository.UpsertAssets,
		prune:  Repository.DeleteAssetsExcept,
	}
)

// runSync upserts every record by id and then deletes the profile's rows that
// are no longer present locally, in one transaction.
func runSync[T any](ctx context.Context, repo Repository, profileID string, c collectionSync[T], records []T) (Report, error) {
	profileID, err := requireProfile(profileID)
	if err != nil {
		return Report{}, err
	}

	ids := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		id := c.id(record)
		if _, ok := seen[id]; ok {
			return Report{}, fmt.Errorf("sync %s: %w: %s", c.name, ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	report := Report{Collection: c.name, Upserted: len(records)}
	err = repo.Transaction(ctx, func(tx Repository) error {
		if len(records) > 0 {
			if err := c.upsert(tx, ctx, profileID, records); err != nil {
				return err
			}
		}
		deleted, err := c.prune(tx, ctx, profileID, ids)
		if err != nil {
			return err
		}
		report.Deleted = deleted
		return nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("sync %s: %w", c.name, err)
	}
	return report, nil
}

func requireProfile(profileID string) (string, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return "", ErrProfileRequired
	}
	return profileID, nil
}
