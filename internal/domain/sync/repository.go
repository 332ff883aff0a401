package sync

import (
	"context"

	"money-tracker-go/internal/domain/ledger"
)

// Repository is the remote mirror of a profile's records. DeleteXExcept
// removes every row of the profile whose id is not in keepIDs; an empty
// keepIDs removes them all.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListIncomes(ctx context.Context, profileID string) ([]ledger.Income, error)
	ListSpendings(ctx context.Context, profileID string) ([]ledger.Spending, error)
	ListObligations(ctx context.Context, profileID string) ([]ledger.Obligation, error)
	ListAssets(ctx context.Context, profileID string) ([]ledger.Asset, error)

	UpsertIncomes(ctx context.Context, profileID string, incomes []ledger.Income) error
	UpsertSpendings(ctx context.Context, profileID string, spendings []ledger.Spending) error
	UpsertObligations(ctx context.Context, profileID string, obligations []ledger.Obligation) error
	UpsertAssets(ctx context.Context, profileID string, assets []ledger.Asset) error

	DeleteIncomesExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error)
	DeleteSpendingsExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error)
	DeleteObligationsExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error)
	DeleteAssetsExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error)
}
