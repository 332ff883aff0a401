package sync

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"money-tracker-go/internal/domain/ledger"
	syncdomain "money-tracker-go/internal/domain/sync"
)

const upsertBatchSize = 200

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(syncdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListIncomes(ctx context.Context, profileID string) ([]ledger.Income, error) {
	return listRows(ctx, r.db, profileID, incomeRow.toDomain)
}

func (r *PostgresRepository) ListSpendings(ctx context.Context, profileID string) ([]ledger.Spending, error) {
	return listRows(ctx, r.db, profileID, spendingRow.toDomain)
}

func (r *PostgresRepository) ListObligations(ctx context.Context, profileID string) ([]ledger.Obligation, error) {
	return listRows(ctx, r.db, profileID, obligationRow.toDomain)
}

func (r *PostgresRepository) ListAssets(ctx context.Context, profileID string) ([]ledger.Asset, error) {
	return listRows(ctx, r.db, profileID, assetRow.toDomain)
}

func (r *PostgresRepository) UpsertIncomes(ctx context.Context, profileID string, incomes []ledger.Income) error {
	return upsertRows(ctx, r.db, mapRows(profileID, incomes, newIncomeRow))
}

func (r *PostgresRepository) UpsertSpendings(ctx context.Context, profileID string, spendings []ledger.Spending) error {
	return upsertRows(ctx, r.db, mapRows(profileID, spendings, newSpendingRow))
}

func (r *PostgresRepository) UpsertObligations(ctx context.Context, profileID string, obligations []ledger.Obligation) error {
	return upsertRows(ctx, r.db, mapRows(profileID, obligations, newObligationRow))
}

func (r *PostgresRepository) UpsertAssets(ctx context.Context, profileID string, assets []ledger.Asset) error {
	return upsertRows(ctx, r.db, mapRows(profileID, assets, newAssetRow))
}

func (r *PostgresRepository) DeleteIncomesExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error) {
	return deleteRowsExcept[incomeRow](ctx, r.db, profileID, keepIDs)
}

func (r *PostgresRepository) DeleteSpendingsExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error) {
	return deleteRowsExcept[spendingRow](ctx, r.db, profileID, keepIDs)
}

func (r *PostgresRepository) DeleteObligationsExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error) {
	return deleteRowsExcept[obligationRow](ctx, r.db, profileID, keepIDs)
}

func (r *PostgresRepository) DeleteAssetsExcept(ctx context.Context, profileID string, keepIDs []string) (int64, error) {
	return deleteRowsExcept[assetRow](ctx, r.db, profileID, keepIDs)
}

func listRows[R any, T any](ctx context.Context, db *gorm.DB, profileID string, toDomain func(R) T) ([]T, error) {
	var rows []R
	if err := db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDomain(row))
	}
	return items, nil
}

func mapRows[T any, R any](profileID string, items []T, toRow func(string, T) R) []R {
	rows := make([]R, 0, len(items))
	for _, item := range items {
		rows = append(rows, toRow(profileID, item))
	}
	return rows
}

// upsertRows conflicts on the profile scoped key, so a row of another
// profile with the same id is never touched.
func upsertRows[R any](ctx context.Context, db *gorm.DB, rows []R) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "id"}},
			UpdateAll: true,
		}).
		CreateInBatches(&rows, upsertBatchSize).Error
}

func deleteRowsExcept[R any](ctx context.Context, db *gorm.DB, profileID string, keepIDs []string) (int64, error) {
	query := db.WithContext(ctx).Where("profile_id = ?", profileID)
	if len(keepIDs) > 0 {
		query = query.Where("id NOT IN ?", keepIDs)
	}

	var model R
	result := query.Delete(&model)
	return result.RowsAffected, result.Error
}
