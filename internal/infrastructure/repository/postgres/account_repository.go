package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/talent-scout/internal/domain/account"
	"github.com/riskibarqy/talent-scout/internal/domain/profile"
	qb "github.com/riskibarqy/talent-scout/internal/platform/querybuilder"
)

type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) CreateWithProfile(ctx context.Context, acc account.Account, p profile.Profile) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create account tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertProfile(ctx, tx, p); err != nil {
		return err
	}

	query, args, err := qb.InsertModel(accountsTable, accountInsertModel{
		ID:           acc.ID,
		Name:         acc.Name,
		Email:        account.NormalizeEmail(acc.Email),
		PasswordHash: acc.PasswordHash,
		Role:         string(acc.Role),
		ProfileID:    acc.ProfileID,
		CreatedAt:    acc.CreatedAt,
		UpdatedAt:    acc.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert account query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return account.ErrEmailTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create account tx: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (account.Account, bool, error) {
	return r.getBy(ctx, qb.Eq("email", account.NormalizeEmail(email)))
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (account.Account, bool, error) {
	return r.getBy(ctx, qb.Eq("id", id))
}

func (r *AccountRepository) getBy(ctx context.Context, cond qb.Condition) (account.Account, bool, error) {
	query, args, err := qb.Select("*").From(accountsTable).Where(cond).Limit(1).ToSQL()
	if err != nil {
		return account.Account{}, false, fmt.Errorf("build get account query: %w", err)
	}

	var row accountTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return account.Account{}, false, nil
		}
		return account.Account{}, false, fmt.Errorf("get account: %w", err)
	}
	return accountFromRow(row), true, nil
}

// DeleteWithProfile removes the profile and then its owning account in one transaction.
func (r *AccountRepository) DeleteWithProfile(ctx context.Context, accountID string, kind profile.Kind, profileID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete account tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteProfile(ctx, tx, kind, profileID); err != nil {
		return err
	}

	query, args, err := qb.DeleteFrom(accountsTable).
		Where(qb.Eq("id", accountID), qb.Eq("profile_id", profileID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete account query: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account rows affected: %w", err)
	}
	if affected == 0 {
		return account.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete account tx: %w", err)
	}
	return nil
}
