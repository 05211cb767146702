package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

type PostgresWalletRepository struct {
	db *pgxpool.Pool
}

func NewPostgresWalletRepository(db *pgxpool.Pool) *PostgresWalletRepository {
	return &PostgresWalletRepository{
		db: db,
	}
}

func (p *PostgresWalletRepository) GetOrCreate(ctx context.Context, userID int) (*domain.WalletAccount, error) {
	return p.getOrCreate(ctx, userID, false)
}

func (p *PostgresWalletRepository) GetForUpdate(ctx context.Context, userID int) (*domain.WalletAccount, error) {
	if _, ok := txFromContext(ctx); !ok {
		return nil, errNoTransaction
	}

	return p.getOrCreate(ctx, userID, true)
}

func (p *PostgresWalletRepository) getOrCreate(
	ctx context.Context,
	userID int,
	forUpdate bool) (*domain.WalletAccount, error) {

	q := conn(ctx, p.db)

	_, err := q.Exec(ctx, `
		INSERT INTO wallet_accounts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, balance, updated_at
		FROM wallet_accounts
		WHERE user_id = $1
	`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var account domain.WalletAccount

	err = q.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.Balance,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// Apply moves the balance by entry.Delta and appends the entry in the same
// transaction. The balance CHECK constraint turns an overdraft into
// ErrInsufficientFunds.
func (p *PostgresWalletRepository) Apply(ctx context.Context, entry *domain.LedgerEntry) (int64, error) {
	var balance int64

	err := inTx(ctx, p.db, func(q DBTX) error {
		query := `
			UPDATE wallet_accounts
			SET balance = balance + $2, updated_at = NOW()
			WHERE user_id = $1
			RETURNING balance
		`

		err := q.QueryRow(ctx, query, entry.UserID, entry.Delta).Scan(&balance)
		if err != nil {
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				return domain.ErrRecordNotFound
			case isPgError(err, pgerrcode.CheckViolation):
				return fmt.Errorf("%w: %w", domain.ErrInsufficientFunds, err)
			default:
				return err
			}
		}

		query = `
			INSERT INTO ledger_entries (user_id, delta, reason)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`

		return q.QueryRow(ctx, query, entry.UserID, entry.Delta, entry.Reason).Scan(&entry.ID, &entry.CreatedAt)
	})
	if err != nil {
		return 0, err
	}

	return balance, nil
}

func (p *PostgresWalletRepository) History(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.LedgerEntry, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id,
			user_id,
			delta,
			reason,
			created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	entries := make([]domain.LedgerEntry, 0)
	totalRecords := 0

	for rows.Next() {
		var entry domain.LedgerEntry

		err := rows.Scan(
			&totalRecords,
			&entry.ID,
			&entry.UserID,
			&entry.Delta,
			&entry.Reason,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return entries, metadata, nil
}
