package pgsql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	"github.com/omarrayoubb/gateway-sub003/internal/models"
	"github.com/omarrayoubb/gateway-sub003/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository stores the general ledger projection.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerSelect = `
	SELECT g.entry_id, g.account_id, g.transaction_date, g.transaction_type, g.transaction_id,
	       g.reference, g.description, g.debit, g.credit, g.balance, g.created_at, g.updated_at,
	       COALESCE(a.code, ''), COALESCE(a.name, '')
	FROM general_ledger_entries g
	LEFT JOIN accounts a ON a.account_id = g.account_id
`

func (r *PgxLedgerRepository) queryLedger(ctx context.Context, query string, args ...any) ([]domain.GeneralLedgerEntry, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query general ledger", err)
	}
	defer rows.Close()

	ms := []models.GeneralLedgerEntry{}
	for rows.Next() {
		var m models.GeneralLedgerEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.AccountID,
			&m.TransactionDate,
			&m.TransactionType,
			&m.TransactionID,
			&m.Reference,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.Balance,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.AccountCode,
			&m.AccountName,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan general ledger row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating general ledger rows", err)
	}
	return mapping.ToDomainLedgerEntrySlice(ms), nil
}

func (r *PgxLedgerRepository) ListLedgerEntriesByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.GeneralLedgerEntry, error) {
	query := ledgerSelect + `
		WHERE g.account_id = $1
		  AND ($2::date IS NULL OR g.transaction_date >= $2::date)
		  AND ($3::date IS NULL OR g.transaction_date <= $3::date)
		ORDER BY g.transaction_date, g.created_at, g.entry_id;
	`
	return r.queryLedger(ctx, query, accountID, optionalDate(from), optionalDate(to))
}

func (r *PgxLedgerRepository) SumNetSince(ctx context.Context, accountID string, from *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit - credit), 0)
		FROM general_ledger_entries
		WHERE account_id = $1 AND ($2::date IS NULL OR transaction_date >= $2::date);
	`
	var net decimal.Decimal
	if err := r.db(ctx).QueryRow(ctx, query, accountID, optionalDate(from)).Scan(&net); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum ledger activity for account "+accountID, err)
	}
	return net, nil
}

func (r *PgxLedgerRepository) ListLedgerEntriesByTransaction(ctx context.Context, transactionID string, transactionType domain.TransactionType) ([]domain.GeneralLedgerEntry, error) {
	query := ledgerSelect + `
		WHERE g.transaction_id = $1 AND g.transaction_type = $2
		ORDER BY g.transaction_date, g.created_at, g.entry_id;
	`
	return r.queryLedger(ctx, query, transactionID, string(transactionType))
}

func (r *PgxLedgerRepository) CountUnprojectedPostedLines(ctx context.Context, accountID string, from *time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entry_lines l
		JOIN journal_entries je ON je.journal_entry_id = l.journal_entry_id
		WHERE l.account_id = $1
		  AND je.status = 'posted'
		  AND ($2::date IS NULL OR je.entry_date >= $2::date)
		  AND NOT EXISTS (
			SELECT 1 FROM general_ledger_entries g
			WHERE g.transaction_id = je.journal_entry_id
			  AND g.account_id = l.account_id
			  AND g.transaction_type = 'journal_entry'
		  );
	`
	var n int
	if err := r.db(ctx).QueryRow(ctx, query, accountID, optionalDate(from)).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unprojected lines for account "+accountID, err)
	}
	return n, nil
}

// UpsertLedgerEntries writes rows in one batch, keyed on (transaction_id, account_id, transaction_type).
func (r *PgxLedgerRepository) UpsertLedgerEntries(ctx context.Context, rows []domain.GeneralLedgerEntry) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO general_ledger_entries (
			entry_id, account_id, transaction_date, transaction_type, transaction_id,
			reference, description, debit, credit, balance, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, $10)
		ON CONFLICT (transaction_id, account_id, transaction_type) DO UPDATE
		SET transaction_date = EXCLUDED.transaction_date,
		    reference = EXCLUDED.reference,
		    description = EXCLUDED.description,
		    debit = EXCLUDED.debit,
		    credit = EXCLUDED.credit,
		    updated_at = EXCLUDED.updated_at;
	`
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, row := range rows {
		m := mapping.ToModelLedgerEntry(row)
		if m.EntryID == "" {
			m.EntryID = uuid.NewString()
		}
		batch.Queue(query,
			m.EntryID,
			m.AccountID,
			m.TransactionDate,
			m.TransactionType,
			m.TransactionID,
			m.Reference,
			m.Description,
			m.Debit,
			m.Credit,
			now,
		)
	}

	br := r.db(ctx).SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapWriteError(err, "general ledger entries")
	}
	return nil
}

func (r *PgxLedgerRepository) DeleteLedgerEntriesByTransaction(ctx context.Context, transactionID string, transactionType domain.TransactionType) (int64, error) {
	cmdTag, err := r.db(ctx).Exec(ctx,
		`DELETE FROM general_ledger_entries WHERE transaction_id = $1 AND transaction_type = $2;`,
		transactionID, string(transactionType))
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete ledger rows of transaction "+transactionID, err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxLedgerRepository) DeleteStaleLedgerEntries(ctx context.Context, transactionID string, transactionType domain.TransactionType, keepAccountIDs []string) (int64, error) {
	if keepAccountIDs == nil {
		keepAccountIDs = []string{}
	}
	cmdTag, err := r.db(ctx).Exec(ctx,
		`DELETE FROM general_ledger_entries
		 WHERE transaction_id = $1 AND transaction_type = $2 AND NOT (account_id = ANY($3));`,
		transactionID, string(transactionType), keepAccountIDs)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete stale ledger rows of transaction "+transactionID, err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxLedgerRepository) DeleteLedgerEntriesByAccount(ctx context.Context, accountID string, transactionType domain.TransactionType) (int64, error) {
	cmdTag, err := r.db(ctx).Exec(ctx,
		`DELETE FROM general_ledger_entries WHERE account_id = $1 AND transaction_type = $2;`,
		accountID, string(transactionType))
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete ledger rows of account "+accountID, err)
	}
	return cmdTag.RowsAffected(), nil
}
