package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	portsrepo "github.com/omarrayoubb/gateway-sub003/internal/core/ports/repositories"
	"github.com/omarrayoubb/gateway-sub003/internal/models"
	"github.com/omarrayoubb/gateway-sub003/internal/utils/mapping"
	"github.com/omarrayoubb/gateway-sub003/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_entry_id, organization_id, entry_number, entry_date, entry_type, status,
	total_debit, total_credit, is_balanced, reference, notes, version, posted_at, voided_at,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, journal_entry_id, line_number, account_id, account_code, account_name,
	description, debit, credit, created_at`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalEntryID,
		&m.OrganizationID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.EntryType,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.IsBalanced,
		&m.Reference,
		&m.Notes,
		&m.Version,
		&m.PostedAt,
		&m.VoidedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateJournalEntry inserts the header and queues the lines in one batch, all within one
// database transaction.
func (r *PgxJournalRepository) CreateJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.WithTransaction(ctx, func(ctx context.Context) error {
		m := mapping.ToModelJournalEntry(entry)
		query := `
			INSERT INTO journal_entries (` + journalColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
		`
		_, err := r.db(ctx).Exec(ctx, query,
			m.JournalEntryID,
			m.OrganizationID,
			m.EntryNumber,
			m.EntryDate,
			m.EntryType,
			m.Status,
			m.TotalDebit,
			m.TotalCredit,
			m.IsBalanced,
			m.Reference,
			m.Notes,
			m.Version,
			m.PostedAt,
			m.VoidedAt,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return mapWriteError(err, "journal entry "+m.EntryNumber)
		}
		return r.insertLines(ctx, entry.Lines)
	})
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, lines []domain.JournalEntryLine) error {
	if len(lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO journal_entry_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	for _, l := range lines {
		m := mapping.ToModelJournalEntryLine(l)
		batch.Queue(query,
			m.LineID,
			m.JournalEntryID,
			m.LineNumber,
			m.AccountID,
			m.AccountCode,
			m.AccountName,
			m.Description,
			m.Debit,
			m.Credit,
			m.CreatedAt,
		)
	}

	br := r.db(ctx).SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return mapWriteError(err, "journal entry lines")
	}
	return nil
}

// FindJournalEntryByID retrieves a journal entry with its lines.
func (r *PgxJournalRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE journal_entry_id = $1;`

	m, err := scanJournalEntry(r.db(ctx).QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry", journalEntryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+journalEntryID, err)
	}

	lines, err := r.findLinesByEntryIDs(ctx, []string{journalEntryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines[journalEntryID])
	if entry.Lines == nil {
		entry.Lines = []domain.JournalEntryLine{}
	}
	return &entry, nil
}

// findLinesByEntryIDs returns lines grouped by entry, each group ordered by line number.
func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, ids []string) (map[string][]models.JournalEntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE journal_entry_id = ANY($1) ORDER BY journal_entry_id, line_number;`

	rows, err := r.db(ctx).Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry lines", err)
	}
	defer rows.Close()

	out := make(map[string][]models.JournalEntryLine, len(ids))
	for rows.Next() {
		var l models.JournalEntryLine
		if err := rows.Scan(
			&l.LineID,
			&l.JournalEntryID,
			&l.LineNumber,
			&l.AccountID,
			&l.AccountCode,
			&l.AccountName,
			&l.Description,
			&l.Debit,
			&l.Credit,
			&l.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry line", err)
		}
		out[l.JournalEntryID] = append(out[l.JournalEntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry lines", err)
	}
	return out, nil
}

// EntryNumberExists checks the per-organization uniqueness of an entry number.
func (r *PgxJournalRepository) EntryNumberExists(ctx context.Context, organizationID *string, entryNumber string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM journal_entries
			WHERE organization_id IS NOT DISTINCT FROM $1 AND entry_number = $2
		);
	`
	var exists bool
	if err := r.db(ctx).QueryRow(ctx, query, organizationID, entryNumber).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check entry number "+entryNumber, err)
	}
	return exists, nil
}

// ListJournalEntries retrieves a page of journal entry headers, newest first.
// It returns the entries, a token for the next page, and an error.
func (r *PgxJournalRepository) ListJournalEntries(ctx context.Context, filter portsrepo.JournalEntryListFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE TRUE`
	args := []any{}
	add := func(clause string, v any) {
		args = append(args, v)
		query += " AND " + clause + " $" + strconv.Itoa(len(args))
	}
	if filter.OrganizationID != nil {
		add("organization_id =", *filter.OrganizationID)
	}
	if filter.Status != nil {
		add("status =", string(*filter.Status))
	}
	if filter.EntryType != nil {
		add("entry_type =", string(*filter.EntryType))
	}
	if filter.From != nil {
		add("entry_date >=", domain.DateOf(*filter.From))
	}
	if filter.To != nil {
		add("entry_date <=", domain.DateOf(*filter.To))
	}

	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		// Tuple comparison keeps the keyset stable across equal dates and timestamps.
		args = append(args, c.EntryDate, c.CreatedAt, c.ID)
		n := len(args)
		query += fmt.Sprintf(" AND (entry_date, created_at, journal_entry_id) < ($%d, $%d, $%d)", n-2, n-1, n)
	}

	args = append(args, fetchLimit)
	query += " ORDER BY entry_date DESC, created_at DESC, journal_entry_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	ms := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.JournalEntryID})
		nextTokenVal = &token
		ms = ms[:limit]
	}

	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainJournalEntry(m, nil)
	}
	return entries, nextTokenVal, nil
}

// FindPostedEntriesByAccount loads posted entries touching the account, oldest first.
func (r *PgxJournalRepository) FindPostedEntriesByAccount(ctx context.Context, accountID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries je
		WHERE je.status = 'posted'
		  AND EXISTS (SELECT 1 FROM journal_entry_lines l WHERE l.journal_entry_id = je.journal_entry_id AND l.account_id = $1)
		ORDER BY je.entry_date, je.created_at, je.journal_entry_id;
	`
	rows, err := r.db(ctx).Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query posted entries for account "+accountID, err)
	}
	defer rows.Close()

	ms := []models.JournalEntry{}
	ids := []string{}
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		ms = append(ms, m)
		ids = append(ids, m.JournalEntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	if len(ms) == 0 {
		return []domain.JournalEntry{}, nil
	}

	lines, err := r.findLinesByEntryIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainJournalEntry(m, lines[m.JournalEntryID])
	}
	return entries, nil
}

// CountDraftEntriesForAccount counts drafts touching the account dated on or after from.
func (r *PgxJournalRepository) CountDraftEntriesForAccount(ctx context.Context, accountID string, from *time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_entries je
		WHERE je.status = 'draft'
		  AND ($2::date IS NULL OR je.entry_date >= $2::date)
		  AND EXISTS (SELECT 1 FROM journal_entry_lines l WHERE l.journal_entry_id = je.journal_entry_id AND l.account_id = $1);
	`
	var n int
	if err := r.db(ctx).QueryRow(ctx, query, accountID, optionalDate(from)).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count draft entries for account "+accountID, err)
	}
	return n, nil
}

// UpdateJournalEntry rewrites editable header fields and optionally the line set.
func (r *PgxJournalRepository) UpdateJournalEntry(ctx context.Context, entry domain.JournalEntry, replaceLines bool, expectedVersion int) error {
	return r.WithTransaction(ctx, func(ctx context.Context) error {
		m := mapping.ToModelJournalEntry(entry)
		query := `
			UPDATE journal_entries
			SET entry_number = $3,
			    entry_date = $4,
			    entry_type = $5,
			    total_debit = $6,
			    total_credit = $7,
			    is_balanced = $8,
			    reference = $9,
			    notes = $10,
			    last_updated_at = $11,
			    last_updated_by = $12,
			    version = version + 1
			WHERE journal_entry_id = $1 AND version = $2;
		`
		cmdTag, err := r.db(ctx).Exec(ctx, query,
			m.JournalEntryID,
			expectedVersion,
			m.EntryNumber,
			m.EntryDate,
			m.EntryType,
			m.TotalDebit,
			m.TotalCredit,
			m.IsBalanced,
			m.Reference,
			m.Notes,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return mapWriteError(err, "journal entry "+m.JournalEntryID)
		}
		if cmdTag.RowsAffected() == 0 {
			return r.versionMiss(ctx, m.JournalEntryID, expectedVersion)
		}

		if !replaceLines {
			return nil
		}
		if _, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entry_lines WHERE journal_entry_id = $1;`, m.JournalEntryID); err != nil {
			return apperrors.NewAppError(500, "failed to delete lines of journal entry "+m.JournalEntryID, err)
		}
		return r.insertLines(ctx, entry.Lines)
	})
}

// UpdateJournalEntryStatus writes a lifecycle transition.
func (r *PgxJournalRepository) UpdateJournalEntryStatus(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET status = $3,
		    total_debit = $4,
		    total_credit = $5,
		    is_balanced = $6,
		    notes = $7,
		    posted_at = $8,
		    voided_at = $9,
		    last_updated_at = $10,
		    last_updated_by = $11,
		    version = version + 1
		WHERE journal_entry_id = $1 AND version = $2;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		m.JournalEntryID,
		expectedVersion,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.IsBalanced,
		m.Notes,
		m.PostedAt,
		m.VoidedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "journal entry status "+m.JournalEntryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.versionMiss(ctx, m.JournalEntryID, expectedVersion)
	}
	return nil
}

// versionMiss tells a missing row apart from a stale version.
func (r *PgxJournalRepository) versionMiss(ctx context.Context, id string, expectedVersion int) error {
	var current int
	err := r.db(ctx).QueryRow(ctx, `SELECT version FROM journal_entries WHERE journal_entry_id = $1;`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError("journal entry", id)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to read version of journal entry "+id, err)
	}
	return fmt.Errorf("%w: journal entry %s is at version %d, expected %d", apperrors.ErrConflict, id, current, expectedVersion)
}

// DeleteJournalEntry removes a draft; lines go with it through ON DELETE CASCADE.
func (r *PgxJournalRepository) DeleteJournalEntry(ctx context.Context, journalEntryID string, expectedVersion int) error {
	query := `
		DELETE FROM journal_entries
		WHERE journal_entry_id = $1 AND version = $2 AND status = $3;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, journalEntryID, expectedVersion, string(domain.StatusDraft))
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+journalEntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.versionMiss(ctx, journalEntryID, expectedVersion)
	}
	return nil
}

func optionalDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.DateOf(*t)
	return &d
}
