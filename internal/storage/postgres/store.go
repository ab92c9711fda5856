package postgres

// Package postgres provides a pgx-backed session store that satisfies the
// repository and writer interfaces used by the session service.
//
// It is intentionally small and explicit. Migrations that create the
// expected schema live under db/migrations. This package focuses on mapping
// between the session entities and SQL rows and running the necessary
// statements/transactions. The report core never touches it; it only keeps
// uploaded batches and their override maps across restarts.

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fecworks/fecreport/internal/errs"
	"github.com/fecworks/fecreport/internal/fec"
	"github.com/fecworks/fecreport/internal/mapping"
	"github.com/fecworks/fecreport/internal/service/session"
)

// Store holds a pgx connection pool and implements the session repo and
// writer. All methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// CreateSession inserts the session row, its entries and (normally empty)
// overrides in one transaction. Entries go through COPY; uploads run to
// hundreds of thousands of lines.
func (s *Store) CreateSession(ctx context.Context, sess session.Session) (session.Session, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return session.Session{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		insert into sessions (id, name, created_at, entry_count)
		values ($1, $2, $3, $4)
	`, sess.ID, sess.Name, sess.CreatedAt, len(sess.Entries)); err != nil {
		return session.Session{}, err
	}

	rows := make([][]any, 0, len(sess.Entries))
	for i, e := range sess.Entries {
		rows = append(rows, []any{
			sess.ID, i, e.JournalCode, e.EcritureNum, e.EcritureDate,
			e.CompteNum, e.CompteLib, e.EcritureLib, e.Debit, e.Credit,
		})
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"entries"},
		[]string{"session_id", "seq", "journal_code", "ecriture_num", "ecriture_date", "compte_num", "compte_lib", "ecriture_lib", "debit", "credit"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return session.Session{}, err
	}

	for num, m := range sess.Overrides {
		if _, err := tx.Exec(ctx, `
			insert into overrides (session_id, account_number, concept, sub_category, category)
			values ($1, $2, $3, $4, $5)
		`, sess.ID, num, m.Concept, m.SubCategory, m.Category); err != nil {
			return session.Session{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// SessionByID loads a full session: row, entries in upload order, overrides.
func (s *Store) SessionByID(ctx context.Context, id uuid.UUID) (session.Session, error) {
	var sess session.Session
	err := s.pool.QueryRow(ctx, `
		select id, name, created_at, entry_count from sessions where id = $1
	`, id).Scan(&sess.ID, &sess.Name, &sess.CreatedAt, &sess.EntryCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return session.Session{}, errs.ErrNotFound
	}
	if err != nil {
		return session.Session{}, err
	}

	rows, err := s.pool.Query(ctx, `
		select journal_code, ecriture_num, ecriture_date, compte_num, compte_lib, ecriture_lib, debit, credit
		from entries
		where session_id = $1
		order by seq
	`, id)
	if err != nil {
		return session.Session{}, err
	}
	defer rows.Close()
	sess.Entries = make([]fec.Entry, 0, sess.EntryCount)
	for rows.Next() {
		var e fec.Entry
		if err := rows.Scan(&e.JournalCode, &e.EcritureNum, &e.EcritureDate, &e.CompteNum, &e.CompteLib, &e.EcritureLib, &e.Debit, &e.Credit); err != nil {
			return session.Session{}, err
		}
		sess.Entries = append(sess.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return session.Session{}, err
	}

	overrides, err := s.loadOverrides(ctx, id)
	if err != nil {
		return session.Session{}, err
	}
	sess.Overrides = overrides
	return sess, nil
}

func (s *Store) loadOverrides(ctx context.Context, id uuid.UUID) (mapping.Overrides, error) {
	rows, err := s.pool.Query(ctx, `
		select account_number, concept, sub_category, category
		from overrides
		where session_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := mapping.Overrides{}
	for rows.Next() {
		var num string
		var m mapping.Mapping
		if err := rows.Scan(&num, &m.Concept, &m.SubCategory, &m.Category); err != nil {
			return nil, err
		}
		out[num] = m
	}
	return out, rows.Err()
}

// ListSessions returns session rows without entry payloads, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]session.Session, error) {
	rows, err := s.pool.Query(ctx, `
		select id, name, created_at, entry_count
		from sessions
		order by created_at desc, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]session.Session, 0)
	for rows.Next() {
		var sess session.Session
		if err := rows.Scan(&sess.ID, &sess.Name, &sess.CreatedAt, &sess.EntryCount); err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// UpdateOverrides replaces the session's override rows with the given map.
func (s *Store) UpdateOverrides(ctx context.Context, id uuid.UUID, o mapping.Overrides) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `update sessions set updated_at = now() where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `delete from overrides where session_id = $1`, id); err != nil {
		return err
	}
	for num, m := range o {
		if _, err := tx.Exec(ctx, `
			insert into overrides (session_id, account_number, concept, sub_category, category)
			values ($1, $2, $3, $4, $5)
		`, id, num, m.Concept, m.SubCategory, m.Category); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// DeleteSession removes the session and its dependent rows via cascade.
func (s *Store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `delete from sessions where id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
