// Package session manages uploaded FEC batches and their session-scoped
// mapping overrides, and runs the report core over them. A session is the
// unit of work an operator iterates on: upload once, then refine manual
// mappings until the report looks right.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fecworks/fecreport/internal/errs"
	"github.com/fecworks/fecreport/internal/fec"
	"github.com/fecworks/fecreport/internal/mapping"
	"github.com/fecworks/fecreport/internal/report"
)

// Session is one uploaded FEC batch plus its override map. Overrides are
// copy-on-write; a stored session is never mutated in place.
type Session struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	// EntryCount is kept alongside Entries so listings can skip loading
	// entry payloads.
	EntryCount int
	Entries    []fec.Entry
	Overrides  mapping.Overrides
}

// Repo defines read operations needed by the service.
type Repo interface {
	SessionByID(ctx context.Context, id uuid.UUID) (Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
}

// Writer defines write operations needed by the service.
type Writer interface {
	CreateSession(ctx context.Context, s Session) (Session, error)
	UpdateOverrides(ctx context.Context, id uuid.UUID, o mapping.Overrides) error
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

// Report bundles everything the rendering layer consumes for one session:
// the operating-model tree, both balance checks, and the account
// worksheets. It is recomputed in full on every call.
type Report struct {
	SessionID  uuid.UUID
	EntryCount int
	Categories []*report.Category
	Validation report.ValidationResult
	Balance    report.Balance
	Unmapped   []report.UnmappedAccount
	Accounts   []report.AccountSummary
}

// Service exposes session lifecycle, mapping edits and report builds.
type Service interface {
	Create(ctx context.Context, name string, entries []fec.Entry) (Session, error)
	Get(ctx context.Context, id uuid.UUID) (Session, error)
	List(ctx context.Context) ([]Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PutMapping(ctx context.Context, id uuid.UUID, accountNumber string, m mapping.Mapping) (Session, error)
	DeleteMapping(ctx context.Context, id uuid.UUID, accountNumber string) (Session, error)
	BuildReport(ctx context.Context, id uuid.UUID) (Report, error)
}

type service struct {
	repo   Repo
	writer Writer
	engine *report.Engine
}

// New constructs the service over a repo/writer pair and the report engine.
func New(repo Repo, writer Writer, engine *report.Engine) Service {
	return &service{repo: repo, writer: writer, engine: engine}
}

func (s *service) Create(ctx context.Context, name string, entries []fec.Entry) (Session, error) {
	if len(entries) == 0 {
		return Session{}, errs.ErrEmptyFile
	}
	sess := Session{
		ID:         uuid.New(),
		Name:       name,
		CreatedAt:  time.Now().UTC(),
		EntryCount: len(entries),
		Entries:    entries,
		Overrides:  mapping.Overrides{},
	}
	return s.writer.CreateSession(ctx, sess)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	if id == uuid.Nil {
		return Session{}, errs.ErrInvalid
	}
	return s.repo.SessionByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Session, error) {
	return s.repo.ListSessions(ctx)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.ErrInvalid
	}
	return s.writer.DeleteSession(ctx, id)
}

// PutMapping stores a manual mapping override keyed by the normalized
// account number. The next report build picks it up; nothing is computed
// incrementally.
func (s *service) PutMapping(ctx context.Context, id uuid.UUID, accountNumber string, m mapping.Mapping) (Session, error) {
	normalized := fec.NormalizeAccountNumber(accountNumber)
	if normalized == "" || m.Category == "" || m.SubCategory == "" || m.Concept == "" {
		return Session{}, errs.ErrInvalid
	}
	sess, err := s.repo.SessionByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	sess.Overrides = sess.Overrides.With(normalized, m)
	if err := s.writer.UpdateOverrides(ctx, id, sess.Overrides); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *service) DeleteMapping(ctx context.Context, id uuid.UUID, accountNumber string) (Session, error) {
	normalized := fec.NormalizeAccountNumber(accountNumber)
	if normalized == "" {
		return Session{}, errs.ErrInvalid
	}
	sess, err := s.repo.SessionByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if _, ok := sess.Overrides.Get(normalized); !ok {
		return Session{}, errs.ErrNotFound
	}
	sess.Overrides = sess.Overrides.Without(normalized)
	if err := s.writer.UpdateOverrides(ctx, id, sess.Overrides); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// BuildReport runs the full core over the session: tree, both balance
// checks, and the worksheets. The static unmapped view is filtered by the
// session overrides here, so operators only see accounts still needing a
// fix; the all-accounts view is re-tagged the same way.
func (s *service) BuildReport(ctx context.Context, id uuid.UUID) (Report, error) {
	sess, err := s.repo.SessionByID(ctx, id)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		SessionID:  sess.ID,
		EntryCount: len(sess.Entries),
		Categories: s.engine.Build(sess.Entries, sess.Overrides),
		Validation: report.ValidateEntries(sess.Entries),
		Balance:    report.GlobalBalance(sess.Entries),
		Accounts:   s.engine.AllAccounts(sess.Entries),
	}

	for _, u := range s.engine.UnmappedAccounts(sess.Entries) {
		if _, ok := sess.Overrides.Get(u.CompteNum); ok {
			continue
		}
		rep.Unmapped = append(rep.Unmapped, u)
	}
	for i := range rep.Accounts {
		if m, ok := sess.Overrides.Get(rep.Accounts[i].CompteNum); ok {
			rep.Accounts[i].IsMapped = true
			override := m
			rep.Accounts[i].Mapping = &override
		}
	}
	return rep, nil
}
