package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/fecworks/fecreport/internal/errs"
	"github.com/fecworks/fecreport/internal/fec"
	"github.com/fecworks/fecreport/internal/mapping"
	"github.com/fecworks/fecreport/internal/report"
	"github.com/fecworks/fecreport/internal/service/session"
	"github.com/fecworks/fecreport/internal/storage/memory"
)

func newService() session.Service {
	store := memory.New()
	engine := report.NewEngine(mapping.NewResolver(mapping.Default()))
	return session.New(store, store, engine)
}

func entry(num, date, compte, lib, debit, credit string) fec.Entry {
	return fec.Entry{
		EcritureNum:  num,
		EcritureDate: date,
		CompteNum:    compte,
		CompteLib:    lib,
		Debit:        debit,
		Credit:       credit,
	}
}

func sampleEntries() []fec.Entry {
	return []fec.Entry{
		entry("1", "20250110", "61352003", "Licences", "120,00", "0,00"),
		entry("1", "20250110", "51200000", "Banque", "0,00", "120,00"),
		entry("2", "20250205", "98765432", "Mystère", "45,00", "0,00"),
		entry("2", "20250205", "51200000", "Banque", "0,00", "45,00"),
	}
}

func TestCreateRejectsEmpty(t *testing.T) {
	svc := newService()
	if _, err := svc.Create(context.Background(), "x.csv", nil); !errors.Is(err, errs.ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestCreateAndGet(t *testing.T) {
	svc := newService()
	sess, err := svc.Create(context.Background(), "jan.csv", sampleEntries())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID == uuid.Nil || sess.EntryCount != 4 || sess.Name != "jan.csv" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	got, err := svc.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != sess.ID || len(got.Entries) != 4 {
		t.Fatalf("round trip: %+v", got)
	}

	if _, err := svc.Get(context.Background(), uuid.Nil); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("nil id: %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown id: %v", err)
	}
}

func TestPutMappingValidatesAndNormalizes(t *testing.T) {
	svc := newService()
	sess, _ := svc.Create(context.Background(), "x.csv", sampleEntries())
	m := mapping.Mapping{Concept: "Consulting", SubCategory: "General & Administrative", Category: mapping.CategoryOpex}

	for _, bad := range []mapping.Mapping{
		{SubCategory: m.SubCategory, Category: m.Category},
		{Concept: m.Concept, Category: m.Category},
		{Concept: m.Concept, SubCategory: m.SubCategory},
	} {
		if _, err := svc.PutMapping(context.Background(), sess.ID, "98765432", bad); !errors.Is(err, errs.ErrInvalid) {
			t.Fatalf("incomplete mapping %+v: %v", bad, err)
		}
	}
	if _, err := svc.PutMapping(context.Background(), sess.ID, "", m); !errors.Is(err, errs.ErrInvalid) {
		t.Fatal("blank account number should be rejected")
	}

	// Short form of the account number maps the same normalized key.
	updated, err := svc.PutMapping(context.Background(), sess.ID, "98765432", m)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if got, ok := updated.Overrides.Get("987654320"); !ok || got != m {
		t.Fatalf("override not stored under normalized key: %+v", updated.Overrides)
	}

	// The stored session changed too.
	stored, _ := svc.Get(context.Background(), sess.ID)
	if _, ok := stored.Overrides.Get("987654320"); !ok {
		t.Fatal("override not persisted")
	}
}

func TestDeleteMapping(t *testing.T) {
	svc := newService()
	sess, _ := svc.Create(context.Background(), "x.csv", sampleEntries())

	if _, err := svc.DeleteMapping(context.Background(), sess.ID, "98765432"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("deleting a missing override: %v", err)
	}

	m := mapping.Mapping{Concept: "Consulting", SubCategory: "General & Administrative", Category: mapping.CategoryOpex}
	if _, err := svc.PutMapping(context.Background(), sess.ID, "98765432", m); err != nil {
		t.Fatalf("put: %v", err)
	}
	updated, err := svc.DeleteMapping(context.Background(), sess.ID, "987654320")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := updated.Overrides.Get("987654320"); ok {
		t.Fatal("override still present")
	}
}

func TestBuildReportFiltersUnmappedByOverrides(t *testing.T) {
	svc := newService()
	sess, _ := svc.Create(context.Background(), "x.csv", sampleEntries())

	rep, err := svc.BuildReport(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if rep.SessionID != sess.ID || rep.EntryCount != 4 {
		t.Fatalf("report header: %+v", rep)
	}
	if len(rep.Unmapped) != 1 || rep.Unmapped[0].CompteNum != "987654320" {
		t.Fatalf("unmapped: %+v", rep.Unmapped)
	}
	if !rep.Validation.IsValid || !rep.Balance.IsBalanced {
		t.Fatalf("balanced sample should validate: %+v", rep)
	}

	m := mapping.Mapping{Concept: "Consulting", SubCategory: "General & Administrative", Category: mapping.CategoryOpex}
	if _, err := svc.PutMapping(context.Background(), sess.ID, "98765432", m); err != nil {
		t.Fatalf("put: %v", err)
	}

	rep, err = svc.BuildReport(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(rep.Unmapped) != 0 {
		t.Fatalf("session-mapped account should drop out: %+v", rep.Unmapped)
	}

	// The all-accounts worksheet reflects the override.
	var found bool
	for _, a := range rep.Accounts {
		if a.CompteNum == "987654320" {
			found = true
			if !a.IsMapped || a.Mapping == nil || a.Mapping.Concept != "Consulting" {
				t.Fatalf("account not re-tagged: %+v", a)
			}
		}
	}
	if !found {
		t.Fatal("account missing from worksheet")
	}

	// And the tree now includes the reclassified account under OPEX.
	var opexAccounts []string
	for _, c := range rep.Categories {
		if c.Name == mapping.CategoryOpex {
			opexAccounts = c.AccountNumbers
		}
	}
	if len(opexAccounts) != 2 {
		t.Fatalf("OPEX accounts: %v", opexAccounts)
	}
}

func TestDeleteSession(t *testing.T) {
	svc := newService()
	sess, _ := svc.Create(context.Background(), "x.csv", sampleEntries())
	if err := svc.Delete(context.Background(), sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), sess.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("session should be gone: %v", err)
	}
	if err := svc.Delete(context.Background(), uuid.Nil); !errors.Is(err, errs.ErrInvalid) {
		t.Fatalf("nil id: %v", err)
	}
}
