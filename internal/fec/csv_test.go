package fec

import (
	"errors"
	"strings"
	"testing"

	"github.com/fecworks/fecreport/internal/errs"
)

const sampleSemicolon = `JournalCode;EcritureNum;EcritureDate;CompteNum;CompteLib;EcritureLib;Debit;Credit
AC;1;20250115;61352003;Licences logicielles;Abonnement;100,00;0,00
AC;1;20250115;40110000;Fournisseurs;Abonnement;0,00;100,00
`

func TestReadCSVSemicolon(t *testing.T) {
	entries, err := ReadCSV(strings.NewReader(sampleSemicolon))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	e := entries[0]
	if e.JournalCode != "AC" || e.EcritureNum != "1" || e.CompteNum != "61352003" {
		t.Fatalf("bad entry: %+v", e)
	}
	if e.Debit != "100,00" || e.Credit != "0,00" {
		t.Fatalf("amounts must stay raw: %+v", e)
	}
}

func TestReadCSVTabDelimited(t *testing.T) {
	src := "EcritureNum\tCompteNum\tDebit\tCredit\n1\t512000\t10\t0\n"
	entries, err := ReadCSV(strings.NewReader(src))
	if err != nil || len(entries) != 1 {
		t.Fatalf("tab-delimited read failed: %v %d", err, len(entries))
	}
	if entries[0].CompteNum != "512000" {
		t.Fatalf("bad entry: %+v", entries[0])
	}
}

func TestReadCSVHeaderNormalization(t *testing.T) {
	src := "\uFEFF ecritureNUM ; COMPTENUM ;debit; Credit \n1;601000;5;0\n"
	entries, err := ReadCSV(strings.NewReader(src))
	if err != nil || len(entries) != 1 {
		t.Fatalf("case/space/BOM-insensitive lookup failed: %v", err)
	}
	if entries[0].EcritureNum != "1" || entries[0].CompteNum != "601000" {
		t.Fatalf("bad entry: %+v", entries[0])
	}
}

func TestReadCSVMissingRequiredColumn(t *testing.T) {
	src := "EcritureNum;CompteNum;Credit\n1;601000;0\n"
	_, err := ReadCSV(strings.NewReader(src))
	if !errors.Is(err, errs.ErrMissingColumn) {
		t.Fatalf("missing Debit column must be rejected, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "Debit") {
		t.Fatalf("error should name the missing column: %v", err)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); !errors.Is(err, errs.ErrEmptyFile) {
		t.Fatalf("empty file: %v", err)
	}
	headerOnly := "EcritureNum;CompteNum;Debit;Credit\n"
	if _, err := ReadCSV(strings.NewReader(headerOnly)); !errors.Is(err, errs.ErrEmptyFile) {
		t.Fatalf("header-only file: %v", err)
	}
}

func TestReadCSVSkipsBlankLines(t *testing.T) {
	src := "EcritureNum;CompteNum;Debit;Credit\n1;601000;5;0\n;;;\n"
	entries, err := ReadCSV(strings.NewReader(src))
	if err != nil || len(entries) != 1 {
		t.Fatalf("blank line should be skipped: %v %d", err, len(entries))
	}
}
