// Package fec holds the domain types for FEC (Fichier des Écritures
// Comptables) ledger lines and the parsing rules applied to their raw
// string fields. Parsing never fails: malformed amounts degrade to zero
// and malformed dates yield an empty month key, per the tolerance the
// rest of the pipeline expects.
package fec

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountNumberWidth is the canonical width account numbers are padded to.
// French chart-of-accounts numbers are hierarchical by prefix; padding to a
// fixed width lets prefix matching work uniformly.
const AccountNumberWidth = 9

// Entry is one FEC ledger line as delivered by the upload layer. All fields
// are kept as raw strings; Debit and Credit may use a comma decimal
// separator. Entries sharing an EcritureNum form one journal entry.
type Entry struct {
	JournalCode  string `json:"journal_code,omitempty"`
	EcritureNum  string `json:"ecriture_num"`
	EcritureDate string `json:"ecriture_date"`
	CompteNum    string `json:"compte_num"`
	CompteLib    string `json:"compte_lib"`
	EcritureLib  string `json:"ecriture_lib,omitempty"`
	Debit        string `json:"debit"`
	Credit       string `json:"credit"`
}

// DebitAmount returns the parsed debit amount, zero when unparseable.
func (e Entry) DebitAmount() decimal.Decimal { return ParseAmount(e.Debit) }

// CreditAmount returns the parsed credit amount, zero when unparseable.
func (e Entry) CreditAmount() decimal.Decimal { return ParseAmount(e.Credit) }

// NetAmount is debit minus credit.
func (e Entry) NetAmount() decimal.Decimal {
	return ParseAmount(e.Debit).Sub(ParseAmount(e.Credit))
}

// MonthKey returns the "YYYY-MM" bucket for the entry's posting date.
func (e Entry) MonthKey() string { return MonthKey(e.EcritureDate) }

// ParseAmount converts a raw FEC amount string to a decimal. FEC exports
// commonly use a comma decimal separator; anything that still fails to
// parse is treated as zero rather than an error.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NormalizeAccountNumber right-pads a raw account number with '0' to
// AccountNumberWidth characters. Blank input normalizes to the empty
// string; input already at or beyond the width is returned unchanged, so
// normalization is idempotent.
func NormalizeAccountNumber(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if len(s) >= AccountNumberWidth {
		return s
	}
	return s + strings.Repeat("0", AccountNumberWidth-len(s))
}

// MonthKey derives "YYYY-MM" from the first six characters of a YYYYMMDD
// date string. Dates too short to carry a month yield an empty key and are
// excluded from monthly buckets by callers.
func MonthKey(date string) string {
	s := strings.TrimSpace(date)
	if len(s) < 6 {
		return ""
	}
	return s[:4] + "-" + s[4:6]
}
