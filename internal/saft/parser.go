// Package saft extracts the financial aggregates the compliance engine needs
// (turnover, balance-sheet total, company identification) from a SAF-T (PT)
// accounting export. Only the header and the general-ledger trial balance are
// read; invoices and movements are skipped.
package saft

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/atlantico-advisors/funding-cli/internal/model"
)

// Financials holds the extracted accounting aggregates for one fiscal year.
type Financials struct {
	CompanyName       string  `json:"company_name"`
	NIF               string  `json:"nif"`
	FiscalYear        int     `json:"fiscal_year"`
	Turnover          float64 `json:"turnover"`            // class 71/72 revenue, credit minus debit
	BalanceSheetTotal float64 `json:"balance_sheet_total"` // class 1-4 assets, debit minus credit
	AccountsRead      int     `json:"accounts_read"`
}

// header mirrors the SAF-T (PT) Header element.
type header struct {
	AuditFileVersion      string `xml:"AuditFileVersion"`
	CompanyName           string `xml:"CompanyName"`
	TaxRegistrationNumber string `xml:"TaxRegistrationNumber"`
	FiscalYear            int    `xml:"FiscalYear"`
}

// account mirrors a GeneralLedgerAccounts/Account element.
type account struct {
	AccountID            string  `xml:"AccountID"`
	AccountDescription   string  `xml:"AccountDescription"`
	ClosingDebitBalance  float64 `xml:"ClosingDebitBalance"`
	ClosingCreditBalance float64 `xml:"ClosingCreditBalance"`
	GroupingCategory     string  `xml:"GroupingCategory"`
}

// Parse streams a SAF-T (PT) document and computes the financial aggregates.
// SAF-T exports are frequently Windows-1252 encoded, so the decoder accepts
// any charset the HTML index knows.
func Parse(r io.Reader) (*Financials, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "saft: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	fin := &Financials{}
	sawHeader := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "saft: read token")
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "Header":
			var h header
			if err := decoder.DecodeElement(&h, &se); err != nil {
				return nil, eris.Wrap(err, "saft: decode header")
			}
			fin.CompanyName = h.CompanyName
			fin.NIF = h.TaxRegistrationNumber
			fin.FiscalYear = h.FiscalYear
			sawHeader = true

		case "Account":
			var a account
			if err := decoder.DecodeElement(&a, &se); err != nil {
				return nil, eris.Wrap(err, "saft: decode account")
			}
			applyAccount(fin, a)

		case "SourceDocuments":
			// Trial balance is complete before the documents section; no
			// need to walk invoices and payments.
			if err := decoder.Skip(); err != nil {
				return nil, eris.Wrap(err, "saft: skip source documents")
			}
		}
	}

	if !sawHeader {
		return nil, eris.New("saft: no Header element found")
	}

	return fin, nil
}

// applyAccount accumulates one trial-balance row. Only movement accounts
// ("GM") contribute, so aggregate rows are not double counted.
func applyAccount(fin *Financials, a account) {
	if a.GroupingCategory != "" && a.GroupingCategory != "GM" {
		return
	}
	fin.AccountsRead++

	switch {
	case strings.HasPrefix(a.AccountID, "71"), strings.HasPrefix(a.AccountID, "72"):
		fin.Turnover += a.ClosingCreditBalance - a.ClosingDebitBalance
	case hasClassPrefix(a.AccountID, "1", "2", "3", "4"):
		fin.BalanceSheetTotal += a.ClosingDebitBalance - a.ClosingCreditBalance
	}
}

func hasClassPrefix(id string, classes ...string) bool {
	for _, c := range classes {
		if strings.HasPrefix(id, c) {
			return true
		}
	}
	return false
}

// MergeInto fills a CompanyInfo's accounting fields from the extracted
// financials, leaving already-populated fields untouched.
func (f *Financials) MergeInto(c *model.CompanyInfo) {
	if c.NIF == "" {
		c.NIF = f.NIF
	}
	if c.AnnualTurnover == 0 {
		c.AnnualTurnover = f.Turnover
	}
	if c.BalanceSheetTotal == 0 {
		c.BalanceSheetTotal = f.BalanceSheetTotal
	}
}
