package extractor

import (
	"regexp"

	"github.com/cleared-dev/statements2csv/internal/model"
)

// AppleCard tables have a "Daily Cash" column next to the amount.
var AppleCard = Extractor{
	Name: "applecard",
	Match: func(raw model.RawTable) bool {
		for r := 0; r < raw.NumRows(); r++ {
			row := raw.Row(r)
			if containsFoldedTrimmed(row, "date") && containsFoldedTrimmed(row, "daily cash") {
				return true
			}
		}
		return false
	},
	Columns: fixedColumns(0, 1, 4),
}

// BankOfAmerica tables carry a transaction date and a posting date, both
// headed "Date".
var BankOfAmerica = Extractor{
	Name: "bankofamerica",
	Match: func(raw model.RawTable) bool {
		for r := 0; r < raw.NumRows(); r++ {
			if raw.Cell(r, 0) == "Date" && raw.Cell(r, 1) == "Date" {
				return true
			}
		}
		return false
	},
	Columns: fixedColumns(0, 2, 5),
}

// CapitalOne tables end with an amount column followed by a running balance.
var CapitalOne = Extractor{
	Name: "capitalone",
	Match: func(raw model.RawTable) bool {
		if raw.NumCols() < 2 {
			return false
		}
		return containsFolded(raw.Column(0), "date") &&
			containsFolded(raw.Column(-2), "amount") &&
			containsFolded(raw.Column(-1), "balance")
	},
	Columns: func(raw model.RawTable) map[int]string {
		cols := map[int]string{0: model.ColumnDate, 1: model.ColumnDescription}
		// Only the first header row decides.
		r := indexFolded(raw.Column(0), "date", false)
		if r < 0 {
			return cols
		}
		for c, cell := range raw.Row(r) {
			if cell == "AMOUNT" {
				cols[c] = model.ColumnAmount
				break
			}
		}
		return cols
	},
}

var chaseHeader = regexp.MustCompile(`Merchant\s+Name\s+or\s+Transaction\s+Description`)

// Chase tables are recognized by their narrative description header, which
// the detector may split across cells.
var Chase = Extractor{
	Name: "chase",
	Match: func(raw model.RawTable) bool {
		return chaseHeader.MatchString(raw.String())
	},
	Columns: fixedColumns(0, 1, 2),
}

// WellsFargo tables split the amount into additions and subtractions.
var WellsFargo = Extractor{
	Name: "wellsfargo",
	Match: func(raw model.RawTable) bool {
		if raw.NumCols() < 3 {
			return false
		}
		return containsFolded(raw.Column(-3), "additions") &&
			containsFolded(raw.Column(-2), "subtractions")
	},
	Columns: fixedColumns(0, 2, 4),
}

func fixedColumns(date, desc, amount int) func(model.RawTable) map[int]string {
	return func(model.RawTable) map[int]string {
		return map[int]string{
			date:   model.ColumnDate,
			desc:   model.ColumnDescription,
			amount: model.ColumnAmount,
		}
	}
}
