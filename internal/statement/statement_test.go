package statement

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/statements2csv/internal/dates"
	"github.com/cleared-dev/statements2csv/internal/extractor"
	"github.com/cleared-dev/statements2csv/internal/model"
	"github.com/cleared-dev/statements2csv/internal/source"
)

type fakeSource struct {
	tables map[source.Flavor][]model.RawTable
	err    error
	calls  []source.Flavor
}

func (f *fakeSource) DetectTables(_ string, flavor source.Flavor) ([]model.RawTable, error) {
	f.calls = append(f.calls, flavor)
	if f.err != nil {
		return nil, f.err
	}
	return f.tables[flavor], nil
}

func newProcessor(src source.Source) *Processor {
	return &Processor{
		Source:   src,
		Registry: extractor.DefaultRegistry(),
		Resolver: &dates.Resolver{DefaultYear: func() int { return 2023 }},
		Policy:   DefaultPolicy(),
	}
}

// chaseTable returns a Chase layout table with n transactions.
func chaseTable(n int) model.RawTable {
	rows := [][]string{{"Date of Transaction", "Merchant Name or Transaction Description", "$ Amount"}}
	for i := 1; i <= n; i++ {
		rows = append(rows, []string{fmt.Sprintf("01/%02d", i), fmt.Sprintf("MERCHANT %d", i), fmt.Sprintf("%d.00", i)})
	}
	return model.NewRawTable(rows)
}

func wellsTable(n int) model.RawTable {
	rows := [][]string{{"Date", "Check Number", "Description", "Additions", "Subtractions", "Ending daily balance"}}
	for i := 1; i <= n; i++ {
		rows = append(rows, []string{fmt.Sprintf("3/%d", i), "", fmt.Sprintf("PAYEE %d", i), "", fmt.Sprintf("%d.00", i), ""})
	}
	return model.NewRawTable(rows)
}

var narrowBofA = model.NewRawTable([][]string{
	{"Date", "Date", "Description"},
	{"01/02", "01/03", "GROCERY"},
})

const (
	chasePath = "/statements/2021/chase/2021-01.pdf"
	wellsPath = "/statements/2021/wellsfargo/march.pdf"
)

func TestExtract_ExplicitFlavorOnly(t *testing.T) {
	src := &fakeSource{tables: map[source.Flavor][]model.RawTable{
		source.Network: {wellsTable(7)},
		source.Stream:  {wellsTable(3)},
	}}
	got, err := newProcessor(src).Extract(wellsPath, source.Network)
	require.NoError(t, err)

	assert.Equal(t, []source.Flavor{source.Network}, src.calls)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Len())
}

func TestExtract_PicksFlavorWithMostRows(t *testing.T) {
	src := &fakeSource{tables: map[source.Flavor][]model.RawTable{
		source.Stream:  {wellsTable(3)},
		source.Network: {wellsTable(7)},
	}}
	got, err := newProcessor(src).Extract(wellsPath, "")
	require.NoError(t, err)

	assert.Equal(t, []source.Flavor{source.Stream, source.Network}, src.calls)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Len())
	assert.Equal(t, 2021, got[0].Rows[0].Date.Year())
}

func TestExtract_TieKeepsFirstFlavor(t *testing.T) {
	stream := wellsTable(4)
	network := wellsTable(4)
	src := &fakeSource{tables: map[source.Flavor][]model.RawTable{
		source.Stream:  {stream},
		source.Network: {network, model.NewRawTable([][]string{{"not", "a", "statement"}})},
	}}
	got, err := newProcessor(src).Extract(wellsPath, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Len())
}

func TestExtract_DefaultPolicyTriesStreamOnly(t *testing.T) {
	src := &fakeSource{tables: map[source.Flavor][]model.RawTable{
		source.Stream: {chaseTable(2)},
	}}
	got, err := newProcessor(src).Extract(chasePath, "")
	require.NoError(t, err)

	assert.Equal(t, []source.Flavor{source.Stream}, src.calls)
	require.Len(t, got, 1)
	assert.Equal(t, "chase", got[0].Bank)
}

func TestExtract_DuplicateAndPartialTables(t *testing.T) {
	src := &fakeSource{tables: map[source.Flavor][]model.RawTable{
		source.Stream: {chaseTable(2), chaseTable(2), chaseTable(5), wellsTable(1)},
	}}
	got, err := newProcessor(src).Extract(chasePath, "")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Len())
	assert.Equal(t, "wellsfargo", got[1].Bank)
}

func TestExtract_StructureError(t *testing.T) {
	src := &fakeSource{tables: map[source.Flavor][]model.RawTable{
		source.Stream:  {narrowBofA},
		source.Network: {narrowBofA},
	}}
	_, err := newProcessor(src).Extract(wellsPath, "")

	var se *StructureError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, wellsPath, se.Path)

	var ve extractor.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "bankofamerica", ve.Extractor)
}

func TestExtract_ValidationErrorWithOtherTablesKept(t *testing.T) {
	src := &fakeSource{tables: map[source.Flavor][]model.RawTable{
		source.Stream: {narrowBofA, chaseTable(3)},
	}}
	got, err := newProcessor(src).Extract(chasePath, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Len())
}

func TestExtract_ValidationErrorInOneFlavorOnly(t *testing.T) {
	src := &fakeSource{tables: map[source.Flavor][]model.RawTable{
		source.Stream: {narrowBofA},
		source.Network: {model.NewRawTable([][]string{
			{"Summary", "Value"},
			{"Opening balance", "1,000.00"},
		})},
	}}
	got, err := newProcessor(src).Extract(wellsPath, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtract_BankOfAmericaWideTable(t *testing.T) {
	wide := model.NewRawTable([][]string{
		{"Date", "Date", "Description", "Reference", "Account", "Amount", "", "", "", "", "", ""},
		{"12/28", "12/29", "PAYMENT", "1", "2", "-20.00", "", "", "", "", "", ""},
		{"01/03", "01/04", "GROCERY", "3", "2", "45.10", "", "", "", "", "", ""},
	})
	src := &fakeSource{tables: map[source.Flavor][]model.RawTable{source.Stream: {wide}}}

	got, err := newProcessor(src).Extract("/statements/2021/bofa/jan.pdf", "")
	require.NoError(t, err)
	require.Len(t, got, 1)

	rows := got[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, 2020, rows[0].Date.Year())
	assert.Equal(t, "PAYMENT", rows[0].Description)
	assert.Equal(t, 2021, rows[1].Date.Year())
}

func TestExtract_YearErrorBeforeDetection(t *testing.T) {
	tests := []struct {
		path  string
		found int
	}{
		{"/statements/chase/jan.pdf", 0},
		{"/statements/2020/2021/jan.pdf", 2},
	}
	for _, tt := range tests {
		src := &fakeSource{}
		_, err := newProcessor(src).Extract(tt.path, "")

		var ye *YearError
		require.True(t, errors.As(err, &ye), tt.path)
		assert.Len(t, ye.Found, tt.found)
		assert.Empty(t, src.calls, "no detection for %s", tt.path)
	}
}

func TestExtract_SourceErrorPropagates(t *testing.T) {
	boom := errors.New("corrupt xref table")
	src := &fakeSource{err: boom}

	_, err := newProcessor(src).Extract(chasePath, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), chasePath)
	assert.Contains(t, err.Error(), "stream")
}

func TestExtract_NilRegistryAndLogger(t *testing.T) {
	src := &fakeSource{tables: map[source.Flavor][]model.RawTable{source.Stream: {chaseTable(1)}}}
	p := &Processor{Source: src}

	got, err := p.Extract(chasePath, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
}
