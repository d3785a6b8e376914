package source

import (
	"fmt"

	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/graphicsstate"
	tabmodel "github.com/tsawler/tabula/model"
	"github.com/tsawler/tabula/pages"
	"github.com/tsawler/tabula/reader"
	"github.com/tsawler/tabula/tables"

	"github.com/cleared-dev/statements2csv/internal/model"
)

// PDF detects tables in PDF files.
type PDF struct {
	// MinRows and MinCols bound the tables reported. Zero keeps the
	// detector defaults.
	MinRows int
	MinCols int
}

// DetectTables reads every page of the PDF at path and returns the tables
// found with flavor's strategy.
func (p *PDF) DetectTables(path string, flavor Flavor) ([]model.RawTable, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	n, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}

	detector := tables.NewGeometricDetector()
	if err := detector.Configure(p.config(flavor)); err != nil {
		return nil, fmt.Errorf("configuring detector: %w", err)
	}

	var out []model.RawTable
	for i := 0; i < n; i++ {
		page, err := r.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i+1, err)
		}
		laid, err := layoutPage(r, page, flavor)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		found, err := detector.Detect(laid)
		if err != nil {
			return nil, fmt.Errorf("detecting tables on page %d: %w", i+1, err)
		}
		for _, t := range found {
			out = append(out, toRawTable(t))
		}
	}
	return out, nil
}

func (p *PDF) config(flavor Flavor) tables.Config {
	cfg := tables.DefaultConfig()
	switch flavor {
	case Network:
		cfg.UseLines = true
		cfg.UseWhitespace = false
	default:
		cfg.UseLines = false
		cfg.UseWhitespace = true
	}
	if p.MinRows > 0 {
		cfg.MinRows = p.MinRows
	}
	if p.MinCols > 0 {
		cfg.MinCols = p.MinCols
	}
	return cfg
}

// layoutPage collects the positioned text of page and, for Network, the
// lines and rectangles drawn on it.
func layoutPage(r *reader.Reader, page *pages.Page, flavor Flavor) (*tabmodel.Page, error) {
	width, err := page.Width()
	if err != nil {
		return nil, fmt.Errorf("reading page width: %w", err)
	}
	height, err := page.Height()
	if err != nil {
		return nil, fmt.Errorf("reading page height: %w", err)
	}
	laid := tabmodel.NewPage(width, height)

	fragments, err := r.ExtractTextFragments(page)
	if err != nil {
		return nil, fmt.Errorf("extracting text: %w", err)
	}
	for _, f := range fragments {
		laid.RawText = append(laid.RawText, tabmodel.TextFragment{
			Text:     f.Text,
			BBox:     tabmodel.BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
			FontSize: f.FontSize,
			FontName: f.FontName,
		})
	}

	if flavor != Network {
		return laid, nil
	}

	content, err := pageContent(page)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return laid, nil
	}
	gx := graphicsstate.NewGraphicsExtractor()
	if err := gx.ExtractFromBytes(content); err != nil {
		return nil, fmt.Errorf("extracting graphics: %w", err)
	}
	laid.RawLines = append(laid.RawLines, gx.ToModelLines()...)
	laid.RawLines = append(laid.RawLines, gx.ToModelRectangles()...)
	return laid, nil
}

// pageContent decodes and concatenates the content streams of page.
func pageContent(page *pages.Page) ([]byte, error) {
	contents, err := page.Contents()
	if err != nil {
		return nil, fmt.Errorf("reading contents: %w", err)
	}
	var data []byte
	for _, obj := range contents {
		stream, ok := obj.(*core.Stream)
		if !ok {
			continue
		}
		decoded, err := stream.Decode()
		if err != nil {
			return nil, fmt.Errorf("decoding content stream: %w", err)
		}
		data = append(data, decoded...)
	}
	return data, nil
}

func toRawTable(t *tabmodel.Table) model.RawTable {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = cell.Text
		}
	}
	return model.NewRawTable(rows)
}
