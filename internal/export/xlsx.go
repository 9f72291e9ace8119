package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Estimate"

const headerFill = "D9E1F2"

// WriteWorkbook renders a document into an xlsx workbook: section titles in
// bold with a blank spacer row, header rows filled, all data cells bordered,
// monetary cells right-aligned.
func WriteWorkbook(doc *Document) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	styles := newStyleCache(f)
	rowIdx := 1

	for _, section := range doc.Sections {
		titleCell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetCellValue(sheetName, titleCell, section.Title); err != nil {
			f.Close()
			return nil, fmt.Errorf("write section title: %w", err)
		}
		titleStyle, err := styles.title()
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, titleCell, titleCell, titleStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("style section title: %w", err)
		}
		rowIdx++

		for _, row := range section.Rows {
			for col, cell := range row.Cells {
				name, _ := excelize.CoordinatesToCellName(col+1, rowIdx)
				if err := f.SetCellValue(sheetName, name, cell.Value); err != nil {
					f.Close()
					return nil, fmt.Errorf("write cell %s: %w", name, err)
				}
				styleID, err := styles.cell(cell, row.Header)
				if err != nil {
					f.Close()
					return nil, err
				}
				if err := f.SetCellStyle(sheetName, name, name, styleID); err != nil {
					f.Close()
					return nil, fmt.Errorf("style cell %s: %w", name, err)
				}
			}
			rowIdx++
		}

		// Spacer between sections.
		rowIdx++
	}

	if err := f.SetColWidth(sheetName, "A", "H", 18); err != nil {
		f.Close()
		return nil, fmt.Errorf("set column widths: %w", err)
	}

	return f, nil
}

// Write renders the document and streams the workbook to w.
func Write(doc *Document, w io.Writer) error {
	f, err := WriteWorkbook(doc)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// styleCache memoizes excelize style IDs per distinct cell appearance, since
// NewStyle registrations are global to the file.
type styleCache struct {
	f     *excelize.File
	cache map[styleKey]int
}

type styleKey struct {
	header bool
	money  bool
	bold   bool
	color  string
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, cache: make(map[styleKey]int)}
}

func (s *styleCache) title() (int, error) {
	key := styleKey{bold: true, color: "title"}
	if id, ok := s.cache[key]; ok {
		return id, nil
	}
	id, err := s.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})
	if err != nil {
		return 0, fmt.Errorf("register title style: %w", err)
	}
	s.cache[key] = id
	return id, nil
}

func (s *styleCache) cell(c Cell, header bool) (int, error) {
	key := styleKey{header: header, money: c.Money, bold: c.Bold, color: c.Color}
	if id, ok := s.cache[key]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Font:   &excelize.Font{Bold: c.Bold || header},
		Border: allBorders(),
	}
	if c.Color != "" {
		style.Font.Color = c.Color
	}
	if c.Money {
		style.Alignment = &excelize.Alignment{Horizontal: "right"}
	}
	if header {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}}
	}

	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("register cell style: %w", err)
	}
	s.cache[key] = id
	return id, nil
}

func allBorders() []excelize.Border {
	const gray = "999999"
	return []excelize.Border{
		{Type: "left", Color: gray, Style: 1},
		{Type: "right", Color: gray, Style: 1},
		{Type: "top", Color: gray, Style: 1},
		{Type: "bottom", Color: gray, Style: 1},
	}
}
