package export

import (
	"bytes"
	"testing"

	"stima/internal/core"
)

func TestWriteWorkbookRoundTrip(t *testing.T) {
	agg, cfg := testAggregate()
	doc := BuildDocument(agg, cfg)

	f, err := WriteWorkbook(doc)
	if err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("empty sheet")
	}

	if rows[0][0] != "Summary" {
		t.Errorf("first row = %q, want Summary title", rows[0][0])
	}

	// The monthly revenue figure must appear exactly as the UI formats it.
	found := false
	for _, row := range rows {
		for _, cell := range row {
			if cell == core.FormatCurrency(agg.MonthlyRevenue) {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("formatted monthly revenue %q not found in sheet", core.FormatCurrency(agg.MonthlyRevenue))
	}
}

func TestWriteStreams(t *testing.T) {
	agg, cfg := testAggregate()
	doc := BuildDocument(agg, cfg)

	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("no bytes written")
	}
	// xlsx is a zip container.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Errorf("output does not look like an xlsx archive")
	}
}
