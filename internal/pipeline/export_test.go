package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"politikcred/internal"
)

func TestExportSnapshotToXLSX(t *testing.T) {
	rows := []internal.SnapshotRow{
		{
			Key: "jean_dupont",
			Entity: internal.PoliticalEntity{
				Name:                 "Jean Dupont",
				Position:             "Député",
				Party:                "Renaissance",
				PoliticalOrientation: internal.OrientationCenter,
				CredibilityScore:     100,
				CredibilityTier:      internal.TierHigh,
				CredibilityBadge:     "🏆",
				CardColor:            "#1E3A8A",
				Crown:                "🗳️",
				Source:               internal.SourceAssembly,
			},
			InsertStatus: "inserted",
		},
	}

	path := filepath.Join(t.TempDir(), "out", "politicians.xlsx")
	if err := ExportSnapshotToXLSX(rows, path); err != nil {
		t.Fatalf("ExportSnapshotToXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	all, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("rows = %d want 2 (header + 1)", len(all))
	}
	if all[0][0] != "key" || all[0][16] != "insert_status" {
		t.Fatalf("header: %v", all[0])
	}
	if all[1][0] != "jean_dupont" || all[1][1] != "Jean Dupont" || all[1][6] != "100" {
		t.Fatalf("row: %v", all[1])
	}
}
