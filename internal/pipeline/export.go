package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"politikcred/internal"
)

// ExportSnapshotToXLSX writes the last persisted set to a review
// spreadsheet, highest credibility first (the order ListSnapshot returns).
func ExportSnapshotToXLSX(rows []internal.SnapshotRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"key", "name", "position", "party", "constituency",
		"political_orientation", "credibility_score", "credibility_tier",
		"credibility_badge", "credibility_label", "card_color",
		"highlight", "crown", "avatar_url", "animation_url",
		"source", "insert_status",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		e := row.Entity
		set(1, row.Key)
		set(2, e.Name)
		set(3, e.Position)
		set(4, e.Party)
		set(5, e.Constituency)
		set(6, string(e.PoliticalOrientation))
		set(7, e.CredibilityScore)
		set(8, string(e.CredibilityTier))
		set(9, e.CredibilityBadge)
		set(10, e.CredibilityLabel)
		set(11, e.CardColor)
		set(12, e.Highlight)
		set(13, e.Crown)
		set(14, derefString(e.AvatarURL))
		set(15, derefString(e.AnimationURL))
		set(16, string(e.Source))
		set(17, row.InsertStatus)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
