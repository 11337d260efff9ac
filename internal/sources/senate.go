package sources

import (
	"context"
	"fmt"
	"strings"

	"politikcred/internal"
	"politikcred/internal/config"
	"politikcred/internal/util"
)

// SenateAdapter reads the Sénat ODSEN_GENERAL export. The CSV lists every
// senator past and present; only rows without an end-of-mandate date are
// still in office.
type SenateAdapter struct {
	cfg     config.Config
	fetcher *Fetcher
}

func NewSenateAdapter(cfg config.Config, fetcher *Fetcher) *SenateAdapter {
	return &SenateAdapter{cfg: cfg, fetcher: fetcher}
}

func (a *SenateAdapter) ID() internal.SourceID {
	return internal.SourceSenate
}

func (a *SenateAdapter) Fetch(ctx context.Context) ([]internal.RawRecord, error) {
	blob, err := a.fetcher.Get(ctx, a.cfg.SenateCSVURL)
	if err != nil {
		return nil, fmt.Errorf("senate fetch: %w", err)
	}

	rows, err := readSemicolonCSV(blob)
	if err != nil {
		return nil, fmt.Errorf("senate csv: %w", err)
	}

	records := make([]internal.RawRecord, 0, len(rows))
	for _, row := range rows {
		if strings.TrimSpace(row["Date de fin de mandat"]) != "" {
			continue
		}

		lastName := util.FirstNonEmpty(row["Nom usage"], row["Nom"])
		gender := "F"
		if row["Civilité"] == "M." {
			gender = "M"
		}

		records = append(records, internal.RawRecord{
			"first_name":   row["Prénom"],
			"last_name":    lastName,
			"party":        row["Groupe politique"],
			"position":     "Sénateur",
			"constituency": row["Département"],
			"birth_date":   row["Date de naissance"],
			"gender":       gender,
			"bio":          fmt.Sprintf("Sénateur élu en %s", row["Début de mandat"]),
		})
	}

	return records, nil
}
