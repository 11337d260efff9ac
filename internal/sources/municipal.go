package sources

import (
	"context"
	"fmt"
	"strings"

	"politikcred/internal"
	"politikcred/internal/config"
)

// bigCities is the fixed population>50k shortlist the mayors source is
// filtered to; commune labels in the RNE are uppercase already.
var bigCities = map[string]struct{}{
	"PARIS": {}, "MARSEILLE": {}, "LYON": {}, "TOULOUSE": {}, "NICE": {}, "NANTES": {},
	"MONTPELLIER": {}, "STRASBOURG": {}, "BORDEAUX": {}, "LILLE": {}, "RENNES": {},
	"REIMS": {}, "SAINT-ETIENNE": {}, "TOULON": {}, "LE HAVRE": {}, "GRENOBLE": {},
	"DIJON": {}, "ANGERS": {}, "NIMES": {}, "VILLEURBANNE": {}, "CLERMONT-FERRAND": {},
}

// MunicipalAdapter reads the RNE (Répertoire National des Élus) mayors
// export from data.gouv.fr and keeps the big-city mayors.
type MunicipalAdapter struct {
	cfg     config.Config
	fetcher *Fetcher
}

func NewMunicipalAdapter(cfg config.Config, fetcher *Fetcher) *MunicipalAdapter {
	return &MunicipalAdapter{cfg: cfg, fetcher: fetcher}
}

func (a *MunicipalAdapter) ID() internal.SourceID {
	return internal.SourceMunicipal
}

func (a *MunicipalAdapter) Fetch(ctx context.Context) ([]internal.RawRecord, error) {
	blob, err := a.fetcher.Get(ctx, a.cfg.MayorsCSVURL)
	if err != nil {
		return nil, fmt.Errorf("mayors fetch: %w", err)
	}

	rows, err := readSemicolonCSV(blob)
	if err != nil {
		return nil, fmt.Errorf("mayors csv: %w", err)
	}

	records := make([]internal.RawRecord, 0, len(bigCities))
	for _, row := range rows {
		commune := strings.TrimSpace(row["Libellé de la commune"])
		if _, ok := bigCities[strings.ToUpper(commune)]; !ok {
			continue
		}

		party := strings.TrimSpace(row["Libellé de la nuance"])
		if party == "" {
			party = "Non renseigné"
		}
		gender := "F"
		if row["Code sexe"] == "M" {
			gender = "M"
		}

		records = append(records, internal.RawRecord{
			"first_name":   row["Prénom"],
			"last_name":    row["Nom"],
			"party":        party,
			"position":     fmt.Sprintf("Maire de %s", commune),
			"constituency": commune,
			"birth_date":   row["Date de naissance"],
			"gender":       gender,
			"bio":          fmt.Sprintf("Maire de %s depuis %s", commune, row["Date de début du mandat"]),
		})
	}

	return records, nil
}
