package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"politikcred/internal"
	"politikcred/internal/config"
)

type rosterEntry struct {
	firstName   string
	lastName    string
	party       string
	position    string
	orientation internal.Orientation
	score       int
}

// governmentRoster is the current cabinet composition with its preset
// credibility scores. Appointed officials are not covered by any open-data
// export, so the roster is maintained here and optionally refreshed from a
// composition page when GOVERNMENT_URL is set.
var governmentRoster = []rosterEntry{
	{"François", "Bayrou", "MoDem", "Premier ministre, chargé de la Planification écologique et énergétique", internal.OrientationCenter, 95},
	{"Élisabeth", "Borne", "Renaissance", "Ministre d'État, ministre de l'Éducation nationale, de l'Enseignement supérieur et de la Recherche", internal.OrientationCenter, 88},
	{"Manuel", "Valls", "Renaissance", "Ministre d'État, ministre des Outre-mer", internal.OrientationCenterLeft, 75},
	{"Gérald", "Darmanin", "Renaissance", "Ministre d'État, garde des sceaux, ministre de la Justice", internal.OrientationCenterRight, 70},
	{"Bruno", "Retailleau", "Les Républicains", "Ministre d'État, ministre de l'Intérieur", internal.OrientationCenterRight, 82},
	{"Catherine", "Vautrin", "Renaissance", "Ministre du Travail, de la Santé, des Solidarités et des Familles", internal.OrientationCenter, 85},
	{"Éric", "Lombard", "Divers gauche", "Ministre de l'Économie, des Finances et de la Souveraineté industrielle et numérique", internal.OrientationCenterLeft, 90},
	{"Sébastien", "Lecornu", "Renaissance", "Ministre des Armées", internal.OrientationCenter, 87},
	{"Rachida", "Dati", "Les Républicains", "Ministre de la Culture", internal.OrientationCenterRight, 78},
}

// GovernmentAdapter yields the cabinet members. With a composition page
// configured it scrapes the member table; otherwise, or when the scrape
// comes back unusable, it serves the embedded roster.
type GovernmentAdapter struct {
	cfg     config.Config
	fetcher *Fetcher
	logger  *slog.Logger
}

func NewGovernmentAdapter(cfg config.Config, fetcher *Fetcher, logger *slog.Logger) *GovernmentAdapter {
	return &GovernmentAdapter{cfg: cfg, fetcher: fetcher, logger: logger}
}

func (a *GovernmentAdapter) ID() internal.SourceID {
	return internal.SourceGovernment
}

func (a *GovernmentAdapter) Fetch(ctx context.Context) ([]internal.RawRecord, error) {
	if strings.TrimSpace(a.cfg.GovernmentURL) != "" {
		records, err := a.scrape(ctx)
		if err != nil {
			a.logger.Warn("government page scrape failed, using embedded roster", "url", a.cfg.GovernmentURL, "error", err)
		} else if len(records) > 0 {
			return records, nil
		}
	}

	records := make([]internal.RawRecord, 0, len(governmentRoster))
	for _, m := range governmentRoster {
		records = append(records, internal.RawRecord{
			"first_name":            m.firstName,
			"last_name":             m.lastName,
			"party":                 m.party,
			"position":              m.position,
			"constituency":          "",
			"bio":                   fmt.Sprintf("Membre du gouvernement Bayrou depuis décembre 2024 - %s", m.position),
			"political_orientation": string(m.orientation),
			"credibility_score":     m.score,
		})
	}
	return records, nil
}

// scrape parses a composition table: one member per row, name, party and
// portfolio in the first three cells.
func (a *GovernmentAdapter) scrape(ctx context.Context) ([]internal.RawRecord, error) {
	blob, err := a.fetcher.Get(ctx, a.cfg.GovernmentURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}

	var records []internal.RawRecord
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		name := strings.TrimSpace(cells.Eq(0).Text())
		party := strings.TrimSpace(cells.Eq(1).Text())
		position := strings.TrimSpace(cells.Eq(2).Text())
		if name == "" || position == "" {
			return
		}

		firstName, lastName := splitFullName(name)
		records = append(records, internal.RawRecord{
			"first_name":   firstName,
			"last_name":    lastName,
			"party":        party,
			"position":     position,
			"constituency": "",
			"bio":          fmt.Sprintf("Membre du gouvernement - %s", position),
		})
	})

	return records, nil
}

func splitFullName(name string) (string, string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return "", parts[0]
	}
	return parts[0], strings.Join(parts[1:], " ")
}
