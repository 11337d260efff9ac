package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"politikcred/internal"
	"politikcred/internal/config"
)

// AssemblyAdapter pulls the active deputies from the Assemblée Nationale
// open-data repository. Several repository URLs are tried in order since
// the current-legislature export moves between releases.
type AssemblyAdapter struct {
	cfg     config.Config
	fetcher *Fetcher
	logger  *slog.Logger
}

func NewAssemblyAdapter(cfg config.Config, fetcher *Fetcher, logger *slog.Logger) *AssemblyAdapter {
	return &AssemblyAdapter{cfg: cfg, fetcher: fetcher, logger: logger}
}

func (a *AssemblyAdapter) ID() internal.SourceID {
	return internal.SourceAssembly
}

func (a *AssemblyAdapter) Fetch(ctx context.Context) ([]internal.RawRecord, error) {
	var payload map[string]any
	fetched := false
	for _, u := range a.cfg.AssemblyURLs {
		blob, err := a.fetcher.Get(ctx, u)
		if err != nil {
			a.logger.Warn("assembly url failed", "url", u, "error", err)
			continue
		}
		if err := json.Unmarshal(blob, &payload); err != nil {
			a.logger.Warn("assembly payload not parseable", "url", u, "error", err)
			continue
		}
		fetched = true
		break
	}
	if !fetched {
		return nil, errors.New("no assembly url succeeded")
	}

	acteurs := asSlice(dig(payload, "export", "acteurs", "acteur"))
	records := make([]internal.RawRecord, 0, len(acteurs))
	for _, raw := range acteurs {
		acteur, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, acteurToRecord(acteur))
	}

	return records, nil
}

func acteurToRecord(acteur map[string]any) internal.RawRecord {
	etatCivil := asMap(acteur["etatCivil"])
	mandat := firstMandat(asMap(acteur["mandats"]))

	gender := "F"
	if str(etatCivil, "civ") == "M." {
		gender = "M"
	}

	lieu := asMap(dig(mandat, "election", "lieu"))
	constituency := fmt.Sprintf("Circonscription %s - %s", str(lieu, "numCirconscription"), str(lieu, "departement"))

	return internal.RawRecord{
		"first_name":   str(etatCivil, "prenom"),
		"last_name":    str(etatCivil, "nom"),
		"party":        partyFromMandat(mandat),
		"position":     "Député",
		"constituency": constituency,
		"birth_date":   str(etatCivil, "dateNais"),
		"gender":       gender,
		"bio":          fmt.Sprintf("Député de la %se législature", str(mandat, "legislature")),
	}
}

// firstMandat unwraps mandats.mandat, which the export serializes as an
// object when there is one mandate and as an array otherwise.
func firstMandat(mandats map[string]any) map[string]any {
	switch v := mandats["mandat"].(type) {
	case map[string]any:
		return v
	case []any:
		if len(v) > 0 {
			return asMap(v[0])
		}
	}
	return map[string]any{}
}

// partyFromMandat finds the political-group organe (codeType GP) and
// returns its label; deputies without one are "Non inscrit".
func partyFromMandat(mandat map[string]any) string {
	organes := asMap(mandat["organes"])["organe"]

	var list []any
	switch v := organes.(type) {
	case map[string]any:
		list = []any{v}
	case []any:
		list = v
	}

	for _, raw := range list {
		organe := asMap(raw)
		if str(organe, "@codeType") == "GP" {
			if libelle := str(organe, "libelle"); libelle != "" {
				return libelle
			}
		}
	}

	return "Non inscrit"
}

func dig(m map[string]any, keys ...string) any {
	var current any = m
	for _, key := range keys {
		node, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = node[key]
	}
	return current
}

func asMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

func asSlice(v any) []any {
	s, ok := v.([]any)
	if !ok {
		return nil
	}
	return s
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
