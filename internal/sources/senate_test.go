package sources

import (
	"context"
	"net/http"
	"testing"

	"politikcred/internal/config"
)

const senateCSV = "Civilité;Nom usage;Nom;Prénom;Groupe politique;Département;Date de naissance;Début de mandat;Date de fin de mandat\n" +
	"M.;;Dupont;Jean;Les Républicains;Paris;1960-01-15;2020-10-01;\n" +
	"Mme;Martin-Durand;Martin;Anne;SER;Rhône;1972-06-03;2023-10-02;\n" +
	"M.;;Ancien;Paul;RDPI;Var;1950-02-20;2014-10-01;2020-09-30\n"

func TestSenateAdapterFetch(t *testing.T) {
	f := newTestFetcher(func(req *http.Request) (*http.Response, error) {
		return textResponse(200, senateCSV), nil
	})
	a := NewSenateAdapter(config.Config{SenateCSVURL: "https://data.senat.fr/ODSEN_GENERAL.csv"}, f)

	records, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// The former senator with an end-of-mandate date is skipped.
	if len(records) != 2 {
		t.Fatalf("records = %d want 2", len(records))
	}

	first := records[0]
	if first["first_name"] != "Jean" || first["last_name"] != "Dupont" {
		t.Fatalf("first record: %v", first)
	}
	if first["position"] != "Sénateur" || first["gender"] != "M" {
		t.Fatalf("first record: %v", first)
	}
	if first["party"] != "Les Républicains" || first["constituency"] != "Paris" {
		t.Fatalf("first record: %v", first)
	}

	// "Nom usage" beats "Nom" when present.
	second := records[1]
	if second["last_name"] != "Martin-Durand" || second["gender"] != "F" {
		t.Fatalf("second record: %v", second)
	}
}

func TestSenateAdapterFetchError(t *testing.T) {
	f := newTestFetcher(func(req *http.Request) (*http.Response, error) {
		return textResponse(404, "gone"), nil
	})
	a := NewSenateAdapter(config.Config{SenateCSVURL: "https://data.senat.fr/ODSEN_GENERAL.csv"}, f)

	if _, err := a.Fetch(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
