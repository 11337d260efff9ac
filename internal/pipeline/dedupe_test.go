package pipeline

import (
	"io"
	"log/slog"
	"testing"

	"politikcred/internal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func entity(source internal.SourceID, first, last, position string) internal.PoliticalEntity {
	return internal.PoliticalEntity{
		Source:    source,
		FirstName: first,
		LastName:  last,
		Name:      first + " " + last,
		Position:  position,
	}
}

func TestDedupeFirstSourceWins(t *testing.T) {
	in := []internal.PoliticalEntity{
		entity(internal.SourceAssembly, "Jean", "Dupont", "Député"),
		entity(internal.SourceSenate, "Jean", "Dupont", "Sénateur"),
	}

	out := Dedupe(in, discardLogger())
	if len(out) != 1 {
		t.Fatalf("len = %d want 1", len(out))
	}
	if out[0].Source != internal.SourceAssembly || out[0].Position != "Député" {
		t.Fatalf("wrong survivor: %+v", out[0])
	}
}

func TestDedupeCaseInsensitiveKey(t *testing.T) {
	in := []internal.PoliticalEntity{
		entity(internal.SourceAssembly, "Jean", "DUPONT", "Député"),
		entity(internal.SourceMunicipal, "jean", "Dupont", "Maire de Pau"),
	}

	out := Dedupe(in, discardLogger())
	if len(out) != 1 {
		t.Fatalf("len = %d want 1", len(out))
	}
}

func TestDedupeAccentsDistinguish(t *testing.T) {
	// Keys keep their accents, so "Helene" and "Hélène" are two people.
	in := []internal.PoliticalEntity{
		entity(internal.SourceAssembly, "Hélène", "Martin", "Député"),
		entity(internal.SourceSenate, "Helene", "Martin", "Sénateur"),
	}

	out := Dedupe(in, discardLogger())
	if len(out) != 2 {
		t.Fatalf("len = %d want 2", len(out))
	}
}

func TestDedupeDropsInvalid(t *testing.T) {
	noName := entity(internal.SourceAssembly, "Jean", "Dupont", "Député")
	noName.Name = ""

	in := []internal.PoliticalEntity{
		noName,
		entity(internal.SourceAssembly, "Anne", "Durand", ""),
		entity(internal.SourceAssembly, "", "", "Député"),
		entity(internal.SourceAssembly, "Paul", "Petit", "Député"),
	}

	out := Dedupe(in, discardLogger())
	if len(out) != 1 {
		t.Fatalf("len = %d want 1", len(out))
	}
	if out[0].LastName != "Petit" {
		t.Fatalf("wrong survivor: %+v", out[0])
	}
}

func TestDedupeKeepsDistinctKeys(t *testing.T) {
	in := []internal.PoliticalEntity{
		entity(internal.SourceAssembly, "Jean", "Dupont", "Député"),
		entity(internal.SourceAssembly, "Jean", "Durand", "Député"),
		entity(internal.SourceSenate, "Marie", "Dupont", "Sénateur"),
	}

	out := Dedupe(in, discardLogger())
	if len(out) != 3 {
		t.Fatalf("len = %d want 3", len(out))
	}
}
