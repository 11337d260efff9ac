package util

import "testing"

func TestDedupKey(t *testing.T) {
	cases := []struct {
		first, last string
		want        string
	}{
		{"Jean", "Dupont", "jean_dupont"},
		{"JEAN", "DUPONT", "jean_dupont"},
		{"Marine", "Le Pen", "marine_le_pen"},
		{"Jean Marc", "Dupont", "jean_marc_dupont"},
		{"Hélène", "Martin", "hélène_martin"},
		{"", "", "_"},
		{"Jean", "", "jean_"},
	}

	for _, tc := range cases {
		if got := DedupKey(tc.first, tc.last); got != tc.want {
			t.Fatalf("DedupKey(%q, %q) = %q want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestDedupKeyAccentsNotFolded(t *testing.T) {
	if DedupKey("Hélène", "Martin") == DedupKey("Helene", "Martin") {
		t.Fatal("accented and unaccented spellings must keep distinct keys")
	}
}

func TestNormalizeFullName(t *testing.T) {
	cases := []struct {
		first, last string
		want        string
	}{
		{"Marine", "Le Pen", "marine le pen"},
		{"  Élisabeth ", " Borne", "élisabeth borne"},
		{"Jean   Marc", "Dupont", "jean marc dupont"},
		{"", "", ""},
	}

	for _, tc := range cases {
		if got := NormalizeFullName(tc.first, tc.last); got != tc.want {
			t.Fatalf("NormalizeFullName(%q, %q) = %q want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestFullName(t *testing.T) {
	if got := FullName(" Jean ", " Dupont "); got != "Jean Dupont" {
		t.Fatalf("got %q", got)
	}
	if got := FullName("", "Dupont"); got != "Dupont" {
		t.Fatalf("got %q", got)
	}
	if got := FullName("", ""); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "Nom", "Autre"); got != "Nom" {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonEmpty("", "   "); got != "" {
		t.Fatalf("got %q", got)
	}
}
