package pipeline

import (
	"testing"

	"politikcred/internal"
)

func TestClassifyOrientation(t *testing.T) {
	cases := []struct {
		name  string
		party string
		want  internal.Orientation
	}{
		{name: "insoumise", party: "La France Insoumise", want: internal.OrientationLeft},
		{name: "socialiste", party: "Parti Socialiste", want: internal.OrientationCenterLeft},
		{name: "ecologie", party: "Europe Écologie Les Verts", want: internal.OrientationCenterLeft},
		{name: "renaissance", party: "Renaissance", want: internal.OrientationCenter},
		{name: "modem", party: "MoDem", want: internal.OrientationCenter},
		{name: "republicains accented", party: "Les Républicains", want: internal.OrientationCenterRight},
		{name: "lr nuance code", party: "LR", want: internal.OrientationCenterRight},
		{name: "rn", party: "Rassemblement National", want: internal.OrientationRight},
		{name: "reconquete", party: "Reconquête", want: internal.OrientationRight},
		{name: "empty", party: "", want: internal.OrientationCenter},
		{name: "whitespace only", party: "   ", want: internal.OrientationCenter},
		{name: "unknown", party: "Union des Indépendants", want: internal.OrientationCenter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyOrientation(tc.party)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestClassifyOrientationTotal(t *testing.T) {
	valid := map[internal.Orientation]struct{}{
		internal.OrientationLeft:        {},
		internal.OrientationCenterLeft:  {},
		internal.OrientationCenter:      {},
		internal.OrientationCenterRight: {},
		internal.OrientationRight:       {},
	}

	inputs := []string{
		"", "???", "Groupe Socialiste, Écologiste et Républicain",
		"Union Centriste", "Non inscrit", "Divers gauche", "divers droite",
		"LA FRANCE INSOUMISE - NUPES", "lr-udi", "Horizons",
	}

	for _, in := range inputs {
		first := ClassifyOrientation(in)
		if _, ok := valid[first]; !ok {
			t.Fatalf("classify(%q) = %q, not one of the five orientations", in, first)
		}
		// Deterministic: same input, same output.
		if second := ClassifyOrientation(in); second != first {
			t.Fatalf("classify(%q) not deterministic: %q then %q", in, first, second)
		}
	}
}

func TestClassifyOrientationOrderMatters(t *testing.T) {
	// "les republicains" must win over the nested "lr" probe and land on
	// the same bucket regardless of which rule fires.
	if got := ClassifyOrientation("Liste Les Républicains"); got != internal.OrientationCenterRight {
		t.Fatalf("got %q", got)
	}
}
