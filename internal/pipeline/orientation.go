package pipeline

import (
	"strings"

	"politikcred/internal"
)

type orientationRule struct {
	keyword     string
	orientation internal.Orientation
}

// orientationRules is probed in order and the first substring hit wins.
// The order is load-bearing: "lr" is nested inside longer labels, so the
// full party names must be tested before the short abbreviations.
var orientationRules = []orientationRule{
	{"la france insoumise", internal.OrientationLeft},
	{"parti socialiste", internal.OrientationCenterLeft},
	{"europe ecologie", internal.OrientationCenterLeft},
	{"renaissance", internal.OrientationCenter},
	{"modem", internal.OrientationCenter},
	{"agir", internal.OrientationCenter},
	{"les republicains", internal.OrientationCenterRight},
	{"lr", internal.OrientationCenterRight},
	{"rassemblement national", internal.OrientationRight},
	{"reconquete", internal.OrientationRight},
}

// Party labels arrive both accented and plain ("Les Républicains" from the
// government roster, "LR" from the RNE nuance column); the keyword table is
// unaccented, so fold before probing.
var accentFolder = strings.NewReplacer(
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"à", "a", "â", "a",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c", "œ", "oe",
)

// ClassifyOrientation maps a free-text party label to one of the five
// orientation buckets. Total: empty or unknown labels land on center.
func ClassifyOrientation(party string) internal.Orientation {
	if strings.TrimSpace(party) == "" {
		return internal.OrientationCenter
	}

	lower := accentFolder.Replace(strings.ToLower(party))
	for _, rule := range orientationRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.orientation
		}
	}

	return internal.OrientationCenter
}
