package pipeline

import (
	"strings"
	"time"

	"politikcred/internal"
	"politikcred/internal/util"
)

// defaultScores is the per-source baseline credibility: elected chambers
// rank above appointed and municipal offices. Government roster records
// carry their own preset score and never fall through to this table.
var defaultScores = map[internal.SourceID]int{
	internal.SourceAssembly:   100,
	internal.SourceSenate:     80,
	internal.SourceGovernment: 100,
	internal.SourceMunicipal:  70,
}

// Normalize turns one raw source record into the canonical entity shape.
// Missing keys become zero values rather than errors, and a record with no
// name components is still emitted so the dedup validity filter can count
// and drop it. String trimming happens here, exactly once.
func Normalize(source internal.SourceID, raw internal.RawRecord) internal.PoliticalEntity {
	now := time.Now().UTC().Format(time.RFC3339)

	e := internal.PoliticalEntity{
		FirstName:    asTrimmed(raw["first_name"]),
		LastName:     asTrimmed(raw["last_name"]),
		Party:        asTrimmed(raw["party"]),
		Position:     asTrimmed(raw["position"]),
		Constituency: asTrimmed(raw["constituency"]),
		Bio:          asTrimmed(raw["bio"]),

		VerificationStatus: "verified",
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,

		Source: source,
	}
	e.Name = util.FullName(e.FirstName, e.LastName)

	e.BirthDate = asStringPtr(raw["birth_date"])
	e.Gender = asStringPtr(raw["gender"])

	if score, ok := asInt(raw["credibility_score"]); ok {
		e.CredibilityScore = score
	} else {
		e.CredibilityScore = defaultScores[source]
	}

	// Roster records may already carry an orientation; anything else is
	// classified from the party label later.
	if o := asTrimmed(raw["political_orientation"]); o != "" {
		e.PoliticalOrientation = internal.Orientation(o)
	}

	return e
}

func asTrimmed(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asStringPtr(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return util.StringPtr(s)
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	default:
		return 0, false
	}
}
