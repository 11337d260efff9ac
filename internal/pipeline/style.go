package pipeline

import (
	"strings"

	"politikcred/internal"
	"politikcred/internal/util"
)

// AssetRegistry resolves a normalized full name to avatar/animation URLs.
// Absence is not an error; unknown faces simply stay unlinked.
type AssetRegistry interface {
	Lookup(normalizedName string) (internal.AssetLinks, bool)
}

const (
	colorLeft        = "#DC2626"
	colorCenterLeft  = "#059669"
	colorCenter      = "#1E3A8A"
	colorCenterRight = "#D97706"
	colorRight       = "#7C2D12"
)

var orientationColors = map[internal.Orientation]string{
	internal.OrientationLeft:        colorLeft,
	internal.OrientationCenterLeft:  colorCenterLeft,
	internal.OrientationCenter:      colorCenter,
	internal.OrientationCenterRight: colorCenterRight,
	internal.OrientationRight:       colorRight,
}

type roleStyle struct {
	keyword   string
	highlight bool
	crown     string
}

// roleStyles is probed in order against the lowercased position; first hit
// wins. "premier ministre" must come before any shorter ministre keyword.
var roleStyles = []roleStyle{
	{"premier ministre", true, "👑"},
	{"ministre d'état", true, "⭐"},
	{"député", false, "🗳️"},
	{"sénateur", false, "🏛️"},
	{"maire", false, "🏙️"},
}

const defaultCrown = "👤"

// Styler fills every derived presentation field on an entity. Pure and
// total: the same entity in always yields the same fields out.
type Styler struct {
	registry AssetRegistry
}

func NewStyler(registry AssetRegistry) *Styler {
	return &Styler{registry: registry}
}

func (s *Styler) Style(e *internal.PoliticalEntity) {
	tier, badge, label, expression := tierFor(e.CredibilityScore)
	e.CredibilityTier = tier
	e.CredibilityBadge = badge
	e.CredibilityLabel = label
	e.CartoonExpression = expression

	e.CardColor = CardColor(e.PoliticalOrientation)

	e.Highlight, e.Crown = roleEmphasis(e.Position)

	if s.registry != nil {
		if links, ok := s.registry.Lookup(util.NormalizeFullName(e.FirstName, e.LastName)); ok {
			e.AvatarURL = links.AvatarURL
			e.AnimationURL = links.AnimationURL
		}
	}
}

// tierFor maps a score to its tier and the matching badge, label and
// cartoon expression. Boundaries are closed on the high side: 80 is high,
// 60 is medium.
func tierFor(score int) (internal.CredibilityTier, string, string, string) {
	switch {
	case score >= 80:
		return internal.TierHigh, "🏆", "Il assure lauiss !", "confident"
	case score >= 60:
		return internal.TierMedium, "⚖️", "Moyen lauiss...", "neutral"
	default:
		return internal.TierLow, "⚠️", "Louche lauiss !", "skeptical"
	}
}

// CardColor resolves the fixed per-orientation card color; anything
// unknown gets the center color.
func CardColor(orientation internal.Orientation) string {
	if color, ok := orientationColors[orientation]; ok {
		return color
	}
	return colorCenter
}

func roleEmphasis(position string) (bool, string) {
	lower := strings.ToLower(position)
	for _, style := range roleStyles {
		if strings.Contains(lower, style.keyword) {
			return style.highlight, style.crown
		}
	}
	return false, defaultCrown
}
