package internal

// SourceID names one upstream origin. The declared order of the four
// sources is the dedup priority order: an entity fetched from an earlier
// source wins over a later duplicate.
type SourceID string

const (
	SourceAssembly   SourceID = "assembly"
	SourceSenate     SourceID = "senate"
	SourceGovernment SourceID = "government"
	SourceMunicipal  SourceID = "municipal"
)

// RawRecord is one source-specific row as the adapter produced it. Keys
// are whatever the upstream format uses; the normalizer owns turning this
// into a PoliticalEntity and the record is discarded afterwards.
type RawRecord map[string]any

type Orientation string

const (
	OrientationLeft        Orientation = "left"
	OrientationCenterLeft  Orientation = "center-left"
	OrientationCenter      Orientation = "center"
	OrientationCenterRight Orientation = "center-right"
	OrientationRight       Orientation = "right"
)

type CredibilityTier string

const (
	TierHigh   CredibilityTier = "high"
	TierMedium CredibilityTier = "medium"
	TierLow    CredibilityTier = "low"
)

// PoliticalEntity is the canonical officeholder record. Identity and
// classification fields are set once by the normalizer; derived fields are
// filled in by the classifier and styler; nothing mutates it after dedup.
type PoliticalEntity struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Party        string  `json:"party"`
	Position     string  `json:"position"`
	Constituency string  `json:"constituency"`
	BirthDate    *string `json:"birth_date"`
	Gender       *string `json:"gender"`
	Bio          string  `json:"bio"`

	PoliticalOrientation Orientation     `json:"political_orientation"`
	CredibilityScore     int             `json:"credibility_score"`
	CredibilityTier      CredibilityTier `json:"credibility_tier"`
	CredibilityBadge     string          `json:"credibility_badge"`
	CredibilityLabel     string          `json:"credibility_label"`
	CartoonExpression    string          `json:"cartoon_expression"`
	CardColor            string          `json:"card_color"`
	Highlight            bool            `json:"highlight"`
	Crown                string          `json:"crown"`

	AvatarURL    *string `json:"avatar_url"`
	AnimationURL *string `json:"animation_url"`

	VerificationStatus string `json:"verification_status"`
	IsActive           bool   `json:"is_active"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`

	Source SourceID `json:"-"`
}

// AssetLinks is what the asset registry returns for one known face.
type AssetLinks struct {
	AvatarURL    *string `json:"avatar_url"`
	AnimationURL *string `json:"animation_url"`
}

// FailedRecord describes one entity that could not be persisted even in
// the per-record fallback pass.
type FailedRecord struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Error  string `json:"error"`
}

// RunSummary is what a populate run hands back to the caller. Every
// non-fatal failure along the way is folded into these counters.
type RunSummary struct {
	TotalFetched    int            `json:"total_fetched"`
	TotalAfterDedup int            `json:"total_after_dedup"`
	TotalInserted   int            `json:"total_inserted"`
	FailedRecords   []FailedRecord `json:"failed_records"`
}

// SnapshotRow is one row of the local sqlite mirror of the last persisted
// set, used for offline reporting.
type SnapshotRow struct {
	Key          string
	Entity       PoliticalEntity
	InsertStatus string
	RawJSON      string
}

// RunRow is one recorded pipeline run in the local audit table.
type RunRow struct {
	ID          int
	TraceID     string
	TimingsJSON string
	CountsJSON  string
	CreatedAt   string
}
