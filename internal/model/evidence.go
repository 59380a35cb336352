package model

// MaxBundleSize caps the number of evidence records gathered for one claim
const MaxBundleSize = 6

// EvidenceRecord is one search hit used to ground a verification
type EvidenceRecord struct {
	Title   string     `json:"title"`
	Snippet string     `json:"snippet"`
	URL     string     `json:"url"`
	Kind    SourceKind `json:"kind"`
}

// SourceKind identifies which backend produced an evidence record
type SourceKind string

const (
	SourceEncyclopedia SourceKind = "encyclopedia" // Wikipedia search
	SourceWeb          SourceKind = "web"          // General web search
)

// Bundle is the ordered, capped set of evidence records for one claim.
// Encyclopedia records always precede web records.
type Bundle struct {
	Query   string           `json:"query"`
	Records []EvidenceRecord `json:"records"`
}

// NewBundle concatenates encyclopedia results before web results and
// truncates to MaxBundleSize
func NewBundle(query string, encyclopedia, web []EvidenceRecord) Bundle {
	records := make([]EvidenceRecord, 0, len(encyclopedia)+len(web))
	records = append(records, encyclopedia...)
	records = append(records, web...)
	if len(records) > MaxBundleSize {
		records = records[:MaxBundleSize]
	}
	return Bundle{Query: query, Records: records}
}

// Len returns the number of records in the bundle
func (b Bundle) Len() int {
	return len(b.Records)
}

// IsEmpty reports whether the bundle has no records
func (b Bundle) IsEmpty() bool {
	return len(b.Records) == 0
}

// CountKind returns the number of records of the given kind
func (b Bundle) CountKind(kind SourceKind) int {
	count := 0
	for _, r := range b.Records {
		if r.Kind == kind {
			count++
		}
	}
	return count
}

// Source is the display-ready form of an evidence record
type Source struct {
	Title     string        `json:"title"`
	URL       string        `json:"url"`
	Kind      SourceKind    `json:"kind"`
	Host      string        `json:"host,omitempty"`
	Authority AuthorityTier `json:"authority,omitempty"`
}

// AuthorityTier represents the classification of source authority
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Laws, statutes, academic papers, official documents
	TierSecondary AuthorityTier = 2 // Encyclopedias, major publishers, reputable media
	TierTertiary  AuthorityTier = 3 // Blogs, personal websites, everything else
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}
