package resumes

import "time"

// File extensions for the two sibling files backing every ledger row.
const (
	DocExt  = ".docx"
	TextExt = ".txt"
)

// Variant selects which sibling file of an artifact to download.
type Variant string

const (
	VariantDocument    Variant = "document"
	VariantDescription Variant = "description"
)

// Ext returns the on-disk extension for the variant.
func (v Variant) Ext() string {
	if v == VariantDescription {
		return TextExt
	}
	return DocExt
}

// GeneratedResume is one ledger row: a rendered resume owned by a bidder,
// grouped into a per-day bucket. (OwnerID, Name) is unique across all of
// the owner's buckets. BucketDate is fixed at creation time.
type GeneratedResume struct {
	ID         string
	OwnerID    string
	BucketDate string // YYYY-MM-DD, the server's "today" at creation
	Name       string
	JDURL      string // opaque reference to the source job description
	CreatedAt  time.Time
}
