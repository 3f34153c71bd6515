package archive

// Language is the metadata language filter accepted by the archive API.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageArabic  Language = "arabic"
)

// Visibility is the public/private scope of a subject or accession patch.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// CrawlStatus is the archive's status for a captured accession.
type CrawlStatus string

const (
	CrawlBadCrawl CrawlStatus = "BadCrawl"
	CrawlComplete CrawlStatus = "Complete"
	CrawlError    CrawlStatus = "Error"
	CrawlPending  CrawlStatus = "Pending"
)

// Accession is a single archival record as returned by the archive API.
// The bridge holds request-scoped copies only; the remote service owns
// the persistent state.
type Accession struct {
	ID             string      `json:"id"`
	IsPrivate      bool        `json:"is_private"`
	CrawlStatus    CrawlStatus `json:"crawl_status"`
	CrawlTimestamp string      `json:"crawl_timestamp"`
	SeedURL        string      `json:"seed_url"`
	MetadataDate   string      `json:"dublin_metadata_date"`
	MetadataFormat string      `json:"dublin_metadata_format"`

	HasEnglishMetadata bool `json:"has_english_metadata"`
	HasArabicMetadata  bool `json:"has_arabic_metadata"`

	TitleEN         *string  `json:"title_en,omitempty"`
	TitleAR         *string  `json:"title_ar,omitempty"`
	DescriptionEN   *string  `json:"description_en,omitempty"`
	DescriptionAR   *string  `json:"description_ar,omitempty"`
	SubjectsEN      []string `json:"subjects_en,omitempty"`
	SubjectsENIDs   []string `json:"subjects_en_ids,omitempty"`
	SubjectsAR      []string `json:"subjects_ar,omitempty"`
	SubjectsARIDs   []string `json:"subjects_ar_ids,omitempty"`
}

// AccessionDetail is a single accession plus the download URL for its
// WACZ capture.
type AccessionDetail struct {
	Accession Accession `json:"accession"`
	WaczURL   string    `json:"wacz_url"`
}

// AccessionPage is one page of accession list results.
type AccessionPage struct {
	Items    []Accession `json:"items"`
	NumPages int64       `json:"num_pages"`
	Page     int64       `json:"page"`
	PerPage  int64       `json:"per_page"`
}

// Subject is a classification tag attachable to accessions.
type Subject struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Visibility Visibility `json:"visibility"`
}

// SubjectPage is one page of subject list results.
type SubjectPage struct {
	Items    []Subject `json:"items"`
	NumPages int64     `json:"num_pages"`
	Page     int64     `json:"page"`
	PerPage  int64     `json:"per_page"`
}

// AccessionListQuery is a fully-normalized accession listing request.
// Nil/empty fields are omitted from the outbound query string entirely;
// no sentinel values appear at this layer.
type AccessionListQuery struct {
	Page              *int64
	PerPage           *int64
	Lang              *Language
	Subjects          []string
	SubjectsInclusive bool
	QueryTerm         string
	URLFilter         string
	DateFrom          string
	DateTo            string
}

// SubjectListQuery is a fully-normalized subject listing request.
type SubjectListQuery struct {
	Page    *int64
	PerPage *int64
}

// AccessionPatch carries only the accession fields the caller specified.
// Unset fields are omitted from the PUT body rather than sent with
// placeholder values.
type AccessionPatch struct {
	Visibility  *Visibility `json:"visibility,omitempty"`
	Title       *string     `json:"metadata_title,omitempty"`
	Description *string     `json:"metadata_description,omitempty"`
	Time        *string     `json:"metadata_time,omitempty"`
	Language    *Language   `json:"metadata_language,omitempty"`
	Subjects    []string    `json:"metadata_subjects,omitempty"`
}

// IsEmpty reports whether the patch specifies no fields at all.
func (p AccessionPatch) IsEmpty() bool {
	return p.Visibility == nil && p.Title == nil && p.Description == nil &&
		p.Time == nil && p.Language == nil && len(p.Subjects) == 0
}

// SubjectInput is the request body for creating a subject.
type SubjectInput struct {
	Label      string     `json:"label"`
	Visibility Visibility `json:"visibility"`
}
