package bridge

// The tool-facing argument structs. Every field is present in the
// schema; optionality is expressed through in-band sentinels so that
// callers whose schema generation only handles required fields stay
// compatible. PageSentinel for integers, the empty string for strings,
// the empty array for lists. The normalizer converts sentinels into true
// absence before anything reaches the archive client.

// PageSentinel marks an unspecified pagination value.
const PageSentinel int64 = -1

type listAccessionsArgs struct {
	Page                            int64    `json:"page"`
	PerPage                         int64    `json:"per_page"`
	Lang                            string   `json:"lang"`
	MetadataSubjects                []string `json:"metadata_subjects"`
	MetadataSubjectsInclusiveFilter bool     `json:"metadata_subjects_inclusive_filter"`
	QueryTerm                       string   `json:"query_term"`
	URLFilter                       string   `json:"url_filter"`
	DateFrom                        string   `json:"date_from"`
	DateTo                          string   `json:"date_to"`
}

// defaultListAccessionsArgs seeds the sentinels so that arguments a
// caller omits entirely still read as "unspecified" after binding.
func defaultListAccessionsArgs() listAccessionsArgs {
	return listAccessionsArgs{Page: PageSentinel, PerPage: PageSentinel}
}

type listSubjectsArgs struct {
	Page    int64 `json:"page"`
	PerPage int64 `json:"per_page"`
}

func defaultListSubjectsArgs() listSubjectsArgs {
	return listSubjectsArgs{Page: PageSentinel, PerPage: PageSentinel}
}

type idArgs struct {
	ID string `json:"id"`
}

type updateAccessionArgs struct {
	ID               string   `json:"id"`
	Visibility       string   `json:"visibility"`
	Title            string   `json:"metadata_title"`
	Description      string   `json:"metadata_description"`
	Time             string   `json:"metadata_time"`
	Lang             string   `json:"metadata_language"`
	MetadataSubjects []string `json:"metadata_subjects"`
}

type createSubjectArgs struct {
	Label      string `json:"label"`
	Visibility string `json:"visibility"`
}
