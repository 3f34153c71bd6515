package archive

import (
	"net/url"
	"strconv"
)

// accessionQuery encodes a normalized accession listing into query
// parameters. Unset fields produce no entry at all; the archive API
// treats omission, not a placeholder value, as "unspecified".
func accessionQuery(q AccessionListQuery) url.Values {
	values := url.Values{}
	if q.Page != nil {
		values.Set("page", strconv.FormatInt(*q.Page, 10))
	}
	if q.PerPage != nil {
		values.Set("per_page", strconv.FormatInt(*q.PerPage, 10))
	}
	if q.Lang != nil {
		values.Set("lang", string(*q.Lang))
	}
	for _, id := range q.Subjects {
		values.Add("metadata_subjects", id)
	}
	if q.SubjectsInclusive {
		values.Set("metadata_subjects_inclusive_filter", "true")
	}
	if q.QueryTerm != "" {
		values.Set("query_term", q.QueryTerm)
	}
	if q.URLFilter != "" {
		values.Set("url_filter", q.URLFilter)
	}
	if q.DateFrom != "" {
		values.Set("date_from", q.DateFrom)
	}
	if q.DateTo != "" {
		values.Set("date_to", q.DateTo)
	}
	return values
}

func subjectQuery(q SubjectListQuery) url.Values {
	values := url.Values{}
	if q.Page != nil {
		values.Set("page", strconv.FormatInt(*q.Page, 10))
	}
	if q.PerPage != nil {
		values.Set("per_page", strconv.FormatInt(*q.PerPage, 10))
	}
	return values
}
