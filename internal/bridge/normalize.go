package bridge

import (
	"strings"
	"time"

	"github.com/sudandigitalarchive/sda-mcp/internal/archive"
)

// The normalizer converts raw argument structs into validated client
// values, or rejects them before any HTTP call is made. Sentinels never
// leak past this boundary: an unspecified field becomes a nil pointer or
// empty slice, which the client omits from the outbound request.

func normalizePage(name string, v int64) (*int64, error) {
	if v == PageSentinel {
		return nil, nil
	}
	if v < 0 {
		return nil, validationErrorf("%s must be non-negative or %d for unspecified, got %d", name, PageSentinel, v)
	}
	return &v, nil
}

func normalizeLang(v string) (*archive.Language, error) {
	switch v {
	case "":
		return nil, nil
	case string(archive.LanguageEnglish), string(archive.LanguageArabic):
		lang := archive.Language(v)
		return &lang, nil
	default:
		return nil, validationErrorf("lang must be %q or %q, got %q", archive.LanguageEnglish, archive.LanguageArabic, v)
	}
}

func normalizeVisibility(v string) (*archive.Visibility, error) {
	switch v {
	case "":
		return nil, nil
	case string(archive.VisibilityPublic), string(archive.VisibilityPrivate):
		vis := archive.Visibility(v)
		return &vis, nil
	default:
		return nil, validationErrorf("visibility must be %q or %q, got %q", archive.VisibilityPublic, archive.VisibilityPrivate, v)
	}
}

func normalizeDate(name, v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", v); err != nil {
		return "", validationErrorf("%s must be a YYYY-MM-DD date, got %q", name, v)
	}
	return v, nil
}

func normalizeID(v string) (string, error) {
	id := strings.TrimSpace(v)
	if id == "" {
		return "", validationErrorf("id is required")
	}
	return id, nil
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func normalizeListAccessions(args listAccessionsArgs) (archive.AccessionListQuery, error) {
	var q archive.AccessionListQuery

	page, err := normalizePage("page", args.Page)
	if err != nil {
		return q, err
	}
	perPage, err := normalizePage("per_page", args.PerPage)
	if err != nil {
		return q, err
	}
	lang, err := normalizeLang(args.Lang)
	if err != nil {
		return q, err
	}
	dateFrom, err := normalizeDate("date_from", args.DateFrom)
	if err != nil {
		return q, err
	}
	dateTo, err := normalizeDate("date_to", args.DateTo)
	if err != nil {
		return q, err
	}
	for _, id := range args.MetadataSubjects {
		if strings.TrimSpace(id) == "" {
			return q, validationErrorf("metadata_subjects must not contain empty ids")
		}
	}

	q = archive.AccessionListQuery{
		Page:              page,
		PerPage:           perPage,
		Lang:              lang,
		Subjects:          args.MetadataSubjects,
		SubjectsInclusive: args.MetadataSubjectsInclusiveFilter,
		QueryTerm:         args.QueryTerm,
		URLFilter:         args.URLFilter,
		DateFrom:          dateFrom,
		DateTo:            dateTo,
	}
	return q, nil
}

func normalizeListSubjects(args listSubjectsArgs) (archive.SubjectListQuery, error) {
	var q archive.SubjectListQuery

	page, err := normalizePage("page", args.Page)
	if err != nil {
		return q, err
	}
	perPage, err := normalizePage("per_page", args.PerPage)
	if err != nil {
		return q, err
	}
	q = archive.SubjectListQuery{Page: page, PerPage: perPage}
	return q, nil
}

func normalizeUpdateAccession(args updateAccessionArgs) (string, archive.AccessionPatch, error) {
	var patch archive.AccessionPatch

	id, err := normalizeID(args.ID)
	if err != nil {
		return "", patch, err
	}
	vis, err := normalizeVisibility(args.Visibility)
	if err != nil {
		return "", patch, err
	}
	lang, err := normalizeLang(args.Lang)
	if err != nil {
		return "", patch, err
	}
	for _, sid := range args.MetadataSubjects {
		if strings.TrimSpace(sid) == "" {
			return "", patch, validationErrorf("metadata_subjects must not contain empty ids")
		}
	}

	patch = archive.AccessionPatch{
		Visibility:  vis,
		Title:       optionalString(args.Title),
		Description: optionalString(args.Description),
		Time:        optionalString(args.Time),
		Language:    lang,
		Subjects:    args.MetadataSubjects,
	}
	if patch.IsEmpty() {
		return "", archive.AccessionPatch{}, validationErrorf("update_accession requires at least one field to change")
	}
	return id, patch, nil
}

func normalizeCreateSubject(args createSubjectArgs) (archive.SubjectInput, error) {
	var in archive.SubjectInput

	label := strings.TrimSpace(args.Label)
	if label == "" {
		return in, validationErrorf("label is required")
	}
	vis, err := normalizeVisibility(args.Visibility)
	if err != nil {
		return in, err
	}
	in = archive.SubjectInput{Label: label, Visibility: archive.VisibilityPublic}
	if vis != nil {
		in.Visibility = *vis
	}
	return in, nil
}
