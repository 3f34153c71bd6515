package archive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func int64Ptr(v int64) *int64 { return &v }

func TestListAccessionsBuildsQueryAndAuth(t *testing.T) {
	var gotPath, gotKey string
	var gotQuery map[string][]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(AccessionPage{Items: []Accession{}, Page: 2, PerPage: 10})
	}))
	defer ts.Close()

	lang := LanguageEnglish
	c := NewClient(ts.URL, "secret-key")
	page, err := c.ListAccessions(context.Background(), AccessionListQuery{
		Page:      int64Ptr(2),
		PerPage:   int64Ptr(10),
		Lang:      &lang,
		Subjects:  []string{"7", "9"},
		QueryTerm: "khartoum",
	})
	if err != nil {
		t.Fatalf("list accessions: %v", err)
	}
	if page.Page != 2 {
		t.Fatalf("want page 2, got %d", page.Page)
	}
	if gotPath != "/api/v1/accessions" {
		t.Fatalf("want path /api/v1/accessions, got %s", gotPath)
	}
	if gotKey != "secret-key" {
		t.Fatalf("want api key header, got %q", gotKey)
	}
	if got := gotQuery["page"]; len(got) != 1 || got[0] != "2" {
		t.Fatalf("want page=2, got %v", got)
	}
	if got := gotQuery["metadata_subjects"]; len(got) != 2 || got[0] != "7" || got[1] != "9" {
		t.Fatalf("want two metadata_subjects entries, got %v", got)
	}
	if got := gotQuery["query_term"]; len(got) != 1 || got[0] != "khartoum" {
		t.Fatalf("want query_term=khartoum, got %v", got)
	}
	if _, present := gotQuery["date_from"]; present {
		t.Fatal("unspecified date_from must be omitted from the query")
	}
}

func TestListAccessionsOmitsUnspecifiedPagination(t *testing.T) {
	var gotQuery map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(AccessionPage{})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	if _, err := c.ListAccessions(context.Background(), AccessionListQuery{}); err != nil {
		t.Fatalf("list accessions: %v", err)
	}
	if len(gotQuery) != 0 {
		t.Fatalf("want empty query string, got %v", gotQuery)
	}
}

func TestListPrivateAccessionsUsesPrivateEndpoint(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(AccessionPage{})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	if _, err := c.ListPrivateAccessions(context.Background(), AccessionListQuery{}); err != nil {
		t.Fatalf("list private accessions: %v", err)
	}
	if gotPath != "/api/v1/accessions/private" {
		t.Fatalf("want private endpoint, got %s", gotPath)
	}
}

func TestGetAccessionNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"accession not found"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	_, err := c.GetAccession(context.Background(), "abc")
	apiErr := AsError(err)
	if apiErr == nil {
		t.Fatalf("want *archive.Error, got %v", err)
	}
	if apiErr.Origin != OriginStatus {
		t.Fatalf("want status origin, got %s", apiErr.Origin)
	}
	if apiErr.StatusCode != 404 {
		t.Fatalf("want status 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "accession not found" {
		t.Fatalf("want message from body, got %q", apiErr.Message)
	}
}

func TestGetAccessionMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"accession": not json`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	_, err := c.GetAccession(context.Background(), "abc")
	apiErr := AsError(err)
	if apiErr == nil || apiErr.Origin != OriginDecode {
		t.Fatalf("want decode origin error, got %v", err)
	}
}

func TestTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	c := NewClient(ts.URL, "k")
	_, err := c.GetAccession(context.Background(), "abc")
	apiErr := AsError(err)
	if apiErr == nil || apiErr.Origin != OriginTransport {
		t.Fatalf("want transport origin error, got %v", err)
	}
}

func TestTimeoutIsTransportOrigin(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k", WithTimeout(20*time.Millisecond))
	_, err := c.GetAccession(context.Background(), "abc")
	apiErr := AsError(err)
	if apiErr == nil || apiErr.Origin != OriginTransport {
		t.Fatalf("want transport origin error on timeout, got %v", err)
	}
}

func TestCreateSubjectPostsExactBody(t *testing.T) {
	var calls int
	var gotMethod, gotPath string
	var gotBody map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotMethod = r.Method
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Subject{ID: "subj-42", Label: "Health", Visibility: VisibilityPublic})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	subject, err := c.CreateSubject(context.Background(), SubjectInput{Label: "Health", Visibility: VisibilityPublic})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	if calls != 1 {
		t.Fatalf("want exactly one request, got %d", calls)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/v1/metadata-subjects" {
		t.Fatalf("want POST /api/v1/metadata-subjects, got %s %s", gotMethod, gotPath)
	}
	if len(gotBody) != 2 || gotBody["label"] != "Health" || gotBody["visibility"] != "public" {
		t.Fatalf("want body {label, visibility}, got %v", gotBody)
	}
	if subject.ID != "subj-42" {
		t.Fatalf("want created id subj-42, got %q", subject.ID)
	}
}

func TestDeleteSubjectNotFoundIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"subject not found"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	err := c.DeleteSubject(context.Background(), "missing-id")
	apiErr := AsError(err)
	if apiErr == nil {
		t.Fatalf("want *archive.Error for remote 404, got %v", err)
	}
	if apiErr.Origin != OriginStatus || apiErr.StatusCode != 404 {
		t.Fatalf("want status origin 404, got origin=%s code=%d", apiErr.Origin, apiErr.StatusCode)
	}
}

func TestDeleteSubjectSuccess(t *testing.T) {
	var gotMethod, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	if err := c.DeleteSubject(context.Background(), "subj-7"); err != nil {
		t.Fatalf("delete subject: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/v1/metadata-subjects/subj-7" {
		t.Fatalf("want DELETE /api/v1/metadata-subjects/subj-7, got %s %s", gotMethod, gotPath)
	}
}

func TestUpdateAccessionSendsOnlySpecifiedFields(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		json.NewEncoder(w).Encode(AccessionDetail{Accession: Accession{ID: "acc-1"}})
	}))
	defer ts.Close()

	title := "New title"
	c := NewClient(ts.URL, "k")
	detail, err := c.UpdateAccession(context.Background(), "acc-1", AccessionPatch{Title: &title})
	if err != nil {
		t.Fatalf("update accession: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/v1/accessions/acc-1" {
		t.Fatalf("want PUT /api/v1/accessions/acc-1, got %s %s", gotMethod, gotPath)
	}
	if len(gotBody) != 1 {
		t.Fatalf("want only the specified patch field in the body, got %v", gotBody)
	}
	if gotBody["metadata_title"] != "New title" {
		t.Fatalf("want metadata_title in body, got %v", gotBody)
	}
	if detail.Accession.ID != "acc-1" {
		t.Fatalf("want updated accession back, got %+v", detail)
	}
}

func TestStatusMessageFallsBackToStatusLine(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	_, err := c.ListSubjects(context.Background(), SubjectListQuery{})
	apiErr := AsError(err)
	if apiErr == nil || apiErr.StatusCode != 502 {
		t.Fatalf("want 502 status error, got %v", err)
	}
	if apiErr.Message == "" {
		t.Fatal("want status-line fallback message, got empty")
	}
}
