package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsoler/apunte/internal/index"
	"github.com/jsoler/apunte/internal/notes"
	"github.com/jsoler/apunte/internal/store"
	"github.com/jsoler/apunte/internal/testutil"
)

// testEnv sets up a temp data directory, manager, index and router.
// An empty token means disabled auth.
func testEnv(t *testing.T, authToken string) (*notes.Manager, http.Handler) {
	t.Helper()

	p, err := store.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := notes.NewManager(p)
	db := testutil.TestDB(t)
	router := NewRouter(m, db, authToken != "", authToken)
	return m, router
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v\n%s", err, rec.Body.String())
	}
	return body
}

func TestListNotes(t *testing.T) {
	m, router := testEnv(t, "")

	if _, err := m.CreateNote("first", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := m.CreateNote("second", ""); err != nil {
		t.Fatal(err)
	}

	rec := doGet(t, router, "/notes")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total"].(float64) != 2 {
		t.Errorf("total = %v", body["total"])
	}
}

func TestListNotes_Limit(t *testing.T) {
	m, router := testEnv(t, "")

	for i := 0; i < 5; i++ {
		if _, err := m.CreateNote("n", ""); err != nil {
			t.Fatal(err)
		}
	}
	rec := doGet(t, router, "/notes?limit=2")
	body := decodeBody(t, rec)
	if body["total"].(float64) != 2 {
		t.Errorf("total = %v", body["total"])
	}
}

func TestGetNote(t *testing.T) {
	m, router := testEnv(t, "")

	note, err := m.CreateNote("findable", "")
	if err != nil {
		t.Fatal(err)
	}

	rec := doGet(t, router, "/notes/"+note.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["content"] != "findable" {
		t.Errorf("content = %v", body["content"])
	}

	rec = doGet(t, router, "/notes/missing1")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListRefinements(t *testing.T) {
	m, router := testEnv(t, "")

	note, _ := m.CreateNote("draft", "")
	if err := m.UpdateNote(note.ID, "final"); err != nil {
		t.Fatal(err)
	}

	rec := doGet(t, router, "/notes/"+note.ID+"/refinements")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total"].(float64) != 1 {
		t.Errorf("total = %v", body["total"])
	}
}

func TestListProjectNotes(t *testing.T) {
	m, router := testEnv(t, "")

	project, _ := m.CreateProject("Shed")
	if _, err := m.CreateNote("scoped", project.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := m.CreateNote("unfiled", ""); err != nil {
		t.Fatal(err)
	}

	rec := doGet(t, router, "/projects/"+project.ID+"/notes")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total"].(float64) != 1 {
		t.Errorf("total = %v", body["total"])
	}

	rec = doGet(t, router, "/projects/missing1/notes")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSearch(t *testing.T) {
	p, err := store.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := notes.NewManager(p)
	db := testutil.TestDB(t)
	router := NewRouter(m, db, false, "")

	note, err := m.CreateNote("the hidden waterfall", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Upsert(index.Record{ID: note.ID, Kind: "note", Content: note.Content, Created: note.Created}); err != nil {
		t.Fatal(err)
	}

	rec := doGet(t, router, "/search?q=waterfall")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["total"].(float64) != 1 {
		t.Errorf("total = %v", body["total"])
	}

	rec = doGet(t, router, "/search?q=nothinghere")
	body = decodeBody(t, rec)
	if body["total"].(float64) != 0 {
		t.Errorf("total = %v, want 0", body["total"])
	}

	rec = doGet(t, router, "/search")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing q status = %d, want 400", rec.Code)
	}
}

func TestSearch_WithoutIndex(t *testing.T) {
	p, err := store.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	router := NewRouter(notes.NewManager(p), nil, false, "")

	rec := doGet(t, router, "/search?q=x")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestAuth_TokenMode(t *testing.T) {
	_, router := testEnv(t, "sekrit")

	rec := doGet(t, router, "/notes")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token status = %d, want 200", rec.Code)
	}
}

func TestAuth_DisabledMode(t *testing.T) {
	_, router := testEnv(t, "")

	rec := doGet(t, router, "/projects")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
