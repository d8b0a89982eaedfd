package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"musicmanager/model"
)

func doRequest(t *testing.T, h *APIHandler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	h.Router().ServeHTTP(rr, req)
	return rr
}

func decodeProject(t *testing.T, rr *httptest.ResponseRecorder) model.Project {
	t.Helper()
	var p model.Project
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode project: %v (body %s)", err, rr.Body.String())
	}
	return p
}

func TestCreateProjectAssignsIDAndDefaults(t *testing.T) {
	h, _, _ := newTestHandler()

	rr := doRequest(t, h, http.MethodPost, "/api/projects",
		`{"project_name":"Demo","project_type":"Single"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	p := decodeProject(t, rr)
	if p.ID != 1 {
		t.Errorf("expected id 1, got %d", p.ID)
	}
	if p.Cover != testDefaultCover {
		t.Errorf("expected default cover, got %q", p.Cover)
	}
	if p.Songs == nil || len(p.Songs) != 0 {
		t.Errorf("expected empty song list, got %#v", p.Songs)
	}

	// The wire payload must carry project_songs as [], not null.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode raw: %v", err)
	}
	if string(raw["project_songs"]) != "[]" {
		t.Errorf("project_songs serialized as %s, want []", raw["project_songs"])
	}
}

func TestCreateProjectSequentialIDs(t *testing.T) {
	h, _, _ := newTestHandler()

	for want := int64(1); want <= 3; want++ {
		rr := doRequest(t, h, http.MethodPost, "/api/projects",
			`{"project_name":"Demo","project_type":"Single"}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rr.Code)
		}
		if p := decodeProject(t, rr); p.ID != want {
			t.Errorf("expected id %d, got %d", want, p.ID)
		}
	}
}

func TestCreateProjectMissingRequiredField(t *testing.T) {
	h, _, _ := newTestHandler()

	rr := doRequest(t, h, http.MethodPost, "/api/projects", `{"project_type":"Single"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestListProjectsRoundTrip(t *testing.T) {
	h, _, _ := newTestHandler()

	doRequest(t, h, http.MethodPost, "/api/projects",
		`{"project_name":"Demo","project_type":"Album/EP","project_description":"first record"}`)

	rr := doRequest(t, h, http.MethodGet, "/api/projects", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var projects []model.Project
	if err := json.Unmarshal(rr.Body.Bytes(), &projects); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	got := projects[0]
	if got.ID != 1 || got.Name != "Demo" || got.Type != model.ProjectTypeAlbum || got.Description != "first record" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestUpdateProjectMergesPartialFields(t *testing.T) {
	h, _, _ := newTestHandler()

	doRequest(t, h, http.MethodPost, "/api/projects",
		`{"project_name":"Demo","project_type":"Single","project_description":"wip"}`)

	rr := doRequest(t, h, http.MethodPut, "/api/projects/1", `{"project_status":true}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	p := decodeProject(t, rr)
	if !p.Status {
		t.Errorf("status not updated")
	}
	if p.Name != "Demo" || p.Description != "wip" {
		t.Errorf("omitted fields changed: %+v", p)
	}
}

func TestUpdateProjectNoOpIsSuccess(t *testing.T) {
	h, _, _ := newTestHandler()

	doRequest(t, h, http.MethodPost, "/api/projects",
		`{"project_name":"Demo","project_type":"Single"}`)

	// An empty payload changes nothing but still succeeds against an
	// existing record.
	rr := doRequest(t, h, http.MethodPut, "/api/projects/1", `{}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for no-op update, got %d", rr.Code)
	}
}

func TestUpdateProjectNotFound(t *testing.T) {
	h, _, _ := newTestHandler()

	rr := doRequest(t, h, http.MethodPut, "/api/projects/42", `{"project_status":true}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestUpdateProjectNonNumericID(t *testing.T) {
	h, _, _ := newTestHandler()

	rr := doRequest(t, h, http.MethodPut, "/api/projects/abc", `{"project_status":true}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for malformed id, got %d", rr.Code)
	}
}

func TestDeleteProjectThenDeleteAgain(t *testing.T) {
	h, _, _ := newTestHandler()

	doRequest(t, h, http.MethodPost, "/api/projects",
		`{"project_name":"Demo","project_type":"Single"}`)

	rr := doRequest(t, h, http.MethodDelete, "/api/projects/1", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body on delete, got %q", rr.Body.String())
	}

	rr = doRequest(t, h, http.MethodDelete, "/api/projects/1", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rr.Code)
	}

	rr = doRequest(t, h, http.MethodPut, "/api/projects/1", `{"project_status":true}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 updating deleted project, got %d", rr.Code)
	}
}

func TestListProjectsStoreFailure(t *testing.T) {
	h, projectRepo, _ := newTestHandler()
	projectRepo.failWith = errTestStore

	rr := doRequest(t, h, http.MethodGet, "/api/projects", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload["error"] != "Internal Server Error" {
		t.Errorf("internal detail leaked to caller: %q", payload["error"])
	}
}
