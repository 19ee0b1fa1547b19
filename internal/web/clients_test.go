package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"estateClientManagement/models"
)

func jsonReq(method, target, body string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func TestClientsAPI_RequiresUserSession(t *testing.T) {
	e := newTestEnv(t, "api_auth")

	for _, tc := range []struct{ method, target string }{
		{http.MethodGet, "/api/clients"},
		{http.MethodPost, "/api/clients"},
		{http.MethodPut, "/api/clients/1"},
		{http.MethodDelete, "/api/clients/1"},
		{http.MethodPost, "/api/clients/import"},
	} {
		w := e.do(jsonReq(tc.method, tc.target, "{}", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.target, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Unauthorized") {
			t.Fatalf("%s %s: unexpected body %s", tc.method, tc.target, w.Body.String())
		}
	}
}

func TestClientsAPI_CreateWithDefaults(t *testing.T) {
	e := newTestEnv(t, "api_create")
	cookie := e.userCookie(t, "alice")

	w := e.do(jsonReq(http.MethodPost, "/api/clients", `{"name":"Acme","block":"B"}`, cookie))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var dto models.ClientDTO
	if err := json.Unmarshal(w.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := strconv.ParseInt(dto.ID, 10, 64); err != nil {
		t.Fatalf("expected derived numeric-string id, got %q", dto.ID)
	}
	if dto.Name != "Acme" || dto.Block != "B" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if dto.Contact != "" || dto.Society != "" || dto.Price != "" || dto.Description != "" {
		t.Fatalf("unset fields must serialize empty: %+v", dto)
	}
}

func TestClientsAPI_CreateBlockDefaults(t *testing.T) {
	e := newTestEnv(t, "api_block")
	cookie := e.userCookie(t, "alice")

	// Absent block defaults to A
	w := e.do(jsonReq(http.MethodPost, "/api/clients", `{"id":"c1"}`, cookie))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var dto models.ClientDTO
	_ = json.Unmarshal(w.Body.Bytes(), &dto)
	if dto.Block != "A" {
		t.Fatalf("absent block must default to A, got %q", dto.Block)
	}

	// Explicitly empty block stores empty but serializes as A
	w = e.do(jsonReq(http.MethodPost, "/api/clients", `{"id":"c2","block":""}`, cookie))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	_ = json.Unmarshal(w.Body.Bytes(), &dto)
	if dto.Block != "A" {
		t.Fatalf("empty block must serialize as A, got %q", dto.Block)
	}
	stored, err := e.clients.GetByID(context.Background(), "c2")
	if err != nil || stored == nil || stored.Block != "" {
		t.Fatalf("explicit empty block must be stored empty: %v %+v", err, stored)
	}
}

func TestClientsAPI_CreateRejectsBadBody(t *testing.T) {
	e := newTestEnv(t, "api_badbody")
	cookie := e.userCookie(t, "alice")

	// `null` decodes into the payload struct without an error, so it has to
	// be rejected on shape, not on the unmarshal result
	for _, body := range []string{"", "not json", "[1,2]", "null"} {
		w := e.do(jsonReq(http.MethodPost, "/api/clients", body, cookie))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, w.Code)
		}
	}

	// Duplicate id is a validation failure too
	w := e.do(jsonReq(http.MethodPost, "/api/clients", `{"id":"dup"}`, cookie))
	if w.Code != http.StatusCreated {
		t.Fatalf("seed create: %d", w.Code)
	}
	w = e.do(jsonReq(http.MethodPost, "/api/clients", `{"id":"dup"}`, cookie))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate id: expected 400, got %d", w.Code)
	}
}

func TestClientsAPI_UpdateSemantics(t *testing.T) {
	e := newTestEnv(t, "api_update")
	cookie := e.userCookie(t, "alice")

	w := e.do(jsonReq(http.MethodPut, "/api/clients/123", `{"name":"x"}`, cookie))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing id: expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Client not found") {
		t.Fatalf("unexpected 404 body: %s", w.Body.String())
	}

	w = e.do(jsonReq(http.MethodPost, "/api/clients", `{"id":"123","name":"Acme","price":"100"}`, cookie))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}

	// Omitted fields keep their values; supplied empty strings clear
	w = e.do(jsonReq(http.MethodPut, "/api/clients/123", `{"price":"200"}`, cookie))
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	var dto models.ClientDTO
	_ = json.Unmarshal(w.Body.Bytes(), &dto)
	if dto.Name != "Acme" || dto.Price != "200" {
		t.Fatalf("partial update broken: %+v", dto)
	}

	w = e.do(jsonReq(http.MethodPut, "/api/clients/123", `{"name":""}`, cookie))
	_ = json.Unmarshal(w.Body.Bytes(), &dto)
	if dto.Name != "" || dto.Price != "200" {
		t.Fatalf("explicit clear broken: %+v", dto)
	}

	// Empty patch is a no-op
	w = e.do(jsonReq(http.MethodPut, "/api/clients/123", `{}`, cookie))
	if w.Code != http.StatusOK {
		t.Fatalf("empty patch: %d", w.Code)
	}
	_ = json.Unmarshal(w.Body.Bytes(), &dto)
	if dto.Price != "200" {
		t.Fatalf("empty patch changed the record: %+v", dto)
	}
}

func TestClientsAPI_DeleteFlow(t *testing.T) {
	e := newTestEnv(t, "api_delete")
	cookie := e.userCookie(t, "alice")

	w := e.do(jsonReq(http.MethodPost, "/api/clients", `{"id":"d1"}`, cookie))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d", w.Code)
	}
	w = e.do(jsonReq(http.MethodDelete, "/api/clients/d1", "", cookie))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Client deleted successfully") {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	w = e.do(jsonReq(http.MethodDelete, "/api/clients/d1", "", cookie))
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d", w.Code)
	}
}

func TestClientsAPI_ImportReplacesTable(t *testing.T) {
	e := newTestEnv(t, "api_import")
	cookie := e.userCookie(t, "alice")

	w := e.do(jsonReq(http.MethodPost, "/api/clients/import", `{"id":"x"}`, cookie))
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Expected array of clients") {
		t.Fatalf("non-array import: %d %s", w.Code, w.Body.String())
	}

	w = e.do(jsonReq(http.MethodPost, "/api/clients", `{"id":"old"}`, cookie))
	if w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}

	w = e.do(jsonReq(http.MethodPost, "/api/clients/import",
		`[{"id":"a","name":"A"},{"id":"b"},{"name":"derived"}]`, cookie))
	if w.Code != http.StatusOK {
		t.Fatalf("import: %d %s", w.Code, w.Body.String())
	}
	var res struct {
		Imported int `json:"imported"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Imported != 3 {
		t.Fatalf("expected imported=3, got %d", res.Imported)
	}

	w = e.do(jsonReq(http.MethodGet, "/api/clients", "", cookie))
	var list []models.ClientDTO
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected exactly the imported rows, got %d", len(list))
	}
	for _, dto := range list {
		if dto.ID == "old" {
			t.Fatalf("import must discard prior rows")
		}
	}
}

func TestClientsAPI_ImportRejectsNonArrayBodies(t *testing.T) {
	e := newTestEnv(t, "api_import_shape")
	cookie := e.userCookie(t, "alice")

	w := e.do(jsonReq(http.MethodPost, "/api/clients", `{"id":"keep"}`, cookie))
	if w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}

	// A null body decodes to a nil slice without an error; it must not reach
	// the replace and wipe the table
	for _, body := range []string{"null", "", "not json", `{"id":"x"}`, "42"} {
		w := e.do(jsonReq(http.MethodPost, "/api/clients/import", body, cookie))
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Expected array of clients") {
			t.Fatalf("body %q: expected 400, got %d %s", body, w.Code, w.Body.String())
		}
	}

	w = e.do(jsonReq(http.MethodGet, "/api/clients", "", cookie))
	var list []models.ClientDTO
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "keep" {
		t.Fatalf("rejected imports must leave the table untouched: %+v", list)
	}
}

func TestClientsAPI_ListNewestFirst(t *testing.T) {
	e := newTestEnv(t, "api_list")
	cookie := e.userCookie(t, "alice")

	for _, id := range []string{"one", "two", "three"} {
		w := e.do(jsonReq(http.MethodPost, "/api/clients", `{"id":"`+id+`"}`, cookie))
		if w.Code != http.StatusCreated {
			t.Fatalf("create %s: %d", id, w.Code)
		}
	}
	w := e.do(jsonReq(http.MethodGet, "/api/clients", "", cookie))
	var list []models.ClientDTO
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 3 || list[0].ID != "three" || list[2].ID != "one" {
		t.Fatalf("unexpected order: %+v", list)
	}
}
