package menus

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fdg312/menu-board/internal/storage"
	"github.com/fdg312/menu-board/internal/userctx"
)

func newTestHandler(menusRepo *mockMenusRepo, plans *mockPlansRepo) *Handler {
	return NewHandler(NewService(menusRepo, plans, &captureLogger{}))
}

func TestHandleListUnassigned_Success(t *testing.T) {
	plans := &mockPlansRepo{plans: []storage.WeeklyPlanRow{
		{ID: "p1", PersonID: "u1", Meals: []byte(`{"tuesday":{"LUNCH":{"id":"m2","parts":[]}}}`)},
	}}
	handler := newTestHandler(seedMenus(), plans)

	req := httptest.NewRequest(http.MethodGet, "/v1/menus/unassigned?person_id=u1", nil)
	w := httptest.NewRecorder()
	handler.HandleListUnassigned(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp ListMenusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Menus) != 2 {
		t.Errorf("expected 2 menus, got %d", len(resp.Menus))
	}
}

func TestHandleList_PersonFromContext(t *testing.T) {
	handler := newTestHandler(seedMenus(), &mockPlansRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/menus", nil)
	req = req.WithContext(userctx.WithUserID(req.Context(), "u2"))
	w := httptest.NewRecorder()
	handler.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp ListMenusResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Menus) != 1 || resp.Menus[0].ID != "m9" {
		t.Errorf("expected only u2's menu, got %+v", resp.Menus)
	}
}

func TestHandleList_MissingPerson(t *testing.T) {
	handler := newTestHandler(seedMenus(), &mockPlansRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/menus", nil)
	w := httptest.NewRecorder()
	handler.HandleList(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleCreate_Success(t *testing.T) {
	handler := newTestHandler(&mockMenusRepo{}, &mockPlansRepo{})

	body := []byte(`{"name":"Eggs on toast","category":"breakfast","personId":"u1","ingredients":[{"id":"e","name":"Egg","carbs":0.5,"protein":6,"fat":5,"unit":"UNIT","weight":2},{"id":"b","name":"Bread","carbs":"49","weight":"60"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/menus", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp MenuResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Menu.ID == "" {
		t.Error("expected id")
	}
	if len(resp.Menu.Ingredients) != 2 || resp.Menu.Ingredients[1].Unit != UnitGram {
		t.Errorf("unexpected ingredients: %+v", resp.Menu.Ingredients)
	}
	if resp.Totals.Protein != 12 {
		t.Errorf("expected 12g protein, got %v", resp.Totals.Protein)
	}
}

func TestHandleCreate_InvalidPayload(t *testing.T) {
	handler := newTestHandler(&mockMenusRepo{}, &mockPlansRepo{})

	req := httptest.NewRequest(http.MethodPost, "/v1/menus", bytes.NewReader([]byte(`{"ingredients": "nope"`)))
	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleCreate_ValidationError(t *testing.T) {
	handler := newTestHandler(&mockMenusRepo{}, &mockPlansRepo{})

	req := httptest.NewRequest(http.MethodPost, "/v1/menus", bytes.NewReader([]byte(`{"name":"","category":"lunch","personId":"u1"}`)))
	w := httptest.NewRecorder()
	handler.HandleCreate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleUpdate_NotFound(t *testing.T) {
	handler := newTestHandler(&mockMenusRepo{}, &mockPlansRepo{})

	req := httptest.NewRequest(http.MethodPut, "/v1/menus/nope", bytes.NewReader([]byte(`{"name":"X","category":"lunch","personId":"u1"}`)))
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	handler.HandleUpdate(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestHandleDelete_NotFound(t *testing.T) {
	handler := newTestHandler(&mockMenusRepo{}, &mockPlansRepo{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/menus?id=ghost", nil)
	w := httptest.NewRecorder()
	handler.HandleDelete(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["error"] != "Menu with id ghost not found" {
		t.Errorf("unexpected error message: %q", resp["error"])
	}
}

func TestHandleDelete_Success(t *testing.T) {
	repo := seedMenus()
	handler := newTestHandler(repo, &mockPlansRepo{})

	req := httptest.NewRequest(http.MethodDelete, "/v1/menus?id=m1", nil)
	w := httptest.NewRecorder()
	handler.HandleDelete(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if len(repo.rows) != 3 {
		t.Errorf("expected 3 remaining menus, got %d", len(repo.rows))
	}
}
