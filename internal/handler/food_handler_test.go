package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/foodshare/internal/middleware"
	"github.com/hitoshi/foodshare/internal/model"
)

// --- モック定義 ---

// mockFoodService はFoodServiceInterfaceのモック実装。
type mockFoodService struct {
	listFn          func(ctx context.Context, search, sort string) ([]model.Food, error)
	listByDonatorFn func(ctx context.Context, email string) ([]model.Food, error)
	getFn           func(ctx context.Context, id string) (*model.Food, error)
	createFn        func(ctx context.Context, food *model.Food) (*model.Food, error)
	updateFn        func(ctx context.Context, id string, patch *model.FoodPatch) (*model.Food, bool, error)
	deleteFn        func(ctx context.Context, id string) (int64, error)
}

func (m *mockFoodService) List(ctx context.Context, search, sort string) ([]model.Food, error) {
	if m.listFn != nil {
		return m.listFn(ctx, search, sort)
	}
	return nil, nil
}
func (m *mockFoodService) ListByDonator(ctx context.Context, email string) ([]model.Food, error) {
	if m.listByDonatorFn != nil {
		return m.listByDonatorFn(ctx, email)
	}
	return nil, nil
}
func (m *mockFoodService) Get(ctx context.Context, id string) (*model.Food, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}
func (m *mockFoodService) Create(ctx context.Context, food *model.Food) (*model.Food, error) {
	if m.createFn != nil {
		return m.createFn(ctx, food)
	}
	return food, nil
}
func (m *mockFoodService) Update(ctx context.Context, id string, patch *model.FoodPatch) (*model.Food, bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, patch)
	}
	return &model.Food{ID: id}, false, nil
}
func (m *mockFoodService) Delete(ctx context.Context, id string) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return 0, nil
}

// withClaim はテスト用にリクエストコンテキストに検証済みクレームを注入するヘルパー。
func withClaim(r *http.Request, email string) *http.Request {
	ctx := middleware.ContextWithClaim(r.Context(), model.SessionClaim{Email: email})
	return r.WithContext(ctx)
}

// withChiURLParam はテスト用にchiのURLパラメータを注入するヘルパー。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// --- GET /foods テスト ---

func TestFoodHandler_ListFoods_PassesQueryParams(t *testing.T) {
	svc := &mockFoodService{
		listFn: func(ctx context.Context, search, sort string) ([]model.Food, error) {
			if search != "rice" {
				t.Errorf("search = %q, want %q", search, "rice")
			}
			if sort != "desc" {
				t.Errorf("sort = %q, want %q", sort, "desc")
			}
			return []model.Food{{ID: "f1"}}, nil
		},
	}
	h := NewFoodHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/foods?search=rice&sort=desc", nil)
	w := httptest.NewRecorder()

	h.ListFoods(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var foods []model.Food
	if err := json.NewDecoder(w.Body).Decode(&foods); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(foods) != 1 || foods[0].ID != "f1" {
		t.Errorf("foods = %+v, want one listing f1", foods)
	}
}

func TestFoodHandler_ListFoods_EmptyResultIsArray(t *testing.T) {
	h := NewFoodHandler(&mockFoodService{})

	req := httptest.NewRequest(http.MethodGet, "/foods", nil)
	w := httptest.NewRecorder()

	h.ListFoods(w, req)

	body := strings.TrimSpace(w.Body.String())
	if body != "[]" {
		t.Errorf("body = %q, want %q", body, "[]")
	}
}

func TestFoodHandler_ListFoods_ServiceError(t *testing.T) {
	svc := &mockFoodService{
		listFn: func(ctx context.Context, search, sort string) ([]model.Food, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := NewFoodHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/foods", nil)
	w := httptest.NewRecorder()

	h.ListFoods(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

// --- GET /foods/:email テスト ---

func TestFoodHandler_ListFoodsByDonator_Success(t *testing.T) {
	svc := &mockFoodService{
		listByDonatorFn: func(ctx context.Context, email string) ([]model.Food, error) {
			if email != "a@example.com" {
				t.Errorf("email = %q, want %q", email, "a@example.com")
			}
			return []model.Food{{ID: "f1"}}, nil
		},
	}
	h := NewFoodHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/foods/a@example.com", nil)
	req = withClaim(req, "a@example.com")
	req = withChiURLParam(req, "email", "a@example.com")
	w := httptest.NewRecorder()

	h.ListFoodsByDonator(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestFoodHandler_ListFoodsByDonator_EmailMismatch_Forbidden(t *testing.T) {
	h := NewFoodHandler(&mockFoodService{})

	req := httptest.NewRequest(http.MethodGet, "/foods/b@example.com", nil)
	req = withClaim(req, "a@example.com")
	req = withChiURLParam(req, "email", "b@example.com")
	w := httptest.NewRecorder()

	h.ListFoodsByDonator(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["message"] != "forbidden access" {
		t.Errorf(`message = %q, want "forbidden access"`, body["message"])
	}
}

func TestFoodHandler_ListFoodsByDonator_NoClaim_Unauthorized(t *testing.T) {
	h := NewFoodHandler(&mockFoodService{})

	req := httptest.NewRequest(http.MethodGet, "/foods/a@example.com", nil)
	req = withChiURLParam(req, "email", "a@example.com")
	w := httptest.NewRecorder()

	h.ListFoodsByDonator(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// --- GET /food/:id テスト ---

func TestFoodHandler_GetFood_Success(t *testing.T) {
	svc := &mockFoodService{
		getFn: func(ctx context.Context, id string) (*model.Food, error) {
			return &model.Food{ID: id, FoodName: "りんご"}, nil
		},
	}
	h := NewFoodHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/food/f1", nil)
	req = withChiURLParam(req, "id", "f1")
	w := httptest.NewRecorder()

	h.GetFood(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var food model.Food
	if err := json.NewDecoder(w.Body).Decode(&food); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if food.ID != "f1" {
		t.Errorf("food.ID = %q, want %q", food.ID, "f1")
	}
}

func TestFoodHandler_GetFood_NotFound(t *testing.T) {
	h := NewFoodHandler(&mockFoodService{})

	req := httptest.NewRequest(http.MethodGet, "/food/missing", nil)
	req = withChiURLParam(req, "id", "missing")
	w := httptest.NewRecorder()

	h.GetFood(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// --- POST /foods テスト ---

func TestFoodHandler_CreateFood_Success(t *testing.T) {
	svc := &mockFoodService{
		createFn: func(ctx context.Context, food *model.Food) (*model.Food, error) {
			food.ID = "generated-id"
			return food, nil
		},
	}
	h := NewFoodHandler(svc)

	body := `{"foodName":"りんご","foodQuantity":"5","donator":{"name":"山田","email":"a@example.com"}}`
	req := httptest.NewRequest(http.MethodPost, "/foods", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateFood(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var created model.Food
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if created.ID != "generated-id" {
		t.Errorf("created.ID = %q, want %q", created.ID, "generated-id")
	}
	if created.Donator.Email != "a@example.com" {
		t.Errorf("created.Donator.Email = %q, want %q", created.Donator.Email, "a@example.com")
	}
}

func TestFoodHandler_CreateFood_InvalidBody(t *testing.T) {
	h := NewFoodHandler(&mockFoodService{})

	req := httptest.NewRequest(http.MethodPost, "/foods", strings.NewReader(`{broken`))
	w := httptest.NewRecorder()

	h.CreateFood(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

// --- PUT /updateFood/:id テスト ---

func TestFoodHandler_UpdateFood_PartialPatch(t *testing.T) {
	var captured *model.FoodPatch
	svc := &mockFoodService{
		updateFn: func(ctx context.Context, id string, patch *model.FoodPatch) (*model.Food, bool, error) {
			captured = patch
			return &model.Food{ID: id, FoodQuantity: "10"}, false, nil
		},
	}
	h := NewFoodHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/updateFood/f1", strings.NewReader(`{"foodQuantity":"10"}`))
	req = withChiURLParam(req, "id", "f1")
	w := httptest.NewRecorder()

	h.UpdateFood(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if captured == nil {
		t.Fatal("patch should reach the service")
	}
	if captured.FoodQuantity == nil || *captured.FoodQuantity != "10" {
		t.Error("patch.FoodQuantity should be set to 10")
	}
	if captured.FoodName != nil {
		t.Error("patch.FoodName should be nil for fields absent from the body")
	}
	if captured.ExpiredDate != nil {
		t.Error("patch.ExpiredDate should be nil for fields absent from the body")
	}
}

func TestFoodHandler_UpdateFood_UpsertReturnsCreated(t *testing.T) {
	svc := &mockFoodService{
		updateFn: func(ctx context.Context, id string, patch *model.FoodPatch) (*model.Food, bool, error) {
			return &model.Food{ID: id}, true, nil
		},
	}
	h := NewFoodHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/updateFood/new-id", strings.NewReader(`{"foodName":"みかん"}`))
	req = withChiURLParam(req, "id", "new-id")
	w := httptest.NewRecorder()

	h.UpdateFood(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
}

func TestFoodHandler_UpdateFood_ExpiredDateParses(t *testing.T) {
	var captured *model.FoodPatch
	svc := &mockFoodService{
		updateFn: func(ctx context.Context, id string, patch *model.FoodPatch) (*model.Food, bool, error) {
			captured = patch
			return &model.Food{ID: id}, false, nil
		},
	}
	h := NewFoodHandler(svc)

	req := httptest.NewRequest(http.MethodPut, "/updateFood/f1",
		strings.NewReader(`{"expiredDate":"2024-12-31T00:00:00Z"}`))
	req = withChiURLParam(req, "id", "f1")
	w := httptest.NewRecorder()

	h.UpdateFood(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	want := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	if captured.ExpiredDate == nil || !captured.ExpiredDate.Equal(want) {
		t.Errorf("patch.ExpiredDate = %v, want %v", captured.ExpiredDate, want)
	}
}

// --- DELETE /foods/:id テスト ---

func TestFoodHandler_DeleteFood_ReturnsCount(t *testing.T) {
	svc := &mockFoodService{
		deleteFn: func(ctx context.Context, id string) (int64, error) {
			return 1, nil
		},
	}
	h := NewFoodHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/foods/f1", nil)
	req = withChiURLParam(req, "id", "f1")
	w := httptest.NewRecorder()

	h.DeleteFood(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]int64
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["deletedCount"] != 1 {
		t.Errorf("deletedCount = %d, want 1", body["deletedCount"])
	}
}

func TestFoodHandler_DeleteFood_MissingReturnsZero(t *testing.T) {
	h := NewFoodHandler(&mockFoodService{})

	req := httptest.NewRequest(http.MethodDelete, "/foods/missing", nil)
	req = withChiURLParam(req, "id", "missing")
	w := httptest.NewRecorder()

	h.DeleteFood(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body map[string]int64
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["deletedCount"] != 0 {
		t.Errorf("deletedCount = %d, want 0", body["deletedCount"])
	}
}
