package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/foodshare/internal/middleware"
	"github.com/hitoshi/foodshare/internal/model"
)

// FoodServiceInterface は食品ハンドラーが必要とするサービスインターフェース。
type FoodServiceInterface interface {
	// List はカタログクエリに合致するリスティング一覧を返す。
	List(ctx context.Context, search, sort string) ([]model.Food, error)
	// ListByDonator は寄付者のメールアドレスに紐づくリスティング一覧を返す。
	ListByDonator(ctx context.Context, email string) ([]model.Food, error)
	// Get は指定IDのリスティングを返す。見つからない場合はnilを返す。
	Get(ctx context.Context, id string) (*model.Food, error)
	// Create は新規リスティングを作成する。
	Create(ctx context.Context, food *model.Food) (*model.Food, error)
	// Update はパッチを適用して保存する。対象が無ければ新規作成する。
	Update(ctx context.Context, id string, patch *model.FoodPatch) (*model.Food, bool, error)
	// Delete は指定IDのリスティングを削除し、削除件数を返す。
	Delete(ctx context.Context, id string) (int64, error)
}

// FoodHandler は食品リスティング管理のHTTPハンドラー。
type FoodHandler struct {
	service FoodServiceInterface
}

// NewFoodHandler はFoodHandlerを生成する。
func NewFoodHandler(service FoodServiceInterface) *FoodHandler {
	return &FoodHandler{
		service: service,
	}
}

// deleteResultResponse は削除操作のレスポンス。
type deleteResultResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// ListFoods はカタログの一覧・検索・ソートを処理する。
// GET /foods?search=...&sort=asc|desc
func (h *FoodHandler) ListFoods(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	sort := r.URL.Query().Get("sort")

	foods, err := h.service.List(r.Context(), search, sort)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if foods == nil {
		foods = []model.Food{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(foods)
}

// ListFoodsByDonator は認証済みユーザー自身の寄付一覧を返す。
// ルートパラメータのemailがトークンのemailと一致しない場合は403を返す。
// GET /foods/:email
func (h *FoodHandler) ListFoodsByDonator(w http.ResponseWriter, r *http.Request) {
	claim, err := middleware.ClaimFromContext(r.Context())
	if err != nil {
		middleware.WriteUnauthorized(w)
		return
	}

	email := chi.URLParam(r, "email")
	if claim.Email != email {
		middleware.WriteForbidden(w)
		return
	}

	foods, err := h.service.ListByDonator(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if foods == nil {
		foods = []model.Food{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(foods)
}

// GetFood はリスティング詳細を取得する。
// GET /food/:id
func (h *FoodHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	food, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if food == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewFoodNotFoundError(id))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(food)
}

// CreateFood は新規リスティングを登録する。
// POST /foods
func (h *FoodHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	var food model.Food
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	created, err := h.service.Create(r.Context(), &food)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// UpdateFood はリスティングの部分更新を処理する。
// ボディに含まれるフィールドだけが上書きされ、対象が存在しない場合は
// 指定IDで新規作成される。
// PUT /updateFood/:id
func (h *FoodHandler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch model.FoodPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	food, createdNew, err := h.service.Update(r.Context(), id, &patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if createdNew {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(food)
}

// DeleteFood はリスティングを削除する。
// 対象が存在しない場合も200でdeletedCount=0を返す。
// DELETE /foods/:id
func (h *FoodHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	count, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(deleteResultResponse{DeletedCount: count})
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeAPIErrorResponse(w, mapAPIErrorToHTTPStatus(apiErr), apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeFoodNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
