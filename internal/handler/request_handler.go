package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/foodshare/internal/middleware"
	"github.com/hitoshi/foodshare/internal/model"
)

// RequestServiceInterface はリクエストハンドラーが必要とするサービスインターフェース。
type RequestServiceInterface interface {
	// Create はリクエストを受け付け、対象リスティングをrequested状態に遷移させる。
	Create(ctx context.Context, req *model.FoodRequest) (*model.FoodRequest, error)
	// ListByEmail はリクエスト者のメールアドレスに紐づくリクエスト一覧を返す。
	ListByEmail(ctx context.Context, email string) ([]model.FoodRequest, error)
}

// RequestHandler は食品リクエスト管理のHTTPハンドラー。
type RequestHandler struct {
	service RequestServiceInterface
}

// NewRequestHandler はRequestHandlerを生成する。
func NewRequestHandler(service RequestServiceInterface) *RequestHandler {
	return &RequestHandler{
		service: service,
	}
}

// CreateRequest は食品リクエストを受け付ける。
// foodIdの存在検証と重複リクエストの拒否は行わない。
// POST /req-food
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req model.FoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// ListRequests は認証済みユーザー自身のリクエスト一覧を返す。
// ルートパラメータのemailがトークンのemailと一致しない場合は403を返す。
// GET /my-request/:email
func (h *RequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
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

	requests, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if requests == nil {
		requests = []model.FoodRequest{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}
