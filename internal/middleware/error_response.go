package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/foodshare/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスの統一フォーマット。
// 原因カテゴリと対処方法を含む。
type ErrorResponseBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// messageBody は認証・認可エラーの互換レスポンス。
// クライアントが期待するフィールドはmessageのみ。
type messageBody struct {
	Message string `json:"message"`
}

// WriteErrorResponse は統一エラーフォーマットでHTTPエラーレスポンスを書き込む。
// すべてのAPIエンドポイントで一貫したエラーレスポンスを提供する。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// WriteUnauthorized はガード対象ルートへの未認証アクセスに対する401レスポンスを書き込む。
// レスポンスボディは既存クライアントとの互換フォーマットで固定する。
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(messageBody{Message: "Unauthorized access"})
}

// WriteForbidden は認証済みだが対象リソースの所有者と一致しない場合の
// 403レスポンスを書き込む。レスポンスボディは互換フォーマットで固定する。
func WriteForbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	json.NewEncoder(w).Encode(messageBody{Message: "forbidden access"})
}

// WriteInternalServerError は内部サーバーエラーの統一レスポンスを書き込む。
// 詳細はログのみに記録し、ユーザーには一般的なメッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, model.NewStoreFailureError())
}
