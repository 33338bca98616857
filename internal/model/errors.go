// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, food, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeFoodNotFound   = "FOOD_NOT_FOUND"
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeStoreFailure   = "STORE_FAILURE"
)

// NewFoodNotFoundError は食品リスティング未検出エラーを生成する。
func NewFoodNotFoundError(foodID string) *APIError {
	return &APIError{
		Code:     ErrCodeFoodNotFound,
		Message:  fmt.Sprintf("指定された食品が見つかりません: %s", foodID),
		Category: "food",
		Action:   "食品IDを確認してください。",
	}
}

// NewInvalidRequestError はリクエストボディの解析失敗エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("リクエストの内容が不正です: %s", reason),
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}

// NewStoreFailureError は永続化層のエラーを生成する。
// 下位エラーは分類・リトライせず、詳細はログのみに記録する。
func NewStoreFailureError() *APIError {
	return &APIError{
		Code:     ErrCodeStoreFailure,
		Message:  "データストアの操作に失敗しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
