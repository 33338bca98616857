// Package model はドメインモデルを定義する。
package model

import "time"

// FoodStatus は食品リスティングの状態を表す。
type FoodStatus string

const (
	// FoodStatusAvailable はリクエスト可能な状態を示す。新規作成時のデフォルト。
	FoodStatusAvailable FoodStatus = "available"
	// FoodStatusRequested はリクエスト済みの状態を示す。
	// RequestOrchestrator（/req-food）の副作用としてのみ遷移する。
	FoodStatusRequested FoodStatus = "requested"
)

// Donator は寄付者の表示情報を表す。JSONでは食品リスティングにネストされる。
type Donator struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// Food は1件の食品寄付リスティングを表す。
// food_statusがその食品への未解決リクエストの有無を反映するという不変条件は、
// ストア自身ではなくリクエスト作成時の書き込み順序（単一トランザクション）で維持される。
type Food struct {
	ID              string     `json:"id"`
	FoodName        string     `json:"foodName"`
	FoodImage       string     `json:"foodImage"`
	FoodQuantity    string     `json:"foodQuantity"`
	PickupLocation  string     `json:"pickupLocation"`
	ExpiredDate     time.Time  `json:"expiredDate"`
	AdditionalNotes string     `json:"additionalNotes"`
	Donator         Donator    `json:"donator"`
	FoodStatus      FoodStatus `json:"foodStatus"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// SortOrder は食品一覧の賞味期限ソート順を表す。
type SortOrder string

const (
	// SortNone はソート指定なし（ストアの自然順）を示す。
	SortNone SortOrder = ""
	// SortAsc は賞味期限の昇順を示す。
	SortAsc SortOrder = "asc"
	// SortDesc は賞味期限の降順を示す。
	SortDesc SortOrder = "desc"
)

// ParseSortOrder はクエリパラメータのsort値を解釈する。
// "asc"と"desc"以外の値はすべてソートなしとして扱う（バリデーションエラーにしない）。
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "asc":
		return SortAsc
	case "desc":
		return SortDesc
	default:
		return SortNone
	}
}
