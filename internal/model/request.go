// Package model はドメインモデルを定義する。
package model

import "time"

// FoodRequest はユーザーによる食品リスティングへのクレーム（受け取り申請）を表す。
// 作成後に更新されることはなく、リクエスト者のメールアドレスで照会される。
// 1つのリスティングに対して複数のFoodRequestが存在し得る
// （ストアは重複クレームを防止しない）。
type FoodRequest struct {
	ID     string `json:"id"`
	FoodID string `json:"foodId"`
	// Email はリクエスト者のメールアドレス。セッションクレームとの照合に使われる。
	Email       string    `json:"email"`
	RequestDate time.Time `json:"requestDate"`

	// 以下はリクエスト一覧表示用のパススルーフィールド。
	// 作成時点のリスティング内容のスナップショットであり、正規化はしない。
	FoodName        string    `json:"foodName"`
	FoodImage       string    `json:"foodImage"`
	DonatorName     string    `json:"donatorName"`
	DonatorEmail    string    `json:"donatorEmail"`
	PickupLocation  string    `json:"pickupLocation"`
	ExpiredDate     time.Time `json:"expiredDate"`
	AdditionalNotes string    `json:"additionalNotes"`

	CreatedAt time.Time `json:"createdAt"`
}
