// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/foodshare/internal/model"
)

// FoodRepository は食品リスティングの永続化インターフェース。
type FoodRepository interface {
	// Create は新規リスティングを作成する。
	Create(ctx context.Context, food *model.Food) error

	// FindByID は指定IDのリスティングを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Food, error)

	// List は検索・ソート条件に合致するリスティングを全件返す。
	// 条件が空の場合は全件をストアの自然順で返す。
	List(ctx context.Context, q model.CatalogQuery) ([]model.Food, error)

	// ListByDonator は寄付者のメールアドレスでリスティングを検索する。
	ListByDonator(ctx context.Context, email string) ([]model.Food, error)

	// Update は既存リスティングを上書き更新する。
	Update(ctx context.Context, food *model.Food) error

	// DeleteByID は指定IDのリスティングを削除し、削除件数を返す。
	// 対象が存在しない場合は0を返す（エラーにはしない）。
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// RequestRepository は食品リクエストの永続化インターフェース。
type RequestRepository interface {
	// CreateAndMarkRequested はリクエストの挿入と対象リスティングの
	// food_status='requested'への更新を単一トランザクションで行う。
	// 対象リスティングが存在しない場合でも挿入は成功する
	// （更新は0行に適用され、エラーにはならない）。
	CreateAndMarkRequested(ctx context.Context, req *model.FoodRequest) error

	// ListByEmail はリクエスト者のメールアドレスでリクエストを検索する。
	ListByEmail(ctx context.Context, email string) ([]model.FoodRequest, error)
}
