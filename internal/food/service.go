// Package food は食品リスティング管理のドメインロジックを提供する。
package food

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/foodshare/internal/model"
	"github.com/hitoshi/foodshare/internal/repository"
	"github.com/hitoshi/foodshare/internal/security"
)

// MetricsRecorder はリスティング作成数のカウントを受け取る。
type MetricsRecorder interface {
	RecordListingsCreated()
}

// Service は食品リスティングのサービス層。
// カタログ検索、寄付者別一覧、作成・更新・削除のビジネスロジックを提供する。
type Service struct {
	foodRepo  repository.FoodRepository
	sanitizer security.ContentSanitizerService
	recorder  MetricsRecorder
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	foodRepo repository.FoodRepository,
	sanitizer security.ContentSanitizerService,
	recorder MetricsRecorder,
) *Service {
	return &Service{
		foodRepo:  foodRepo,
		sanitizer: sanitizer,
		recorder:  recorder,
		now:       time.Now,
	}
}

// List はカタログクエリに合致するリスティング一覧を返す。
// searchは食品名の大文字小文字を区別しない部分一致、sortは賞味期限の
// "asc"/"desc"。どちらも空文字列なら全件を自然順で返す。
func (s *Service) List(ctx context.Context, search, sort string) ([]model.Food, error) {
	q := model.BuildCatalogQuery(search, sort)
	foods, err := s.foodRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("リスティング一覧の取得に失敗しました: %w", err)
	}
	return foods, nil
}

// ListByDonator は寄付者のメールアドレスに紐づくリスティング一覧を返す。
func (s *Service) ListByDonator(ctx context.Context, email string) ([]model.Food, error) {
	foods, err := s.foodRepo.ListByDonator(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("寄付者別リスティングの取得に失敗しました: %w", err)
	}
	return foods, nil
}

// Get は指定IDのリスティングを返す。見つからない場合はnilを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Food, error) {
	food, err := s.foodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("リスティングの取得に失敗しました: %w", err)
	}
	return food, nil
}

// Create は新規リスティングを作成する。
// IDはサーバー側で採番し、ステータス未指定時はavailableとする。
func (s *Service) Create(ctx context.Context, food *model.Food) (*model.Food, error) {
	now := s.now()

	food.ID = uuid.New().String()
	food.FoodName = s.sanitizer.Sanitize(food.FoodName)
	food.PickupLocation = s.sanitizer.Sanitize(food.PickupLocation)
	food.AdditionalNotes = s.sanitizer.Sanitize(food.AdditionalNotes)
	if food.FoodStatus == "" {
		food.FoodStatus = model.FoodStatusAvailable
	}
	food.CreatedAt = now
	food.UpdatedAt = now

	if err := s.foodRepo.Create(ctx, food); err != nil {
		return nil, fmt.Errorf("リスティングの作成に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordListingsCreated()
	}

	return food, nil
}

// Update はパッチをリスティングに適用して保存する。
// 対象が存在しない場合はパッチから新規リスティングを指定IDで作成する
// （upsert動作）。戻り値は (更新後リスティング, 新規作成されたか, エラー)。
func (s *Service) Update(ctx context.Context, id string, patch *model.FoodPatch) (*model.Food, bool, error) {
	existing, err := s.foodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("リスティングの取得に失敗しました: %w", err)
	}

	now := s.now()

	if existing == nil {
		created := &model.Food{
			ID:         id,
			FoodStatus: model.FoodStatusAvailable,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		patch.Apply(created)
		s.sanitizeFood(created)
		if err := s.foodRepo.Create(ctx, created); err != nil {
			return nil, false, fmt.Errorf("リスティングの作成に失敗しました: %w", err)
		}
		return created, true, nil
	}

	patch.Apply(existing)
	s.sanitizeFood(existing)
	existing.UpdatedAt = now

	if err := s.foodRepo.Update(ctx, existing); err != nil {
		return nil, false, fmt.Errorf("リスティングの更新に失敗しました: %w", err)
	}

	return existing, false, nil
}

// Delete は指定IDのリスティングを削除し、削除件数を返す。
// 対象が存在しない場合もエラーとせず0件を返す。
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	count, err := s.foodRepo.DeleteByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("リスティングの削除に失敗しました: %w", err)
	}
	return count, nil
}

// sanitizeFood は自由入力フィールドにサニタイズ処理を適用する。
func (s *Service) sanitizeFood(food *model.Food) {
	food.FoodName = s.sanitizer.Sanitize(food.FoodName)
	food.PickupLocation = s.sanitizer.Sanitize(food.PickupLocation)
	food.AdditionalNotes = s.sanitizer.Sanitize(food.AdditionalNotes)
}
