// Package request は食品リクエストのドメインロジックを提供する。
package request

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/foodshare/internal/model"
	"github.com/hitoshi/foodshare/internal/repository"
	"github.com/hitoshi/foodshare/internal/security"
)

// MetricsRecorder はリクエスト作成数のカウントを受け取る。
type MetricsRecorder interface {
	RecordRequestsCreated()
}

// Service は食品リクエストのサービス層。
// リクエストの受付と対象リスティングのステータス遷移を単一トランザクションで行う。
type Service struct {
	requestRepo repository.RequestRepository
	sanitizer   security.ContentSanitizerService
	recorder    MetricsRecorder
	now         func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	requestRepo repository.RequestRepository,
	sanitizer security.ContentSanitizerService,
	recorder MetricsRecorder,
) *Service {
	return &Service{
		requestRepo: requestRepo,
		sanitizer:   sanitizer,
		recorder:    recorder,
		now:         time.Now,
	}
}

// Create はリクエストを受け付け、対象リスティングをrequested状態に遷移させる。
// 挿入とステータス更新は単一トランザクションで行われ、どちらかが失敗した場合は
// 両方とも取り消される。foodIdの存在検証は行わず、同一ユーザーによる同一
// リスティングへの重複リクエストも拒否しない。
func (s *Service) Create(ctx context.Context, req *model.FoodRequest) (*model.FoodRequest, error) {
	now := s.now()

	req.ID = uuid.New().String()
	req.AdditionalNotes = s.sanitizer.Sanitize(req.AdditionalNotes)
	if req.RequestDate.IsZero() {
		req.RequestDate = now
	}
	req.CreatedAt = now

	if err := s.requestRepo.CreateAndMarkRequested(ctx, req); err != nil {
		return nil, fmt.Errorf("リクエストの受付に失敗しました: %w", err)
	}

	if s.recorder != nil {
		s.recorder.RecordRequestsCreated()
	}

	return req, nil
}

// ListByEmail はリクエスト者のメールアドレスに紐づくリクエスト一覧を返す。
func (s *Service) ListByEmail(ctx context.Context, email string) ([]model.FoodRequest, error) {
	requests, err := s.requestRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("リクエスト一覧の取得に失敗しました: %w", err)
	}
	return requests, nil
}
