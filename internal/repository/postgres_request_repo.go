package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/foodshare/internal/model"
)

// PostgresRequestRepo はPostgreSQLを使用した食品リクエストリポジトリ。
type PostgresRequestRepo struct {
	db *sql.DB
}

// NewPostgresRequestRepo はPostgresRequestRepoを生成する。
func NewPostgresRequestRepo(db *sql.DB) *PostgresRequestRepo {
	return &PostgresRequestRepo{db: db}
}

// CreateAndMarkRequested はリクエストの挿入と対象リスティングの
// food_status='requested'への更新を単一トランザクションで行う。
// 対象リスティングが存在しない場合でも挿入は成功する
// （更新は0行に適用され、エラーにはならない）。
func (r *PostgresRequestRepo) CreateAndMarkRequested(ctx context.Context, req *model.FoodRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO food_requests (id, food_id, email, request_date, food_name,
		                            food_image, donator_name, donator_email,
		                            pickup_location, expired_date, additional_notes,
		                            created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		req.ID, req.FoodID, req.Email, req.RequestDate, req.FoodName,
		req.FoodImage, req.DonatorName, req.DonatorEmail,
		req.PickupLocation, req.ExpiredDate, req.AdditionalNotes,
		req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE foods SET food_status = $2, updated_at = $3 WHERE id = $1`,
		req.FoodID, model.FoodStatusRequested, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("リスティング状態の更新に失敗しました: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	return nil
}

// ListByEmail はリクエスト者のメールアドレスでリクエストを検索する。
func (r *PostgresRequestRepo) ListByEmail(ctx context.Context, email string) ([]model.FoodRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, food_id, email, request_date, food_name, food_image,
		        donator_name, donator_email, pickup_location, expired_date,
		        additional_notes, created_at
		 FROM food_requests WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("リクエスト一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var requests []model.FoodRequest
	for rows.Next() {
		req := model.FoodRequest{}
		err := rows.Scan(
			&req.ID, &req.FoodID, &req.Email, &req.RequestDate,
			&req.FoodName, &req.FoodImage, &req.DonatorName, &req.DonatorEmail,
			&req.PickupLocation, &req.ExpiredDate, &req.AdditionalNotes,
			&req.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("リクエスト行の読み取りに失敗しました: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("リクエスト一覧の走査に失敗しました: %w", err)
	}

	return requests, nil
}

// compile-time interface check
var _ RequestRepository = (*PostgresRequestRepo)(nil)
