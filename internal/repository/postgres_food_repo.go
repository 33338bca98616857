package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/foodshare/internal/model"
)

// foodColumns はfoodsテーブルのSELECT句。Scanの順序と対応する。
const foodColumns = `id, food_name, food_image, food_quantity, pickup_location,
	        expired_date, additional_notes, donator_name, donator_email,
	        donator_image, food_status, created_at, updated_at`

// PostgresFoodRepo はPostgreSQLを使用した食品リスティングリポジトリ。
type PostgresFoodRepo struct {
	db *sql.DB
}

// NewPostgresFoodRepo はPostgresFoodRepoを生成する。
func NewPostgresFoodRepo(db *sql.DB) *PostgresFoodRepo {
	return &PostgresFoodRepo{db: db}
}

// scanFood は1行分のfoodsレコードを読み取る。
func scanFood(scan func(dest ...interface{}) error) (*model.Food, error) {
	food := &model.Food{}
	err := scan(
		&food.ID, &food.FoodName, &food.FoodImage, &food.FoodQuantity,
		&food.PickupLocation, &food.ExpiredDate, &food.AdditionalNotes,
		&food.Donator.Name, &food.Donator.Email, &food.Donator.Image,
		&food.FoodStatus, &food.CreatedAt, &food.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return food, nil
}

// Create は新規リスティングを作成する。
func (r *PostgresFoodRepo) Create(ctx context.Context, food *model.Food) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO foods (id, food_name, food_image, food_quantity, pickup_location,
		                    expired_date, additional_notes, donator_name, donator_email,
		                    donator_image, food_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		food.ID, food.FoodName, food.FoodImage, food.FoodQuantity, food.PickupLocation,
		food.ExpiredDate, food.AdditionalNotes, food.Donator.Name, food.Donator.Email,
		food.Donator.Image, food.FoodStatus, food.CreatedAt, food.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("リスティングの作成に失敗しました: %w", err)
	}
	return nil
}

// FindByID は指定IDのリスティングを取得する。見つからない場合はnilを返す。
func (r *PostgresFoodRepo) FindByID(ctx context.Context, id string) (*model.Food, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+foodColumns+` FROM foods WHERE id = $1`, id)

	food, err := scanFood(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("リスティングの取得に失敗しました: %w", err)
	}
	return food, nil
}

// List は検索・ソート条件に合致するリスティングを全件返す。
// 検索は食品名に対する大文字小文字を区別しない部分一致（ILIKE）。
// ソートは賞味期限の昇順/降順。指定がなければストアの自然順で返す
// （決定的なタイブレークは保証しない）。ページネーションは行わない。
func (r *PostgresFoodRepo) List(ctx context.Context, q model.CatalogQuery) ([]model.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM foods`
	args := []interface{}{}

	if q.Search != "" {
		query += ` WHERE food_name ILIKE '%' || $1 || '%'`
		args = append(args, q.Search)
	}

	switch q.Sort {
	case model.SortAsc:
		query += ` ORDER BY expired_date ASC`
	case model.SortDesc:
		query += ` ORDER BY expired_date DESC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("リスティング一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var foods []model.Food
	for rows.Next() {
		food, err := scanFood(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("リスティング行の読み取りに失敗しました: %w", err)
		}
		foods = append(foods, *food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("リスティング一覧の走査に失敗しました: %w", err)
	}

	return foods, nil
}

// ListByDonator は寄付者のメールアドレスでリスティングを検索する。
func (r *PostgresFoodRepo) ListByDonator(ctx context.Context, email string) ([]model.Food, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+foodColumns+` FROM foods WHERE donator_email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("寄付者別リスティングの取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var foods []model.Food
	for rows.Next() {
		food, err := scanFood(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("リスティング行の読み取りに失敗しました: %w", err)
		}
		foods = append(foods, *food)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("寄付者別リスティングの走査に失敗しました: %w", err)
	}

	return foods, nil
}

// Update は既存リスティングを上書き更新する。
func (r *PostgresFoodRepo) Update(ctx context.Context, food *model.Food) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE foods SET
		    food_name = $2, food_image = $3, food_quantity = $4,
		    pickup_location = $5, expired_date = $6, additional_notes = $7,
		    donator_name = $8, donator_email = $9, donator_image = $10,
		    food_status = $11, updated_at = $12
		 WHERE id = $1`,
		food.ID, food.FoodName, food.FoodImage, food.FoodQuantity,
		food.PickupLocation, food.ExpiredDate, food.AdditionalNotes,
		food.Donator.Name, food.Donator.Email, food.Donator.Image,
		food.FoodStatus, food.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("リスティングの更新に失敗しました: %w", err)
	}
	return nil
}

// DeleteByID は指定IDのリスティングを削除し、削除件数を返す。
func (r *PostgresFoodRepo) DeleteByID(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM foods WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("リスティングの削除に失敗しました: %w", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除件数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// compile-time interface check
var _ FoodRepository = (*PostgresFoodRepo)(nil)
