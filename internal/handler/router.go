package handler

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/foodshare/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	MetricsRecorder   middleware.HTTPMetricsRecorder

	// 認証
	TokenIssuer TokenIssuer
	AuthConfig  AuthHandlerConfig

	// 食品リスティング
	FoodService FoodServiceInterface

	// 食品リクエスト
	RequestService RequestServiceInterface

	// ヘルスチェック用DBハンドル
	DB *sql.DB

	// Prometheusスクレイプ用ハンドラー
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → Logging
//
// 所有者ガード対象ルート（GET /foods/{email}、GET /my-request/{email}）のみ
// Session → RateLimit(General)を追加で通す。カタログや書き込み系ルートは
// 既存クライアントとの互換のため認証を要求しない。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.MetricsRecorder))
	}

	authHandler := NewAuthHandler(deps.TokenIssuer, deps.AuthConfig)
	foodHandler := NewFoodHandler(deps.FoodService)
	requestHandler := NewRequestHandler(deps.RequestService)

	// --- 認証不要のルート ---

	r.Post("/jwt", authHandler.IssueToken)
	r.Post("/logout", authHandler.Logout)

	r.Get("/foods", foodHandler.ListFoods)
	r.Get("/food/{id}", foodHandler.GetFood)
	r.Post("/foods", foodHandler.CreateFood)
	r.Put("/updateFood/{id}", foodHandler.UpdateFood)
	r.Delete("/foods/{id}", foodHandler.DeleteFood)

	r.Post("/req-food", requestHandler.CreateRequest)

	// --- 所有者ガード対象のルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.TokenVerifier))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.GeneralMiddleware())
		}

		r.Get("/foods/{email}", foodHandler.ListFoodsByDonator)
		r.Get("/my-request/{email}", requestHandler.ListRequests)
	})

	// --- 運用ルート ---

	r.Get("/health", healthHandler(deps.DB))
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	return r
}

// healthHandler はDB疎通を含むヘルスチェックを処理する。
func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		statusCode := http.StatusOK

		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				status = "unavailable"
				statusCode = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	}
}
