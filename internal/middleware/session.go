// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hitoshi/foodshare/internal/model"
)

// SessionCookieName はセッショントークンを運ぶCookie名。
const SessionCookieName = "token"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// claimContextKey はリクエストコンテキストに検証済みクレームを格納するためのキー。
var claimContextKey = contextKey("session_claim")

// TokenVerifier はセッショントークンの検証に必要なインターフェース。
// auth.TokenServiceの部分集合として定義する。
type TokenVerifier interface {
	Verify(token string) (model.SessionClaim, error)
}

// NewSessionMiddleware はHTTP Only Cookieからセッショントークンを読み取り、
// 署名と有効期限を検証するミドルウェアを返す。
// 検証済みクレームをリクエストコンテキストに注入する。
// Cookieが無い・検証に失敗したリクエストには401を返す。
// クレームのemailとルートパラメータの照合は各ハンドラーの責務であり、
// このミドルウェアでは行わない。
func NewSessionMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Cookieからトークンを取得
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				WriteUnauthorized(w)
				return
			}

			// 2. トークンの署名と有効期限を検証
			claim, err := verifier.Verify(cookie.Value)
			if err != nil {
				WriteUnauthorized(w)
				return
			}

			// 3. 検証済みクレームをコンテキストに注入
			ctx := context.WithValue(r.Context(), claimContextKey, claim)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimFromContext はリクエストコンテキストから検証済みクレームを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func ClaimFromContext(ctx context.Context) (model.SessionClaim, error) {
	claim, ok := ctx.Value(claimContextKey).(model.SessionClaim)
	if !ok || claim.Email == "" {
		return model.SessionClaim{}, fmt.Errorf("session claim not found in context")
	}
	return claim, nil
}

// ContextWithClaim はコンテキストに検証済みクレームを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithClaim(ctx context.Context, claim model.SessionClaim) context.Context {
	return context.WithValue(ctx, claimContextKey, claim)
}
