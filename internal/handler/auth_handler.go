// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/foodshare/internal/middleware"
	"github.com/hitoshi/foodshare/internal/model"
)

// TokenIssuer はセッショントークンの発行に必要なインターフェース。
// auth.TokenServiceの部分集合として定義する。
type TokenIssuer interface {
	Issue(claim model.SessionClaim) (string, error)
}

// AuthHandlerConfig は認証ハンドラーの設定。
type AuthHandlerConfig struct {
	CookieDomain string
	CookieSecure bool
	TokenTTL     time.Duration // セッションCookieの有効期間
}

// AuthHandler はセッショントークン発行・破棄のHTTPハンドラー。
type AuthHandler struct {
	issuer TokenIssuer
	config AuthHandlerConfig
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(issuer TokenIssuer, config AuthHandlerConfig) *AuthHandler {
	return &AuthHandler{
		issuer: issuer,
		config: config,
	}
}

// issueTokenRequest はトークン発行リクエストのボディ。
type issueTokenRequest struct {
	Email string `json:"email"`
}

// successResponse はトークン発行・破棄の成功レスポンス。
type successResponse struct {
	Success bool `json:"success"`
}

// IssueToken はメールアドレスに対するセッショントークンを発行し、
// HTTP Only Cookieとして設定する。メールアドレスの所有確認は行わない。
// POST /jwt
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("リクエストボディの解析に失敗しました"))
		return
	}
	if req.Email == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest,
			model.NewInvalidRequestError("emailが空です"))
		return
	}

	token, err := h.issuer.Issue(model.SessionClaim{Email: req.Email})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   int(h.config.TokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteNoneMode,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(successResponse{Success: true})
}

// Logout はセッションCookieを破棄する。
// トークン自体の無効化は行わず、Cookieの削除のみを行う。
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: http.SameSiteNoneMode,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(successResponse{Success: true})
}
