// Package auth はセッショントークンの発行と検証を提供する。
package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/foodshare/internal/model"
)

// ErrInvalidToken は署名不正または期限切れのトークンを表す。
// 呼び出し側は原因を区別せず、認証失敗として扱う。
var ErrInvalidToken = errors.New("invalid token")

// sessionClaims はJWTに埋め込むクレーム。emailと標準クレームのみを持つ。
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService はHS256署名のセッショントークンを発行・検証する。
// 秘密鍵はプロセス生存期間中1つだけ保持する。ローテーションは対象外。
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService はTokenServiceを生成する。
// ttlには発行するトークンの有効期間を指定する（本番では10時間）。
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue はセッションクレームを埋め込んだ署名付きトークンを発行する。
// トークン構築以外の副作用はない。
func (s *TokenService) Issue(claim model.SessionClaim) (string, error) {
	now := s.now().UTC()
	claims := sessionClaims{
		Email: claim.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify はトークンを検証し、署名が正しくかつ期限内の場合のみクレームを返す。
// それ以外はErrInvalidTokenを返す。
func (s *TokenService) Verify(tokenString string) (model.SessionClaim, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !parsed.Valid {
		return model.SessionClaim{}, ErrInvalidToken
	}
	if claims.Email == "" {
		return model.SessionClaim{}, ErrInvalidToken
	}

	return model.SessionClaim{Email: claims.Email}, nil
}
