// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizerService はリスティングの自由入力フィールド
// （食品名・受け渡し場所・補足メモ）からHTMLを除去し、
// 保存した値がそのままAPI応答として安全に返せることを保証する。
// bluemondayの許可リストベースのポリシーを使用する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizerService は自由入力テキストのサニタイズ機能のインターフェースを定義する。
// リスティングの作成・更新時に使用される。
type ContentSanitizerService interface {
	// Sanitize は入力からすべてのHTMLタグを除去したプレーンテキストを返す。
	// script, iframe, style タグおよび on* イベント属性もすべて除去される。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// contentSanitizer はContentSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerServiceの新しいインスタンスを生成する。
// リスティングのフィールドはリッチテキストを想定しないため、
// タグを一切許可しないStrictPolicyを使用する。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力からHTMLタグを除去したプレーンテキストを返す。
// bluemondayはタグ除去後のテキストをエスケープして返すため、
// "1 < 2" のような通常のテキストが壊れないようにアンエスケープして戻す。
func (s *contentSanitizer) Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	cleaned := s.policy.Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// compile-time interface check
var _ ContentSanitizerService = (*contentSanitizer)(nil)
