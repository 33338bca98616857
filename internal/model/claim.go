// Package model はドメインモデルを定義する。
package model

// SessionClaim は署名付きセッショントークンに埋め込まれる識別情報。
// トークン自体はHTTP Only Cookieで運ばれ、クライアント側で解析されることはない。
type SessionClaim struct {
	Email string `json:"email"`
}
