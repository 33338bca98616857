// Package model はドメインモデルを定義する。
package model

// CatalogQuery は食品一覧の検索・ソート条件を表す。
// ゼロ値はフィルタなし・ソートなし（ストアの自然順）を意味する。
type CatalogQuery struct {
	// Search は食品名に対する大文字小文字を区別しない部分一致。空なら全件。
	Search string
	// Sort は賞味期限によるソート順。
	Sort SortOrder
}

// BuildCatalogQuery はクエリパラメータからCatalogQueryを構築する。
// 不正なsort値の検証は行わず、認識できないトークンはソートなしとして扱う。
// ページネーションや件数制限は行わない。
func BuildCatalogQuery(search, sort string) CatalogQuery {
	return CatalogQuery{
		Search: search,
		Sort:   ParseSortOrder(sort),
	}
}
