package ui

import "fmt"

// DefaultPageSize はプロファイル一覧のページあたり行数（グループ見出し行を含む）
const DefaultPageSize = 50

// Pagination は一覧の表示ページを管理する。
// 総行数は GetPageItems 呼び出しごとに更新される。
type Pagination struct {
	TotalItems  int
	PageSize    int
	CurrentPage int
}

// NewPagination は1ページ目を指すPaginationを生成する。
func NewPagination(pageSize int) *Pagination {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Pagination{PageSize: pageSize, CurrentPage: 1}
}

// TotalPages は総ページ数を返す。空の一覧も1ページとして数える。
func (p *Pagination) TotalPages() int {
	return max(1, (p.TotalItems+p.PageSize-1)/p.PageSize)
}

// bounds は現在ページの [start, end) を返す。
func (p *Pagination) bounds() (int, int) {
	start := (p.CurrentPage - 1) * p.PageSize
	return start, min(start+p.PageSize, p.TotalItems)
}

// HasPrevPage は前のページがあるかどうかを返す。
func (p *Pagination) HasPrevPage() bool { return p.CurrentPage > 1 }

// HasNextPage は次のページがあるかどうかを返す。
func (p *Pagination) HasNextPage() bool { return p.CurrentPage < p.TotalPages() }

// NextPage は次のページに移動する。移動できなければfalse。
func (p *Pagination) NextPage() bool {
	if !p.HasNextPage() {
		return false
	}
	p.CurrentPage++
	return true
}

// PrevPage は前のページに移動する。移動できなければfalse。
func (p *Pagination) PrevPage() bool {
	if !p.HasPrevPage() {
		return false
	}
	p.CurrentPage--
	return true
}

// FirstPage は1ページ目に戻る。検索語の変更時に使う。
func (p *Pagination) FirstPage() {
	p.CurrentPage = 1
}

// GetPageItems はitemsのうち現在ページに表示する範囲を返す。
// 削除や絞り込みで行数が減った場合は最終ページに寄せる。
func GetPageItems[T any](items []T, p *Pagination) []T {
	p.TotalItems = len(items)
	p.CurrentPage = min(max(p.CurrentPage, 1), p.TotalPages())
	start, end := p.bounds()
	if start >= end {
		return []T{}
	}
	return items[start:end]
}

// FormatPageInfo はステータス行に出すページ情報を返す。
func (p *Pagination) FormatPageInfo() string {
	if p.TotalItems == 0 {
		return "No items"
	}
	start, end := p.bounds()
	return fmt.Sprintf("%d-%d of %d (Page %d/%d)", start+1, end, p.TotalItems, p.CurrentPage, p.TotalPages())
}
