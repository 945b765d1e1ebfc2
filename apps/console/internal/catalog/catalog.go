// Package catalog は取得済みUEプロファイルの一覧と、その検索結果・日付グループを管理する。
package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lvdund/ueprofiles/apps/console/internal/api"
	"github.com/lvdund/ueprofiles/apps/console/internal/format"
	"github.com/lvdund/ueprofiles/apps/console/internal/record"
	"github.com/lvdund/ueprofiles/pkg/logging"
)

// UnknownDateLabel は作成日時が未設定または解析できないレコードのグループ名
const UnknownDateLabel = "Unknown Date"

// Lister はUEプロファイル一覧の取得元を定義する。
type Lister interface {
	ListProfiles(ctx context.Context, sess *api.Session) ([]record.Document, error)
}

// Group は同じ日付に作成されたレコードの集まりを表す。
type Group struct {
	Label   string
	Records []record.Document
}

// Option はCatalogの設定を変更する。
type Option func(*Catalog)

// WithDateLayout はグループ名の日付フォーマットを設定する。
func WithDateLayout(layout string) Option {
	return func(c *Catalog) {
		if layout != "" {
			c.layout = layout
		}
	}
}

// WithLocation はグループ化に使うタイムゾーンを設定する。
func WithLocation(loc *time.Location) Option {
	return func(c *Catalog) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// Catalog は一覧の3つのビュー（raw, filtered, grouped）を保持する。
// 複数のゴルーチンから安全に使用できる。
type Catalog struct {
	lister Lister
	layout string
	loc    *time.Location

	mu         sync.RWMutex
	raw        []record.Document
	filtered   []record.Document
	groups     []Group
	term       string
	generation uint64
	applied    uint64
}

// New は新しいCatalogを生成する。
func New(lister Lister, opts ...Option) *Catalog {
	c := &Catalog{
		lister:   lister,
		layout:   format.DefaultDateLayout,
		loc:      time.Local,
		raw:      []record.Document{},
		filtered: []record.Document{},
		groups:   []Group{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reload は一覧を再取得し、検索結果とグループを再計算する。
// 取得に失敗した場合は状態を変更せずにエラーを返す。
// 後から開始したReloadの結果が既に反映されている場合、この結果は破棄される。
func (c *Catalog) Reload(ctx context.Context, sess *api.Session) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	docs, err := c.lister.ListProfiles(ctx, sess)
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []record.Document{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen < c.applied {
		slog.Debug("stale catalog reload dropped",
			"generation", gen,
			"applied", c.applied,
		)
		return nil
	}
	c.applied = gen
	c.raw = docs
	c.derive()

	slog.Debug("catalog reloaded", logging.WithCount(len(docs)))
	return nil
}

// SetSearchTerm は検索語を設定し、検索結果とグループを再計算する。
// ネットワークアクセスは行わない。
func (c *Catalog) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.term = term
	c.derive()
}

// SearchTerm は現在の検索語を返す。
func (c *Catalog) SearchTerm() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.term
}

// Raw は最後に取得した一覧を返す。
func (c *Catalog) Raw() []record.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.raw)
}

// Filtered は検索語にマッチするレコードを返す。
func (c *Catalog) Filtered() []record.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.filtered)
}

// Groups は検索結果を作成日ごとにまとめたグループを返す。
func (c *Catalog) Groups() []Group {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Group, len(c.groups))
	for i, g := range c.groups {
		out[i] = Group{Label: g.Label, Records: clone(g.Records)}
	}
	return out
}

// Find はrawからSUPIが一致するレコードを返す。
func (c *Catalog) Find(supi string) (record.Document, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, doc := range c.raw {
		if record.Identifier(doc) == supi {
			return doc, true
		}
	}
	return nil, false
}

// derive はrawと検索語からfilteredとgroupsを再計算する。mu保持中に呼ぶ。
func (c *Catalog) derive() {
	c.filtered = Filter(c.raw, c.term)
	c.groups = GroupByDate(c.filtered, c.layout, c.loc)
}

// Filter はSUPIにtermを大文字小文字を区別せず部分一致で含むレコードを返す。
// termが空の場合はdocsと同じ内容を返す。
func Filter(docs []record.Document, term string) []record.Document {
	if term == "" {
		return clone(docs)
	}

	query := strings.ToLower(term)
	result := []record.Document{}
	for _, doc := range docs {
		if strings.Contains(strings.ToLower(record.Identifier(doc)), query) {
			result = append(result, doc)
		}
	}
	return result
}

// GroupByDate はレコードを作成日のラベルでグループ化する。
// グループとその中のレコードは最初に出現した順序を保持する。
func GroupByDate(docs []record.Document, layout string, loc *time.Location) []Group {
	groups := []Group{}
	index := map[string]int{}

	for _, doc := range docs {
		label, ok := format.DateLabel(record.CreatedAt(doc), layout, loc)
		if !ok {
			label = UnknownDateLabel
		}

		i, exists := index[label]
		if !exists {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Records = append(groups[i].Records, doc)
	}
	return groups
}

func clone(docs []record.Document) []record.Document {
	out := make([]record.Document, len(docs))
	copy(out, docs)
	return out
}
