// Package repo provides postgres access for the catalog
package repo

import (
	"context"
	_ "embed"
	"sort"
	"time"

	"storefront/internal/modkit/repokit"
	"storefront/internal/platform/store"
)

// Schema is the DDL of the tables this package reads
//
//go:embed schema.sql
var Schema string

// Repo defines the repository contract for catalog reads
type Repo interface {
	Node(ctx context.Context, id string) (RowNode, error)
	Children(ctx context.Context, parentID string) ([]RowNode, error)
	Lists(ctx context.Context, parentID string) ([]RowList, error)
	Refs(ctx context.Context, domain string, ids []string) ([]map[string]any, error)
}

// RowNode is one catalog row
type RowNode struct {
	ID       string
	ParentID string
	Code     string
	Label    string
	URL      string
	Target   string
	Config   map[string]any
	Status   int
	MTime    time.Time
}

// RowList is one catalog_list row
type RowList struct {
	ID       string         `db:"id"`
	Domain   string         `db:"domain"`
	Type     string         `db:"type"`
	RefID    string         `db:"refid"`
	Position int            `db:"pos"`
	Config   map[string]any `db:"config"`
	Start    time.Time      `db:"start"`
	End      time.Time      `db:"end"`
	Status   int            `db:"status"`
}

// refQueries selects referenced items per domain; the domain names double as an allowlist
var refQueries = map[string]string{
	"attribute": `
select id::text as id, domain, type, code, label, pos as position, status
from attribute where id::text = any($1)`,
	"media": `
select id::text as id, type, label, url, preview, mimetype, status
from media where id::text = any($1)`,
	"text": `
select id::text as id, type, langid, label, content, status
from text where id::text = any($1)`,
	"product": `
select id::text as id, type, code, label, start, "end", status
from product where id::text = any($1)`,
}

// Domains lists the referenced domains the repo can load, sorted
func Domains() []string {
	out := make([]string, 0, len(refQueries))
	for d := range refQueries {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const nodeColumns = `id::text, coalesce(parentid::text, ''), code, label, url, target, config, status::int, mtime`

func scanNode(r repokit.Row) (RowNode, error) {
	var n RowNode
	err := r.Scan(&n.ID, &n.ParentID, &n.Code, &n.Label, &n.URL, &n.Target, &n.Config, &n.Status, &n.MTime)
	return n, err
}

func (r *queries) Node(ctx context.Context, id string) (RowNode, error) {
	return store.One(ctx, r.q, scanNode,
		`select `+nodeColumns+` from catalog where id::text = $1`, id)
}

func (r *queries) Children(ctx context.Context, parentID string) ([]RowNode, error) {
	return store.Many(ctx, r.q, scanNode,
		`select `+nodeColumns+` from catalog where parentid::text = $1 order by pos, id`, parentID)
}

func (r *queries) Lists(ctx context.Context, parentID string) ([]RowList, error) {
	const sql = `
select id::text as id, domain, type, refid, pos, config, start, "end", status::int as status
from catalog_list
where parentid::text = $1
order by domain, pos, id
`
	return store.StructsByName[RowList](ctx, r.q, sql, parentID)
}

// Refs loads referenced items of one domain; unknown domains yield nothing
func (r *queries) Refs(ctx context.Context, domain string, ids []string) ([]map[string]any, error) {
	sql, ok := refQueries[domain]
	if !ok || len(ids) == 0 {
		return nil, nil
	}
	return store.Maps(ctx, r.q, sql, ids)
}
