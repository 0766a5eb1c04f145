package repo

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/modkit/repokit"
	perr "storefront/internal/platform/errors"
	"storefront/internal/services/api/catalog/domain"
)

// Loader reads a whole node, its children, lists and referenced items in one read only transaction
type Loader struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo]
}

var _ domain.Loader = (*Loader)(nil)

// NewLoader creates a loader over db
// hooks run after the transaction is marked read only
func NewLoader(db repokit.TxRunner, binder repokit.Binder[Repo], hooks ...repokit.BeginHook) *Loader {
	if db == nil {
		panic("catalog.Loader requires a non nil TxRunner")
	}
	if binder == nil {
		panic("catalog.Loader requires a non nil Repo binder")
	}
	return &Loader{db: repokit.WithBeginHooks(db, append([]repokit.BeginHook{repokit.ReadOnly}, hooks...)...), binder: binder}
}

// Node implements domain.Loader
// a transient conflict is retried once in a fresh transaction
func (l *Loader) Node(ctx context.Context, id string) (*domain.Node, error) {
	var out *domain.Node
	load := func(q repokit.Queryer) error {
		n, err := Assemble(ctx, repokit.MustBind(l.binder, q), id)
		out = n
		return err
	}

	err := repokit.WithTx(ctx, l.db, load)
	if perr.Retryable(err) {
		err = repokit.WithTx(ctx, l.db, load)
	}
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return nil, err
		}
		return nil, perr.FromPostgresf(err, "load catalog node %s", id)
	}
	return out, nil
}

// Assemble builds the node graph for id from r
func Assemble(ctx context.Context, r Repo, id string) (*domain.Node, error) {
	row, err := r.Node(ctx, id)
	if err != nil {
		return nil, err
	}
	node := toNode(row)

	kids, err := r.Children(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	for _, k := range kids {
		node.Kids = append(node.Kids, toNode(k))
	}

	lists, err := r.Lists(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	// one query per referenced domain, in first-seen order
	var order []string
	ids := map[string][]string{}
	seen := map[string]map[string]bool{}
	for _, li := range lists {
		if seen[li.Domain] == nil {
			seen[li.Domain] = map[string]bool{}
			order = append(order, li.Domain)
		}
		if !seen[li.Domain][li.RefID] {
			seen[li.Domain][li.RefID] = true
			ids[li.Domain] = append(ids[li.Domain], li.RefID)
		}
	}

	refs := make(map[string]map[string]*domain.Ref, len(order))
	for _, dom := range order {
		rows, err := r.Refs(ctx, dom, ids[dom])
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*domain.Ref, len(rows))
		for _, m := range rows {
			ref := toRef(dom, m)
			byID[ref.RefID] = ref
		}
		refs[dom] = byID
	}

	for _, li := range lists {
		node.Lists = append(node.Lists, &domain.ListRef{
			ListID:    li.ID,
			RefDomain: li.Domain,
			Type:      li.Type,
			RefID:     li.RefID,
			Position:  li.Position,
			Config:    li.Config,
			Window:    domain.Window{Status: li.Status, Start: li.Start, End: li.End},
			Ref:       refs[li.Domain][li.RefID],
		})
	}
	return node, nil
}

func toNode(r RowNode) *domain.Node {
	return &domain.Node{
		NodeID:   r.ID,
		ParentID: r.ParentID,
		Code:     r.Code,
		Label:    r.Label,
		URL:      r.URL,
		Target:   r.Target,
		Config:   r.Config,
		Window:   domain.Window{Status: r.Status},
		Modified: r.MTime,
	}
}

// toRef keys every column as <domain>.<column>; start and end become datestart and dateend
func toRef(dom string, m map[string]any) *domain.Ref {
	ref := &domain.Ref{Domain: dom, Attrs: make(map[string]any, len(m))}
	for col, v := range m {
		key := col
		switch col {
		case "id":
			ref.RefID = fmt.Sprint(v)
		case "status":
			ref.Window.Status = toInt(v)
		case "start":
			ref.Window.Start, _ = v.(time.Time)
			key = "datestart"
		case "end":
			ref.Window.End, _ = v.(time.Time)
			key = "dateend"
		}
		if t, ok := v.(time.Time); ok {
			v = t.UTC().Format(time.DateTime)
		}
		ref.Attrs[dom+"."+key] = v
	}
	return ref
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
