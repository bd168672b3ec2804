package lu

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/binding"
	"github.com/lu-dev/lu/pkg/dom"
	"github.com/lu-dev/lu/pkg/widget"
)

// Page is a document with its widgets bound. A Page serializes access to
// its document; it is safe for concurrent use.
type Page struct {
	mu     sync.Mutex
	doc    *dom.Document
	env    *widget.Env
	tables []*binding.Table
	maps   []*binding.Map

	cancels []func()
	logger  *slog.Logger
	closed  bool
}

// Bind attaches the configured bindings to doc: tables are resolved
// immediately, maps are installed and bind on their first event.
func Bind(ctx context.Context, doc *dom.Document, cfg Config) (*Page, error) {
	p := &Page{
		doc:    doc,
		env:    cfg.env(),
		logger: cfg.logger(),
	}
	p.tables, p.maps = cfg.bindings()

	for _, t := range p.tables {
		if _, err := t.Resolve(ctx, doc, p.env); err != nil {
			p.Close()
			return nil, err
		}
	}
	for _, m := range p.maps {
		cancel, err := m.Install(ctx, doc, p.env)
		if err != nil {
			p.Close()
			return nil, err
		}
		p.cancels = append(p.cancels, cancel)
	}

	p.logger.Debug("page bound", "widgets", len(p.Widgets()), "maps", len(p.maps))
	return p, nil
}

// Load parses markup from r and binds it.
func Load(ctx context.Context, r io.Reader, cfg Config) (*Page, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	return Bind(ctx, doc, cfg)
}

// LoadFile parses and binds the page at path.
func LoadFile(ctx context.Context, path string, cfg Config) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("L030").WithDetail("opening " + path).Wrap(err)
	}
	defer f.Close()
	return Load(ctx, f, cfg)
}

// Document returns the bound document. Callers mutating it directly must
// not use the Page concurrently.
func (p *Page) Document() *dom.Document { return p.doc }

// Env returns the widget runtime of the page.
func (p *Page) Env() *widget.Env { return p.env }

// Widgets returns the widgets bound eagerly by tables.
func (p *Page) Widgets() []widget.Widget {
	var out []widget.Widget
	for _, t := range p.tables {
		out = append(out, t.Bound()...)
	}
	return out
}

// Replay dispatches a raw event written "<selector>:<event>" and returns
// the mutations it caused.
func (p *Page) Replay(spec string) ([]dom.MutationRecord, error) {
	r, err := binding.ParseReplay(spec)
	if err != nil {
		return nil, err
	}
	return p.Dispatch(r)
}

// Dispatch applies r and returns the mutations it caused, in order.
func (p *Page) Dispatch(r binding.Replay) ([]dom.MutationRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, errors.New("L012").WithDetail("page is closed")
	}

	var records []dom.MutationRecord
	stop := p.doc.Observe(func(rec dom.MutationRecord) {
		records = append(records, rec)
	})
	defer stop()

	if _, err := r.Apply(p.doc); err != nil {
		return nil, err
	}
	p.logger.Debug("event replayed", "replay", r.String(), "mutations", len(records))
	return records, nil
}

// Observe registers fn for every mutation of the document.
func (p *Page) Observe(fn func(dom.MutationRecord)) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Observe(fn)
}

// Render writes the current markup to w.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc.Render(w)
}

// HTML returns the current markup.
func (p *Page) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close removes the map listeners and destroys every widget.
func (p *Page) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for _, cancel := range p.cancels {
		cancel()
	}
	p.cancels = nil
	for _, m := range p.maps {
		m.Destroy()
	}
	for i := len(p.tables) - 1; i >= 0; i-- {
		p.tables[i].Destroy()
	}
}
