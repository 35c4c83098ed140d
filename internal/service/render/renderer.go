package render

import (
	"fmt"
	"log/slog"

	"github.com/youngkeol/notion-blog/internal/domain"
	"github.com/youngkeol/notion-blog/internal/domain/models/content"
	"github.com/youngkeol/notion-blog/internal/domain/models/render"
	"github.com/youngkeol/notion-blog/internal/logfields"
	"github.com/youngkeol/notion-blog/internal/metrics"
)

// DefaultMaxRenderDepth bounds block recursion when rendering
const DefaultMaxRenderDepth = 32

// Renderer turns materialized blocks into output nodes. It holds no per-call state and
// is safe for concurrent use.
type Renderer struct {
	layout   Layout
	maxDepth int
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLayout overrides the column geometry
func WithLayout(l Layout) Option {
	return func(r *Renderer) { r.layout = l }
}

// WithMaxDepth overrides the recursion bound
func WithMaxDepth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Renderer) { r.recorder = metrics.OrNoop(rec) }
}

// NewRenderer creates a renderer with the default layout and depth bound
func NewRenderer(logger *slog.Logger, opts ...Option) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{
		layout:   DefaultLayout(),
		maxDepth: DefaultMaxRenderDepth,
		logger:   logger,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// renderPass carries the state of one render call
type renderPass struct {
	*Renderer
	blocks   content.BlockMap
	visited  map[string]struct{}
	exceeded bool
}

func (r *Renderer) newPass(blocks content.BlockMap) *renderPass {
	return &renderPass{Renderer: r, blocks: blocks, visited: make(map[string]struct{})}
}

// Render renders one block and its descendants. Unsupported blocks yield nil.
func (r *Renderer) Render(b content.Block, blocks content.BlockMap) *render.Node {
	return r.newPass(blocks).render(b, 0)
}

// RenderDocument renders the tree's root children into a document node. When the block
// nesting exceeds the depth bound the partial document is returned with ErrDepthExceeded.
func (r *Renderer) RenderDocument(tree *content.DocumentTree) (*render.Node, error) {
	root, ok := tree.Root()
	if !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("root block %s not in tree", tree.RootID)}
	}

	p := r.newPass(tree.Blocks)
	p.visited[root.ID] = struct{}{}
	doc := &render.Node{Kind: render.KindDocument, ID: root.ID}

	ids := root.Content
	if len(ids) == 0 {
		ids = IDs(FindChildren(root.ID, tree.Blocks))
	}
	doc.Children = p.renderGroups(GroupSiblings(ids, tree.Blocks), 1)

	if p.exceeded {
		return doc, fmt.Errorf("render document %s: %w", root.ID, domain.ErrDepthExceeded)
	}
	return doc, nil
}

func (p *renderPass) render(b content.Block, depth int) *render.Node {
	if depth > p.maxDepth {
		if !p.exceeded {
			p.logger.Warn("render depth exceeded, dropping subtree",
				logfields.BlockID(b.ID), logfields.Depth(depth))
		}
		p.exceeded = true
		p.recorder.IncPartialFailure(metrics.PartialRenderDepth)
		return nil
	}
	if _, seen := p.visited[b.ID]; seen {
		p.logger.Warn("block rendered twice, skipping", logfields.BlockID(b.ID))
		return nil
	}
	p.visited[b.ID] = struct{}{}

	switch b.Type {
	case content.BlockPage:
		return &render.Node{Kind: render.KindDocument, ID: b.ID, Children: p.children(b, depth)}
	case content.BlockParagraph:
		return p.textNode(render.KindParagraph, b, depth, true)
	case content.BlockHeading1, content.BlockHeading2, content.BlockHeading3:
		n := p.textNode(render.KindHeading, b, depth, false)
		n.Level = headingLevel(b.Type)
		return n
	case content.BlockBulletedListItem, content.BlockNumberedListItem:
		return p.textNode(render.KindListItem, b, depth, false)
	case content.BlockToDo:
		n := p.textNode(render.KindToDo, b, depth, false)
		checked := b.Checked
		n.Checked = &checked
		return n
	case content.BlockToggle:
		return p.textNode(render.KindToggle, b, depth, false)
	case content.BlockQuote:
		return p.textNode(render.KindQuote, b, depth, false)
	case content.BlockCallout:
		n := p.textNode(render.KindCallout, b, depth, false)
		n.Icon = b.Icon
		return n
	case content.BlockCode:
		return codeNode(b)
	case content.BlockImage:
		return &render.Node{Kind: render.KindImage, ID: b.ID, Src: b.URL, Caption: ComposeRuns(b.Caption, false)}
	case content.BlockVideo:
		return &render.Node{Kind: render.KindVideo, ID: b.ID, Src: b.URL, Caption: ComposeRuns(b.Caption, false)}
	case content.BlockDivider:
		return &render.Node{Kind: render.KindDivider, ID: b.ID}
	case content.BlockBookmark:
		return &render.Node{Kind: render.KindBookmark, ID: b.ID, Href: b.URL, Target: linkTarget,
			Caption: ComposeRuns(b.Caption, false)}
	case content.BlockEquation:
		return &render.Node{Kind: render.KindEquation, ID: b.ID, Text: b.Expression}
	case content.BlockColumnList:
		return p.columnList(b, depth)
	case content.BlockColumn:
		return p.column(b, p.siblingColumns(b), depth)
	case content.BlockTable:
		return tableNode(b, TableRows(b.ID, p.blocks))
	case content.BlockTableRow:
		row := rowNode(b, len(b.Cells))
		return &row
	default:
		p.logger.Debug("unsupported block type", logfields.BlockID(b.ID),
			slog.String("type", string(b.Type)), slog.String("raw_type", b.RawType))
		p.recorder.IncUnsupportedBlock(unsupportedLabel(b))
		return nil
	}
}

func (p *renderPass) textNode(kind render.Kind, b content.Block, depth int, placeholder bool) *render.Node {
	n := &render.Node{Kind: kind, ID: b.ID, Inlines: ComposeRuns(b.RichText, placeholder)}
	if b.Color != "" && b.Color != defaultColor {
		n.Color = b.Color
	}
	n.Children = p.children(b, depth)
	return n
}

func (p *renderPass) children(b content.Block, depth int) []render.Node {
	if !b.HasChildren && b.Type != content.BlockPage {
		return nil
	}
	return p.renderGroups(GroupBlocks(FindChildren(b.ID, p.blocks), p.blocks), depth+1)
}

// renderGroups renders grouped siblings at depth; list groups become one list node
func (p *renderPass) renderGroups(groups []Group, depth int) []render.Node {
	var out []render.Node
	for _, g := range groups {
		if g.Block != nil {
			if n := p.render(*g.Block, depth); n != nil {
				out = append(out, *n)
			}
			continue
		}
		list := render.Node{Kind: render.KindList, Variant: listVariant(g.List.Variant), ID: g.List.Members[0].ID}
		for _, m := range g.List.Members {
			if n := p.render(m, depth); n != nil {
				list.Children = append(list.Children, *n)
			}
		}
		if len(list.Children) > 0 {
			out = append(out, list)
		}
	}
	return out
}

func (p *renderPass) columnList(b content.Block, depth int) *render.Node {
	n := &render.Node{Kind: render.KindColumnList, ID: b.ID}
	for _, c := range FindChildren(b.ID, p.blocks) {
		if c.Type != content.BlockColumn {
			continue
		}
		n.ColumnCount++
		if col := p.render(c, depth+1); col != nil {
			n.Children = append(n.Children, *col)
		}
	}
	return n
}

func (p *renderPass) column(b content.Block, columns, depth int) *render.Node {
	return &render.Node{
		Kind:     render.KindColumn,
		ID:       b.ID,
		Width:    ColumnWidth(b.WidthRatio, p.layout.ContentWidth, p.layout.ColumnGutter, columns),
		Children: p.children(b, depth),
	}
}

// siblingColumns counts the columns sharing b's column list
func (p *renderPass) siblingColumns(b content.Block) int {
	n := 0
	for _, c := range FindChildren(b.ParentID, p.blocks) {
		if c.Type == content.BlockColumn {
			n++
		}
	}
	return max(n, 1)
}

func codeNode(b content.Block) *render.Node {
	source := b.PlainText()
	if IsDiagram(b.Language) {
		return &render.Node{Kind: render.KindDiagram, ID: b.ID, Language: diagramLanguage, Text: source}
	}
	return &render.Node{
		Kind:     render.KindCode,
		ID:       b.ID,
		Language: HighlighterLanguage(b.Language),
		Text:     source,
		Caption:  ComposeRuns(b.Caption, false),
	}
}

func headingLevel(t content.BlockType) int {
	switch t {
	case content.BlockHeading1:
		return 1
	case content.BlockHeading2:
		return 2
	default:
		return 3
	}
}

func listVariant(t content.BlockType) string {
	if t == content.BlockNumberedListItem {
		return render.VariantNumbered
	}
	return render.VariantBulleted
}

func unsupportedLabel(b content.Block) string {
	if b.RawType != "" {
		return b.RawType
	}
	return string(b.Type)
}
