package segment

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// TokenKind is the coarse kind of a top-level markdown token.
type TokenKind int

const (
	KindSpace TokenKind = iota // blank text before the first block
	KindParagraph
	KindHeading
	KindHTML
	KindCode
	KindList
	KindBlockquote
	KindTable
	KindThematicBreak
	KindDefinition // link reference definitions the parser drops from the tree
	KindOther
)

var kindNames = [...]string{
	KindSpace:         "space",
	KindParagraph:     "paragraph",
	KindHeading:       "heading",
	KindHTML:          "html",
	KindCode:          "code",
	KindList:          "list",
	KindBlockquote:    "blockquote",
	KindTable:         "table",
	KindThematicBreak: "hr",
	KindDefinition:    "definition",
	KindOther:         "other",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is one top-level span of the source. Raw texts of consecutive tokens
// concatenate to the tokenized input.
type Token struct {
	Kind TokenKind
	Raw  string
	// Block is set for block-level HTML.
	Block bool
}

// opensKey holds the []opened slice recorded during a single parse.
var opensKey = parser.NewContextKey()

type opened struct {
	node  ast.Node
	start int
}

// openRecorder wraps a block parser and notes the source offset of the line
// on which every top-level block opens. goldmark does not keep node
// positions, so this is how token boundaries are recovered.
type openRecorder struct {
	parser.BlockParser
}

func (r openRecorder) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	_, seg := reader.PeekLine()
	node, state := r.BlockParser.Open(parent, reader, pc)
	if node != nil && parent.Kind() == ast.KindDocument {
		opens, _ := pc.Get(opensKey).([]opened)
		pc.Set(opensKey, append(opens, opened{node: node, start: seg.Start}))
	}
	return node, state
}

func recordingBlockParsers() []util.PrioritizedValue {
	defaults := parser.DefaultBlockParsers()
	wrapped := make([]util.PrioritizedValue, 0, len(defaults))
	for _, v := range defaults {
		wrapped = append(wrapped, util.Prioritized(openRecorder{v.Value.(parser.BlockParser)}, v.Priority))
	}
	return wrapped
}

// oracle is shared; per-parse state lives in the parser.Context.
var oracle = goldmark.New(
	goldmark.WithParser(parser.NewParser(
		parser.WithBlockParsers(recordingBlockParsers()...),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)),
	goldmark.WithExtensions(extension.GFM),
)

type boundary struct {
	start int
	kind  TokenKind
	block bool
}

// Tokenize splits markdown into top-level tokens covering it completely and
// contiguously. A token starts at the beginning of the line where a top-level
// block opens and runs up to the next such line, so blank lines after a block
// belong to that block.
func Tokenize(markdown string) []Token {
	if markdown == "" {
		return nil
	}
	source := []byte(markdown)
	pc := parser.NewContext()
	doc := oracle.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
	opens, _ := pc.Get(opensKey).([]opened)

	recorded := make(map[ast.Node]int, len(opens))
	for _, o := range opens {
		recorded[o.node] = o.start
	}

	var bounds []boundary
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		start, ok := nodeStart(child, recorded)
		if !ok {
			continue
		}
		kind, block := classify(child)
		bounds = append(bounds, boundary{start: lineStart(source, start), kind: kind, block: block})
	}
	// Paragraphs made only of link reference definitions are removed from the
	// tree. Keep their boundary so a definition never glues itself onto the
	// block before it once the document grows.
	for _, o := range opens {
		if o.node.Parent() == nil && o.node.Kind() == ast.KindParagraph {
			bounds = append(bounds, boundary{start: lineStart(source, o.start), kind: KindDefinition})
		}
	}
	sort.SliceStable(bounds, func(i, j int) bool { return bounds[i].start < bounds[j].start })

	tokens := make([]Token, 0, len(bounds)+1)
	prev := 0
	cur := boundary{kind: KindSpace}
	if len(bounds) == 0 && strings.TrimSpace(markdown) != "" {
		cur.kind = KindOther
	}
	for _, b := range bounds {
		if b.start <= prev {
			// Several nodes can open on the same line; the first one in
			// tree order names the token.
			if len(tokens) == 0 && cur.kind == KindSpace {
				cur = b
			}
			continue
		}
		tokens = append(tokens, Token{Kind: cur.kind, Raw: markdown[prev:b.start], Block: cur.block})
		prev = b.start
		cur = b
	}
	return append(tokens, Token{Kind: cur.kind, Raw: markdown[prev:], Block: cur.block})
}

// nodeStart returns the earliest known source offset of a top-level node:
// the recorded open position, or the first line segment found in its block
// descendants for nodes built by transformers (GFM tables) or that replaced
// an earlier node (setext headings).
func nodeStart(n ast.Node, recorded map[ast.Node]int) (int, bool) {
	start, ok := recorded[n]
	if s, found := firstSegment(n); found && (!ok || s < start) {
		start, ok = s, true
	}
	return start, ok
}

func firstSegment(n ast.Node) (int, bool) {
	if n.Type() != ast.TypeBlock {
		return 0, false
	}
	if fc, isFence := n.(*ast.FencedCodeBlock); isFence && fc.Info != nil {
		return fc.Info.Segment.Start, true
	}
	if lines := n.Lines(); lines.Len() > 0 {
		return lines.At(0).Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s, ok := firstSegment(c); ok {
			return s, true
		}
	}
	return 0, false
}

func classify(n ast.Node) (TokenKind, bool) {
	switch n.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		return KindParagraph, false
	case ast.KindHeading:
		return KindHeading, false
	case ast.KindHTMLBlock:
		return KindHTML, true
	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		return KindCode, false
	case ast.KindList:
		return KindList, false
	case ast.KindBlockquote:
		return KindBlockquote, false
	case ast.KindThematicBreak:
		return KindThematicBreak, false
	case east.KindTable:
		return KindTable, false
	}
	return KindOther, false
}

// lineStart moves pos back to the first byte of its line.
func lineStart(source []byte, pos int) int {
	if pos > len(source) {
		pos = len(source)
	}
	for pos > 0 && source[pos-1] != '\n' {
		pos--
	}
	return pos
}
