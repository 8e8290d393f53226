package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// ThemeStyle selects the glamour style derived from the active Theme rather
// than one of glamour's bundled styles.
const ThemeStyle = "theme"

type rendererKey struct {
	style string
	width int
}

// RendererCache caches glamour renderers by style and width. Creating a
// renderer is expensive and a resize or style switch is rare, so every
// renderer that was ever needed is kept.
type RendererCache struct {
	mu        sync.Mutex
	theme     *Theme
	renderers map[rendererKey]*glamour.TermRenderer
}

// NewRendererCache creates a cache. ThemeStyle renderers use theme; nil means
// DefaultTheme.
func NewRendererCache(theme *Theme) *RendererCache {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &RendererCache{
		theme:     theme,
		renderers: make(map[rendererKey]*glamour.TermRenderer),
	}
}

// Renderer returns the cached renderer for style and width, creating one if
// needed.
func (c *RendererCache) Renderer(style string, width int) (*glamour.TermRenderer, error) {
	if style == "" {
		style = ThemeStyle
	}
	key := rendererKey{style: style, width: width}

	c.mu.Lock()
	defer c.mu.Unlock()
	if r, ok := c.renderers[key]; ok {
		return r, nil
	}

	cfg, err := styleConfig(style, c.theme)
	if err != nil {
		return nil, err
	}
	margin := uint(0)
	cfg.Document.Margin = &margin
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""
	cfg.CodeBlock.Margin = &margin

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(cfg),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	c.renderers[key] = r
	return r, nil
}

// Theme returns the palette used for ThemeStyle.
func (c *RendererCache) Theme() *Theme {
	return c.theme
}

// Len returns the number of cached renderers.
func (c *RendererCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.renderers)
}

// For returns a BlockRenderer bound to style and width.
func (c *RendererCache) For(style string, width int) BlockRenderer {
	return &markdownRenderer{cache: c, style: style, width: width}
}

// RenderMarkdown renders content with the given style and width.
// On error, returns the original content unchanged.
func (c *RendererCache) RenderMarkdown(content, style string, width int) string {
	if content == "" {
		return ""
	}
	rendered, err := c.For(style, width).RenderBlock(content)
	if err != nil {
		return content
	}
	return rendered
}

type markdownRenderer struct {
	cache *RendererCache
	style string
	width int
}

func (m *markdownRenderer) RenderBlock(markdown string) (string, error) {
	r, err := m.cache.Renderer(m.style, m.width)
	if err != nil {
		return "", err
	}
	rendered, err := r.Render(markdown)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(rendered), nil
}

// StyleNames lists the accepted render styles.
func StyleNames() []string {
	names := []string{ThemeStyle}
	for _, name := range []string{
		styles.AsciiStyle,
		styles.DarkStyle,
		styles.DraculaStyle,
		styles.LightStyle,
		styles.NoTTYStyle,
		styles.PinkStyle,
	} {
		if _, ok := styles.DefaultStyles[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// ValidStyle reports whether name is an accepted render style.
func ValidStyle(name string) bool {
	if name == ThemeStyle {
		return true
	}
	_, ok := styles.DefaultStyles[name]
	return ok
}

func styleConfig(style string, theme *Theme) (ansi.StyleConfig, error) {
	if style == ThemeStyle {
		return GlamourStyleFromTheme(theme), nil
	}
	cfg, ok := styles.DefaultStyles[style]
	if !ok || cfg == nil {
		return ansi.StyleConfig{}, fmt.Errorf("unknown render style %q", style)
	}
	// Copy so zeroing margins does not touch glamour's shared defaults.
	return *cfg, nil
}
