package catalog

// DefaultGlyph is shown for icon keys the registry does not know.
const DefaultGlyph = "⚙"

// Icons maps catalog icon keys to display glyphs. It is read-only after
// construction and shared by every component that draws an agent type.
type Icons struct {
	glyphs   map[string]string
	fallback string
}

// NewIcons copies glyphs into a new registry.
func NewIcons(glyphs map[string]string, fallback string) Icons {
	m := make(map[string]string, len(glyphs))
	for k, v := range glyphs {
		m[k] = v
	}
	if fallback == "" {
		fallback = DefaultGlyph
	}
	return Icons{glyphs: m, fallback: fallback}
}

// Glyph returns the glyph for key, or the fallback glyph.
func (i Icons) Glyph(key string) string {
	if g, ok := i.glyphs[key]; ok {
		return g
	}
	if i.fallback == "" {
		return DefaultGlyph
	}
	return i.fallback
}

// With returns a copy of the registry with extra overrides applied.
func (i Icons) With(overrides map[string]string) Icons {
	merged := make(map[string]string, len(i.glyphs)+len(overrides))
	for k, v := range i.glyphs {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return Icons{glyphs: merged, fallback: i.fallback}
}

// DefaultIcons covers the icon keys used by the built-in agent types.
var DefaultIcons = NewIcons(map[string]string{
	"chart-line":     "📈",
	"mail":           "✉",
	"message-square": "💬",
	"users":          "👥",
	"target":         "🎯",
	"trello":         "📋",
	"headphones":     "🎧",
	"ticket":         "🎫",
	"building":       "🏢",
	"zap":            "⚡",
	"brain":          "🧠",
	"database":       "🗄",
	"cog":            "⚙",
	"megaphone":      "📢",
	"dollar":         "💰",
}, DefaultGlyph)
