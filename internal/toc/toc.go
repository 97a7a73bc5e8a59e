package toc

import "log/slog"

// Generator builds tables of contents. The zero value is ready to use and
// logs to slog.Default().
type Generator struct {
	Logger *slog.Logger
}

// NewGenerator creates a Generator logging to log. A nil log means
// slog.Default().
func NewGenerator(log *slog.Logger) *Generator {
	return &Generator{Logger: log}
}

func (g *Generator) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// Resolve returns the effective configuration for text. A JSON object
// embedded in the begin sentinel takes precedence over fallback; when there
// is none, or it does not decode, fallback is used.
func (g *Generator) Resolve(text string, fallback Config) Resolution {
	log := g.logger()

	if comment, raw, ok := EmbeddedConfig(text); ok {
		cfg, err := ParseConfig(raw)
		if err == nil {
			cfg.StartComment = comment
			return Resolution{Config: cfg.normalize(log), Source: SourceEmbedded}
		}
		log.Debug("ignoring embedded config", "config", raw, "error", err)
	}

	return Resolution{Config: fallback.normalize(log), Source: SourceFallback}
}

// Generate renders the ToC block for text using the resolved configuration,
// without splicing it into the document.
func (g *Generator) Generate(text string, fallback Config) string {
	cfg := g.Resolve(text, fallback).Config
	return Render(Headings(text, cfg.MinDepth, cfg.MaxDepth), cfg)
}

// MakeTOC regenerates the ToC region of text. Documents without sentinels
// come back unchanged.
func (g *Generator) MakeTOC(text string, fallback Config) string {
	res := g.Resolve(text, fallback)
	cfg := res.Config

	g.logger().Debug("generating table of contents",
		"config_source", res.Source.String(),
		"min_depth", cfg.MinDepth,
		"max_depth", cfg.MaxDepth,
		"wrap_in_details", cfg.WrapInDetails,
	)

	rendered := Render(Headings(text, cfg.MinDepth, cfg.MaxDepth), cfg)
	return Splice(text, rendered)
}

// MakeTOC regenerates the ToC region of text with a default Generator.
func MakeTOC(text string, fallback Config) string {
	var g Generator
	return g.MakeTOC(text, fallback)
}
