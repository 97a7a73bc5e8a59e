package toc

import (
	"encoding/json"
	"log/slog"
	"regexp"
)

const (
	// BeginComment is the bare begin sentinel.
	BeginComment = "<!-- BEGIN mktoc -->"
	// EndComment is the end sentinel.
	EndComment = "<!-- END mktoc -->"

	DefaultMinDepth = 1
	DefaultMaxDepth = 6
)

// Config holds the options for a single ToC generation.
type Config struct {
	MinDepth      int  `json:"min_depth"`
	MaxDepth      int  `json:"max_depth"`
	WrapInDetails bool `json:"wrap_in_details"`

	// StartComment is the begin sentinel written back into the document,
	// including any embedded JSON. It is derived, never decoded from JSON.
	StartComment string `json:"-"`
}

// DefaultConfig returns a Config covering every heading level.
func DefaultConfig() Config {
	return Config{
		MinDepth:     DefaultMinDepth,
		MaxDepth:     DefaultMaxDepth,
		StartComment: BeginComment,
	}
}

// normalize resets out-of-range depth bounds to their defaults and fills in
// a missing start comment. Reset values are reported as warnings on log.
func (c Config) normalize(log *slog.Logger) Config {
	if c.MaxDepth < 1 || c.MaxDepth > 6 {
		log.Warn("max_depth out of bound, using default",
			"max_depth", c.MaxDepth, "default", DefaultMaxDepth)
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MinDepth < 1 || c.MinDepth > 6 {
		log.Warn("min_depth out of bound, using default",
			"min_depth", c.MinDepth, "default", DefaultMinDepth)
		c.MinDepth = DefaultMinDepth
	}
	if c.StartComment == "" {
		c.StartComment = BeginComment
	}
	return c
}

// Source tells where a resolved Config came from.
type Source int

const (
	// SourceFallback means the caller-supplied config was used.
	SourceFallback Source = iota
	// SourceEmbedded means the config was parsed from the begin sentinel.
	SourceEmbedded
)

func (s Source) String() string {
	switch s {
	case SourceEmbedded:
		return "embedded"
	default:
		return "fallback"
	}
}

// Resolution is the effective configuration for a document.
type Resolution struct {
	Config Config
	Source Source
}

var embeddedConfigPattern = regexp.MustCompile(`<!--\s*BEGIN mktoc\s*(\{.*\})\s*-->`)

// EmbeddedConfig locates the first begin sentinel carrying a JSON object.
// It returns the whole sentinel text and the raw JSON.
func EmbeddedConfig(text string) (comment, raw string, ok bool) {
	m := embeddedConfigPattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[0], m[1], true
}

// ParseConfig decodes an embedded JSON object on top of DefaultConfig.
// Unknown fields are ignored and missing fields keep their defaults. The
// result is not normalized.
func ParseConfig(raw string) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
