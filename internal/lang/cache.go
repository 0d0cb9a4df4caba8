package lang

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codescope/codescope/internal/extract"
)

// DefaultCacheSize bounds the number of live parser instances. Each parser
// pins its grammar's C state, so the cache keeps at most this many grammars
// warm and evicts in LRU order.
const DefaultCacheSize = 10

// engine pairs a configured parser with the matching extractor. Engines are
// cached per language, not per file.
type engine struct {
	parser    *sitter.Parser
	extractor extract.Extractor
}

func (e *engine) close() {
	e.parser.Close()
}

// Cache hands out parse engines keyed by language name. It is safe for
// concurrent use; parsing itself is serialized per engine by the outer
// mutex because tree-sitter parsers are single-threaded.
type Cache struct {
	mu      sync.Mutex
	engines *lru.Cache[string, *engine]
	failed  map[string]error
	log     *slog.Logger
}

// NewCache builds a parser cache holding at most size engines. Evicted
// engines release their parser immediately.
func NewCache(size int, log *slog.Logger) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if log == nil {
		log = slog.Default()
	}
	engines, err := lru.NewWithEvict(size, func(name string, e *engine) {
		e.close()
	})
	if err != nil {
		return nil, fmt.Errorf("create parser cache: %w", err)
	}
	return &Cache{
		engines: engines,
		failed:  make(map[string]error),
		log:     log,
	}, nil
}

// Parse parses src as the language registered for path and extracts its
// symbols and imports. Syntax errors in src are not errors here; they
// surface as diagnostics inside the result.
func (c *Cache) Parse(ctx context.Context, path string, src []byte) (*extract.Result, error) {
	cfg, err := Resolve(path)
	if err != nil {
		return nil, err
	}
	return c.parse(ctx, cfg, path, src)
}

func (c *Cache) parse(ctx context.Context, cfg *Config, path string, src []byte) (*extract.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	eng, ok := c.engine(cfg)
	if !ok {
		// The grammar is quarantined for this cache's lifetime; its files
		// index with nothing extracted rather than erroring one by one.
		return &extract.Result{Symbols: []*extract.Symbol{}, Imports: []*extract.Import{}}, nil
	}

	tree, err := eng.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	return eng.extractor.Extract(tree.RootNode(), src), nil
}

// engine returns the cached engine for a language, constructing it on first
// use. A grammar whose construction panics is logged once and remembered as
// failed; it is not retried for the lifetime of the cache.
func (c *Cache) engine(cfg *Config) (eng *engine, ok bool) {
	if e, hit := c.engines.Get(cfg.Name); hit {
		return e, true
	}
	if _, bad := c.failed[cfg.Name]; bad {
		return nil, false
	}

	defer func() {
		if r := recover(); r != nil {
			c.failed[cfg.Name] = fmt.Errorf("grammar %s failed to initialize: %v", cfg.Name, r)
			c.log.Error("grammar initialization failed", "language", cfg.Name, "panic", r)
			eng, ok = nil, false
		}
	}()

	parser := sitter.NewParser()
	parser.SetLanguage(cfg.Language())
	eng = &engine{parser: parser, extractor: cfg.NewExtractor()}
	c.engines.Add(cfg.Name, eng)
	c.log.Debug("parser created", "language", cfg.Name, "cached", c.engines.Len())
	return eng, true
}

// Len reports the number of live cached engines.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engines.Len()
}

// Close evicts every cached engine and releases its parser.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engines.Purge()
}
