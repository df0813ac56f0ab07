package cutedsl

import (
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Cache memoizes compiled templates by their literal source text.
// Compiling the same source twice returns the previously compiled
// renderer. The cache is safe for concurrent use; ownership belongs to
// whoever constructs the templates (typically one per compiler session).
type Cache struct {
	mu       sync.Mutex
	compiled map[string]*template.Template
	compiles int
}

// NewCache creates an empty template cache
func NewCache() *Cache {
	return &Cache{
		compiled: make(map[string]*template.Template),
	}
}

var defaultCache = NewCache()

// DefaultCache returns the process-wide cache templates use unless one
// is injected with WithCache
func DefaultCache() *Cache {
	return defaultCache
}

// Get returns the compiled renderer for source, compiling it at most
// once. Missing placeholder keys fail at render time rather than
// producing "<no value>" holes in generated kernels.
func (c *Cache) Get(source string) (*template.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tmpl, ok := c.compiled[source]; ok {
		return tmpl, nil
	}

	tmpl, err := template.New("kernel").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(source)
	if err != nil {
		return nil, fmt.Errorf("compiling template: %w", err)
	}
	c.compiles++
	c.compiled[source] = tmpl
	return tmpl, nil
}

// Compiles returns how many times Get actually compiled a template,
// as opposed to serving a cached renderer
func (c *Cache) Compiles() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compiles
}
