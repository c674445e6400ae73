// Package sym provides the interned-symbol table. The core never parses
// identifier text: every name that reaches the pipeline is a Symbol, and
// Symbols compare and hash by identity.
package sym

import "sync"

// Symbol is an interned identifier. The zero value is not a valid symbol.
type Symbol struct {
	id   int
	name string
}

// String returns the symbol's original text. Only diagnostics and codegen
// labels should call this; no stage may branch on it.
func (s Symbol) String() string { return s.name }

// Table is the process-wide, monotonic, append-only interner. A single
// Table may be shared across compilations; it never shrinks.
type Table struct {
	mu      sync.RWMutex
	byName  map[string]Symbol
	entries []string
}

// NewTable creates an empty interner.
func NewTable() *Table {
	return &Table{byName: make(map[string]Symbol, 64)}
}

// Intern returns the Symbol for name, creating it on first use.
func (t *Table) Intern(name string) Symbol {
	t.mu.RLock()
	if s, ok := t.byName[name]; ok {
		t.mu.RUnlock()
		return s
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.byName[name]; ok {
		return s
	}
	s := Symbol{id: len(t.entries), name: name}
	t.entries = append(t.entries, name)
	t.byName[name] = s
	return s
}

// Gensym produces symbols with a fixed prefix, distinct from every other
// name it has minted since it was created or last Reset; after a Reset
// the counter restarts and earlier names are minted again. Counters are
// per-compilation: callers
// construct a new Gensym for each top-level compilation or each ANF
// normalization pass, never share one across runs.
type Gensym struct {
	table   *Table
	prefix  string
	counter int
}

// NewGensym creates a fresh-name generator backed by table, using prefix
// as the fixed prefix for every generated name.
func NewGensym(table *Table, prefix string) *Gensym {
	return &Gensym{table: table, prefix: prefix}
}

// Next advances the counter and returns the Symbol named prefix followed
// by the counter value.
func (g *Gensym) Next() Symbol {
	g.counter++
	return g.table.Intern(namePrefixed(g.prefix, g.counter))
}

// Derive returns a fresh Symbol formed by appending the generator's next
// suffix to base's text, so the renamed symbol still reads as the source
// name it came from. The "$" separator cannot occur in a source
// identifier, which keeps derived names disjoint from everything the
// parser can produce.
func (g *Gensym) Derive(base Symbol) Symbol {
	g.counter++
	return g.table.Intern(namePrefixed(base.name+"$", g.counter))
}

// Reset restarts the counter. Used at the start of each ANF normalization
// pass, which draws its fresh names from a gensym reset at that pass's
// start.
func (g *Gensym) Reset() { g.counter = 0 }

func namePrefixed(prefix string, n int) string {
	buf := make([]byte, 0, len(prefix)+8)
	buf = append(buf, prefix...)
	buf = appendInt(buf, n)
	return string(buf)
}

func appendInt(buf []byte, n int) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}
