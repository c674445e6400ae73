package sym

import "testing"

func TestTable_Intern_SameNameReturnsSameSymbol(t *testing.T) {
	table := NewTable()
	a := table.Intern("x")
	b := table.Intern("x")
	if a != b {
		t.Fatalf("interning %q twice must return the same Symbol, got %v and %v", "x", a, b)
	}
}

func TestTable_Intern_DistinctNamesReturnDistinctSymbols(t *testing.T) {
	table := NewTable()
	a := table.Intern("x")
	b := table.Intern("y")
	if a == b {
		t.Fatalf("distinct names must intern to distinct symbols")
	}
}

func TestSymbol_String_RoundTripsOriginalText(t *testing.T) {
	table := NewTable()
	s := table.Intern("countdown")
	if got := s.String(); got != "countdown" {
		t.Fatalf("String() = %q, want %q", got, "countdown")
	}
}

func TestGensym_NextProducesDistinctSymbols(t *testing.T) {
	table := NewTable()
	g := NewGensym(table, "t")

	a := g.Next()
	b := g.Next()
	if a == b {
		t.Fatalf("successive Next() calls must produce distinct symbols, got %v twice", a)
	}
	if a.String() == b.String() {
		t.Fatalf("successive Next() calls must produce distinct names")
	}
}

func TestGensym_Reset_RestartsCounterAndRemintsPriorNames(t *testing.T) {
	table := NewTable()
	g := NewGensym(table, "t")

	first := g.Next() // t1
	g.Reset()
	second := g.Next() // t1 again, interning to the SAME symbol as first

	if first != second {
		t.Fatalf("resetting the counter and re-minting the same name must intern to the same symbol (the table is append-only)")
	}
}

func TestGensym_Derive_AppendsSuffixToBaseName(t *testing.T) {
	table := NewTable()
	g := NewGensym(table, "t")
	x := table.Intern("x")

	a := g.Derive(x)
	b := g.Derive(x)
	if a == b {
		t.Fatalf("deriving twice from the same base must produce distinct symbols")
	}
	if got, want := a.String(), "x$1"; got != want {
		t.Fatalf("Derive() = %q, want %q", got, want)
	}
	if a == x || b == x {
		t.Fatalf("a derived symbol must be distinct from its base")
	}
}

func TestGensym_DifferentPrefixes_NeverCollide(t *testing.T) {
	table := NewTable()
	a := NewGensym(table, "a")
	b := NewGensym(table, "b")

	if a.Next() == b.Next() {
		t.Fatalf("gensyms with different prefixes must never mint the same symbol")
	}
}
