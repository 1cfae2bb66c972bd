package can

import (
	"github.com/karstlang/karst/frontend/ast"
	"github.com/karstlang/karst/frontend/ir"
	"github.com/karstlang/karst/frontend/types"
)

type scopeEntry struct {
	symbol ir.Symbol
	region ast.Range
}

// Scope resolves type names to symbols and symbols to alias definitions
// within one module during canonicalization.
type Scope struct {
	home     ir.ModuleID
	identIDs *ir.IdentIDs
	names    map[string]scopeEntry
	aliases  map[ir.Symbol]types.Alias
}

func NewScope(home ir.ModuleID, identIDs *ir.IdentIDs) *Scope {
	return &Scope{
		home:     home,
		identIDs: identIDs,
		names:    map[string]scopeEntry{},
		aliases:  map[ir.Symbol]types.Alias{},
	}
}

// LookupName resolves an unqualified type name visible in this scope.
func (s *Scope) LookupName(name string) (ir.Symbol, bool) {
	entry, ok := s.names[name]
	return entry.symbol, ok
}

// LookupAlias returns the alias definition registered for symbol, if any.
func (s *Scope) LookupAlias(symbol ir.Symbol) (types.Alias, bool) {
	alias, ok := s.aliases[symbol]
	return alias, ok
}

// Introduce binds name to a fresh symbol in the home module. If the name is
// already bound it returns the existing binding's region and ok=false; the
// fresh symbol is still returned so callers can keep canonicalizing with it.
func (s *Scope) Introduce(name string, region ast.Range) (ir.Symbol, ast.Range, bool) {
	symbol := ir.Symbol{Module: s.home, Ident: s.identIDs.GetOrInsert(name)}
	if existing, taken := s.names[name]; taken {
		return symbol, existing.region, false
	}
	s.names[name] = scopeEntry{symbol: symbol, region: region}
	return symbol, ast.Range{}, true
}

// Import binds name to a symbol from another module, without shadow checks.
func (s *Scope) Import(name string, symbol ir.Symbol) {
	s.names[name] = scopeEntry{symbol: symbol}
}

// AddAlias registers an alias definition under symbol, making it visible to
// the rest of the module.
func (s *Scope) AddAlias(symbol ir.Symbol, alias types.Alias) {
	s.aliases[symbol] = alias
}

// Aliases returns the live alias table. Mutating it affects the scope.
func (s *Scope) Aliases() map[ir.Symbol]types.Alias { return s.aliases }
