package can

import (
	"github.com/karstlang/karst/frontend/ir"
	"github.com/karstlang/karst/frontend/karsterr"
	"github.com/karstlang/karst/internal/log"
)

var logger = log.DefaultLogger.With("section", "can")

// Env carries the per-module state the canonicalizer needs that outlives
// a single annotation: the home module's identity, its identifier table,
// what other modules expose, and the diagnostics sink.
type Env struct {
	Home     ir.ModuleID
	IdentIDs *ir.IdentIDs
	Problems *karsterr.Errors

	// exposed maps a module name to the type idents it exposes.
	exposed map[string]map[string]ir.Symbol
}

func NewEnv(home ir.ModuleID, identIDs *ir.IdentIDs) *Env {
	return &Env{
		Home:     home,
		IdentIDs: identIDs,
		Problems: &karsterr.Errors{},
		exposed:  map[string]map[string]ir.Symbol{},
	}
}

// Expose makes ident from module visible for qualified lookups.
func (env *Env) Expose(module string, ident string, symbol ir.Symbol) {
	mod, ok := env.exposed[module]
	if !ok {
		mod = map[string]ir.Symbol{}
		env.exposed[module] = mod
	}
	mod[ident] = symbol
}

// QualifiedLookup resolves module.ident against the imported modules.
func (env *Env) QualifiedLookup(module string, ident string) (ir.Symbol, bool) {
	mod, ok := env.exposed[module]
	if !ok {
		return ir.Symbol{}, false
	}
	symbol, ok := mod[ident]
	return symbol, ok
}
