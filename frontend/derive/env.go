package derive

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/karstlang/karst/frontend/ir"
	"github.com/karstlang/karst/frontend/types"
)

// debugSymbolNames controls whether generated symbols carry a readable,
// disambiguated name or just a bare unique id.
const debugSymbolNames = true

// Mode selects which relation a unification establishes.
type Mode uint8

const (
	// ModeEq requires both sides to be exactly the same type.
	ModeEq Mode = iota
	// ModeLambdaSetSpecialization unifies an ability member's generic
	// signature against a concrete specialization, collecting the lambda
	// sets the specialization must fill in.
	ModeLambdaSetSpecialization
)

// Unified is the outcome of one unification.
type Unified struct {
	Ok bool
	// LambdaSetsToSpecialize maps each lambda-set region of the generic
	// signature to the lambda set variables found for it.
	LambdaSetsToSpecialize map[uint8][]types.Variable
}

// Unifier is the solver's unification entry point. This package drives it
// but never implements it.
type Unifier interface {
	Unify(subs *types.Subs, left, right types.Variable, mode Mode) Unified
}

// ExposedBuiltinTypes supplies the stored generic signatures of builtin
// ability members, copied into a substitution store on demand.
type ExposedBuiltinTypes interface {
	// ImportVariable copies symbol's signature into subs and returns its
	// root variable.
	ImportVariable(subs *types.Subs, symbol ir.Symbol) (types.Variable, bool)
}

// SpecializationLambdaSets maps each lambda-set region of an ability
// member's signature to the single lambda set variable the specialization
// provides for it.
type SpecializationLambdaSets = map[uint8]types.Variable

// Env bridges key extraction to the unifier and symbol tables during
// derived-code generation.
type Env struct {
	Subs            *types.Subs
	ExposedTypes    ExposedBuiltinTypes
	DerivedIdentIDs *ir.IdentIDs
	Unifier         Unifier
}

// NewSymbol mints a guaranteed-unique symbol in the derived-implementations
// namespace, named after nameHint where debug names are on.
func (e *Env) NewSymbol(nameHint string) ir.Symbol {
	if !debugSymbolNames {
		return e.UniqueSymbol()
	}
	for i := 1; ; i++ {
		candidate := nameHint
		if i > 1 {
			candidate = fmt.Sprintf("%s%d", nameHint, i)
		}
		if _, taken := e.DerivedIdentIDs.GetID(candidate); taken {
			continue
		}
		symbol := ir.Symbol{Module: ir.ModuleDerived, Ident: e.DerivedIdentIDs.GetOrInsert(candidate)}
		logger.Debug("minted derived symbol", "name", candidate, "symbol", symbol.String())
		return symbol
	}
}

// UniqueSymbol mints a derived-namespace symbol with no attached name.
func (e *Env) UniqueSymbol() ir.Symbol {
	return ir.Symbol{Module: ir.ModuleDerived, Ident: e.DerivedIdentIDs.GenUnique()}
}

// ImportBuiltinSymbolVar copies a builtin's generic signature into the
// current substitution store, with every rigid variable re-instantiated as
// flex so it can unify freely here.
func (e *Env) ImportBuiltinSymbolVar(symbol ir.Symbol) types.Variable {
	v, ok := e.ExposedTypes.ImportVariable(e.Subs, symbol)
	if !ok {
		panic(errors.Errorf("builtin %s has no exposed type signature", symbol))
	}
	types.InstantiateRigids(e.Subs, v)
	return v
}

// Unify establishes equality between two variables. This package only ever
// unifies types against the immediates and keys it derived itself, so a
// failure here can only mean a bug in the deriver; it is never recovered.
func (e *Env) Unify(left, right types.Variable) {
	unified := e.Unifier.Unify(e.Subs, left, right, ModeEq)
	if !unified.Ok {
		panic(errors.Errorf("unification failed in deriver between %s and %s", left, right))
	}
	if len(unified.LambdaSetsToSpecialize) > 0 {
		panic(errors.Errorf("equality unification in deriver left %d lambda sets to specialize",
			len(unified.LambdaSetsToSpecialize)))
	}
}

// GetSpecializationLambdaSets unifies a concrete specialization type
// against abilityMember's generic signature and extracts, per lambda-set
// region, the lambda set the specialization needs filled in.
func (e *Env) GetSpecializationLambdaSets(specialization types.Variable, abilityMember ir.Symbol) SpecializationLambdaSets {
	signature := e.ImportBuiltinSymbolVar(abilityMember)
	unified := e.Unifier.Unify(e.Subs, specialization, signature, ModeLambdaSetSpecialization)
	if !unified.Ok {
		panic(errors.Errorf("specialization unification failed in deriver for %s", abilityMember))
	}

	lambdaSets := make(SpecializationLambdaSets, len(unified.LambdaSetsToSpecialize))
	for region, vars := range unified.LambdaSetsToSpecialize {
		if len(vars) != 1 {
			panic(errors.Errorf("region %d resolved to %d lambda sets, expected exactly one", region, len(vars)))
		}
		lambdaSets[region] = vars[0]
	}
	return lambdaSets
}
