package can

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/karstlang/karst/frontend/ast"
	"github.com/karstlang/karst/frontend/ir"
	"github.com/karstlang/karst/frontend/types"
	"github.com/karstlang/karst/util"
	"github.com/xtgo/set"
)

// NamedVariable is a type variable the user wrote by name, together with
// the region where the name first occurred in the annotation.
type NamedVariable struct {
	Variable types.Variable
	Name     string
	Region   ast.Range
}

// VariableWithRegion is an anonymous variable together with the region of
// the token that minted it.
type VariableWithRegion struct {
	Variable types.Variable
	Region   ast.Range
}

// IntroducedVariables records every type variable minted while
// canonicalizing a single annotation, partitioned by how it was introduced.
type IntroducedVariables struct {
	wildcards          []VariableWithRegion
	inferred           []VariableWithRegion
	lambdaSets         []types.Variable
	named              []NamedVariable
	hostExposedAliases map[ir.Symbol]types.Variable
}

func NewIntroducedVariables() *IntroducedVariables {
	return &IntroducedVariables{hostExposedAliases: map[ir.Symbol]types.Variable{}}
}

// InsertNamed records a user-written type variable. Inserting the same name
// or the same variable twice is a bug in the caller, which must look the
// name up first and reuse the existing variable.
func (iv *IntroducedVariables) InsertNamed(name string, variable types.Variable, region ast.Range) {
	for _, nv := range iv.named {
		if nv.Name == name {
			panic(fmt.Sprintf("named variable '%s' introduced twice in one annotation", name))
		}
		if nv.Variable == variable {
			panic(fmt.Sprintf("variable %s introduced twice in one annotation", variable))
		}
	}
	iv.named = append(iv.named, NamedVariable{Variable: variable, Name: name, Region: region})
}

func (iv *IntroducedVariables) InsertWildcard(variable types.Variable, region ast.Range) {
	iv.wildcards = append(iv.wildcards, VariableWithRegion{Variable: variable, Region: region})
}

func (iv *IntroducedVariables) InsertInferred(variable types.Variable, region ast.Range) {
	iv.inferred = append(iv.inferred, VariableWithRegion{Variable: variable, Region: region})
}

func (iv *IntroducedVariables) InsertLambdaSet(variable types.Variable) {
	iv.lambdaSets = append(iv.lambdaSets, variable)
}

func (iv *IntroducedVariables) InsertHostExposedAlias(symbol ir.Symbol, variable types.Variable) {
	iv.hostExposedAliases[symbol] = variable
}

// VarByName returns the variable previously introduced under name, if any.
func (iv *IntroducedVariables) VarByName(name string) (types.Variable, bool) {
	for _, nv := range iv.named {
		if nv.Name == name {
			return nv.Variable, true
		}
	}
	return 0, false
}

// NameByVar returns the name under which variable was introduced, if any.
func (iv *IntroducedVariables) NameByVar(variable types.Variable) (string, bool) {
	for _, nv := range iv.named {
		if nv.Variable == variable {
			return nv.Name, true
		}
	}
	return "", false
}

// Named returns the named entries in insertion order.
func (iv *IntroducedVariables) Named() []NamedVariable { return iv.named }

// Wildcards returns the wildcard entries in insertion order.
func (iv *IntroducedVariables) Wildcards() []VariableWithRegion { return iv.wildcards }

// Inferred returns the inferred entries in insertion order.
func (iv *IntroducedVariables) Inferred() []VariableWithRegion { return iv.inferred }

// LambdaSets returns the lambda-set variables in insertion order.
func (iv *IntroducedVariables) LambdaSets() []types.Variable { return iv.lambdaSets }

// HostExposedAliases returns the alias-symbol to solver-variable mapping.
func (iv *IntroducedVariables) HostExposedAliases() map[ir.Symbol]types.Variable {
	return iv.hostExposedAliases
}

// Union merges other into iv. Wildcards, inferred, lambda-set and
// host-exposed entries are concatenated; named entries are merged by name,
// keeping the entry of whichever ledger listed a name first.
func (iv *IntroducedVariables) Union(other *IntroducedVariables) {
	iv.wildcards = append(iv.wildcards, other.wildcards...)
	iv.inferred = append(iv.inferred, other.inferred...)
	iv.lambdaSets = append(iv.lambdaSets, other.lambdaSets...)
	for sym, v := range other.hostExposedAliases {
		iv.hostExposedAliases[sym] = v
	}

	merged := append(slices.Clone(iv.named), other.named...)
	sort.Stable(namedByName(merged))
	n := set.Uniq(namedByName(merged))
	iv.named = merged[:n]
}

// UnionOwned is Union for a ledger the caller will not use again.
func (iv *IntroducedVariables) UnionOwned(other *IntroducedVariables) {
	iv.Union(other)
}

// AllVariables yields every variable in the ledger, across all buckets.
func (iv *IntroducedVariables) AllVariables() iter.Seq[types.Variable] {
	fromRegioned := func(v VariableWithRegion) types.Variable { return v.Variable }
	return util.ConcatIter(
		util.MapIter(slices.Values(iv.wildcards), fromRegioned),
		util.MapIter(slices.Values(iv.inferred), fromRegioned),
		slices.Values(iv.lambdaSets),
		util.MapIter(slices.Values(iv.named), func(nv NamedVariable) types.Variable { return nv.Variable }),
		maps.Values(iv.hostExposedAliases),
	)
}

// namedByName sorts named entries by name only, so a stable sort followed
// by set.Uniq keeps the first entry seen for each name.
type namedByName []NamedVariable

func (s namedByName) Len() int           { return len(s) }
func (s namedByName) Less(i, j int) bool { return s[i].Name < s[j].Name }
func (s namedByName) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
