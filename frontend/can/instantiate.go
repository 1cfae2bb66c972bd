package can

import (
	"fmt"

	"github.com/karstlang/karst/frontend/types"
	"github.com/karstlang/karst/util"
)

// InstantiateAndFreshenAliasType expands an alias body against concrete
// arguments. Each parameter variable maps to its argument; a recursive tag
// union body gets a brand-new recursion variable so separate uses of a
// recursive alias never share recursion identity; every lambda-set
// placeholder is replaced by a fresh variable, recorded in introduced.
// Returns the parameter-name to argument bindings, the freshened lambda
// sets, and the substituted body.
func InstantiateAndFreshenAliasType(
	varStore *types.VarStore,
	introduced *IntroducedVariables,
	params []types.AliasParam,
	args []types.Type,
	lambdaSetVars []types.LambdaSet,
	body types.Type,
) ([]util.Pair[string, types.Type], []types.LambdaSet, types.Type) {
	builder := types.NewSubstitutionsBuilder()
	typeVarToArg := make([]util.Pair[string, types.Type], len(params))
	for i, param := range params {
		builder.Set(param.Var, args[i])
		typeVarToArg[i] = util.NewPair(param.Name, args[i])
	}

	if recursive, ok := body.(types.RecursiveTagUnion); ok {
		builder.Set(recursive.RecVar, types.TypeVariable{V: varStore.Fresh()})
	}

	freshLambdaSets := make([]types.LambdaSet, 0, len(lambdaSetVars))
	for _, ls := range lambdaSetVars {
		placeholder, ok := ls.Inner.(types.TypeVariable)
		if !ok {
			panic(fmt.Sprintf("alias lambda set is not a variable: %s", ls.Inner))
		}
		fresh := varStore.Fresh()
		builder.Set(placeholder.V, types.TypeVariable{V: fresh})
		freshLambdaSets = append(freshLambdaSets, types.LambdaSet{Inner: types.TypeVariable{V: fresh}})
		introduced.InsertLambdaSet(fresh)
	}

	actual := types.Substitute(body, builder.Map())
	return typeVarToArg, freshLambdaSets, actual
}

// FreshenOpaqueDef instantiates an opaque alias with a fresh variable per
// parameter, for uses where no explicit arguments are available. Calling it
// on a structural alias is a programmer error.
func FreshenOpaqueDef(varStore *types.VarStore, alias types.Alias) ([]types.Variable, []types.LambdaSet, types.Type) {
	if alias.Kind != types.AliasOpaque {
		panic("FreshenOpaqueDef called on a structural alias")
	}

	freshVars := make([]types.Variable, len(alias.Params))
	args := make([]types.Type, len(alias.Params))
	for i := range alias.Params {
		freshVars[i] = varStore.Fresh()
		args[i] = types.TypeVariable{V: freshVars[i]}
	}

	// the lambda sets are freshened into a throwaway ledger; opaque
	// references do not contribute to any annotation's ledger
	_, freshLambdaSets, actual := InstantiateAndFreshenAliasType(
		varStore, NewIntroducedVariables(), alias.Params, args, alias.LambdaSetVariables, alias.Typ)
	return freshVars, freshLambdaSets, actual
}
