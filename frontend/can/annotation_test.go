package can

import (
	"github.com/karstlang/karst/frontend/ast"
	"github.com/karstlang/karst/frontend/ir"
	"github.com/karstlang/karst/frontend/karsterr"
	"github.com/karstlang/karst/frontend/types"
	"github.com/stretchr/testify/assert"
	"testing"
)

func testSetup() (*Env, *Scope, *types.VarStore) {
	identIDs := ir.NewIdentIDs()
	env := NewEnv(ir.FirstUserModule, identIDs)
	scope := NewScope(ir.FirstUserModule, identIDs)
	return env, scope, types.NewVarStore()
}

func problemCodes(env *Env) []karsterr.ErrCode {
	var codes []karsterr.ErrCode
	for _, err := range env.Problems.Errors() {
		codes = append(codes, err.Code())
	}
	return codes
}

func TestCanonicalizeBoundVariableReuse(t *testing.T) {
	env, scope, varStore := testSetup()

	annotation := &ast.Function{
		Range: spanAt(1, 20),
		Args: []ast.TypeAnnotation{
			&ast.BoundVariable{Range: spanAt(1, 2), Name: "a"},
			&ast.BoundVariable{Range: spanAt(4, 5), Name: "a"},
		},
		Ret: &ast.BoundVariable{Range: spanAt(9, 10), Name: "a"},
	}

	result := CanonicalizeAnnotation(env, scope, annotation, varStore)
	assert.False(t, env.Problems.HasError())

	fn, ok := result.Typ.(types.Function)
	assert.True(t, ok)
	assert.Equal(t, fn.Args[0], fn.Args[1])
	assert.Equal(t, fn.Args[0], fn.Ret)

	assert.Len(t, result.IntroducedVariables.Named(), 1)
	assert.Len(t, result.IntroducedVariables.LambdaSets(), 1)
	assert.Equal(t, types.TypeVariable{V: result.IntroducedVariables.LambdaSets()[0]}, fn.Closure)
}

func TestCanonicalizeBadTypeArguments(t *testing.T) {
	env, scope, varStore := testSetup()

	pairSym, _, ok := scope.Introduce("Pair", spanAt(1, 5))
	assert.True(t, ok)
	scope.AddAlias(pairSym, types.Alias{
		Region: spanAt(1, 5),
		Params: []types.AliasParam{
			{Name: "a", Var: 100, Region: spanAt(6, 7)},
			{Name: "b", Var: 101, Region: spanAt(8, 9)},
		},
		Typ: types.EmptyRecord{},
	})

	annotation := &ast.Apply{
		Range: spanAt(10, 16),
		Ident: "Pair",
		Args:  []ast.TypeAnnotation{&ast.BoundVariable{Range: spanAt(15, 16), Name: "x"}},
	}

	result := CanonicalizeAnnotation(env, scope, annotation, varStore)

	erroneous, isErr := result.Typ.(types.Erroneous)
	assert.True(t, isErr)
	assert.Equal(t, types.BadTypeArguments{
		Symbol:     pairSym,
		Region:     spanAt(10, 16),
		AliasNeeds: 2,
		TypeGot:    1,
	}, erroneous.Problem)

	assert.Equal(t, []karsterr.ErrCode{karsterr.BadTypeArguments}, problemCodes(env))
	assert.True(t, result.References.Contains(pairSym))
}

func TestCanonicalizeHomeStructuralAliasStaysDelayed(t *testing.T) {
	env, scope, varStore := testSetup()

	idSym, _, _ := scope.Introduce("Id", spanAt(1, 3))
	scope.AddAlias(idSym, types.Alias{
		Params: []types.AliasParam{{Name: "a", Var: 100}},
		Typ:    types.TypeVariable{V: 100},
	})

	result := CanonicalizeAnnotation(env, scope, &ast.Apply{
		Range: spanAt(10, 14),
		Ident: "Id",
		Args:  []ast.TypeAnnotation{&ast.BoundVariable{Range: spanAt(13, 14), Name: "x"}},
	}, varStore)

	delayed, ok := result.Typ.(types.DelayedAlias)
	assert.True(t, ok)
	assert.Equal(t, idSym, delayed.Common.Symbol)
	assert.Len(t, delayed.Common.TypeArguments, 1)
	assert.Equal(t, "a", delayed.Common.TypeArguments[0].Fst)
}

func TestCanonicalizeBuiltinStructuralAliasStaysDelayed(t *testing.T) {
	env, scope, varStore := testSetup()

	// builtins are not imports, so their structural aliases stay symbolic too
	scope.Import("List", ir.SymListList)
	scope.AddAlias(ir.SymListList, types.Alias{
		Params: []types.AliasParam{{Name: "elem", Var: 100}},
		Typ:    types.TypeVariable{V: 100},
	})

	result := CanonicalizeAnnotation(env, scope, &ast.Apply{
		Range: spanAt(10, 16),
		Ident: "List",
		Args:  []ast.TypeAnnotation{&ast.BoundVariable{Range: spanAt(15, 16), Name: "x"}},
	}, varStore)

	delayed, ok := result.Typ.(types.DelayedAlias)
	assert.True(t, ok)
	assert.Equal(t, ir.SymListList, delayed.Common.Symbol)
}

func TestCanonicalizeOpaqueAliasExpandsEagerly(t *testing.T) {
	env, scope, varStore := testSetup()

	ageSym, _, _ := scope.Introduce("Age", spanAt(1, 4))
	scope.AddAlias(ageSym, types.Alias{
		Typ:  types.Apply{Symbol: ir.SymNumU8},
		Kind: types.AliasOpaque,
	})

	result := CanonicalizeAnnotation(env, scope, &ast.Apply{
		Range: spanAt(10, 13),
		Ident: "Age",
	}, varStore)

	instance, ok := result.Typ.(types.AliasInstance)
	assert.True(t, ok)
	assert.Equal(t, ageSym, instance.Symbol)
	assert.Equal(t, types.AliasOpaque, instance.Kind)
	assert.Equal(t, types.Apply{Symbol: ir.SymNumU8}, instance.Actual)
}

func TestCanonicalizeAliasWithLambdaSetsExpandsEagerly(t *testing.T) {
	env, scope, varStore := testSetup()

	effectSym, _, _ := scope.Introduce("Effect", spanAt(1, 7))
	scope.AddAlias(effectSym, types.Alias{
		Params:             []types.AliasParam{{Name: "a", Var: 100}},
		LambdaSetVariables: []types.LambdaSet{{Inner: types.TypeVariable{V: 101}}},
		Typ: types.Function{
			Args:    []types.Type{types.EmptyRecord{}},
			Closure: types.TypeVariable{V: 101},
			Ret:     types.TypeVariable{V: 100},
		},
	})

	result := CanonicalizeAnnotation(env, scope, &ast.Apply{
		Range: spanAt(10, 18),
		Ident: "Effect",
		Args:  []ast.TypeAnnotation{&ast.BoundVariable{Range: spanAt(17, 18), Name: "x"}},
	}, varStore)

	instance, ok := result.Typ.(types.AliasInstance)
	assert.True(t, ok)
	assert.Len(t, instance.LambdaSetVariables, 1)

	// the lambda set was freshened away from the definition's placeholder
	// and recorded in the ledger
	fresh, isVar := instance.LambdaSetVariables[0].Inner.(types.TypeVariable)
	assert.True(t, isVar)
	assert.NotEqual(t, types.Variable(101), fresh.V)
	assert.Equal(t, []types.Variable{fresh.V}, result.IntroducedVariables.LambdaSets())

	fn, isFn := instance.Actual.(types.Function)
	assert.True(t, isFn)
	assert.Equal(t, types.TypeVariable{V: fresh.V}, fn.Closure)
}

func TestCanonicalizeUnrecognizedIdent(t *testing.T) {
	env, scope, varStore := testSetup()

	result := CanonicalizeAnnotation(env, scope, &ast.Apply{
		Range: spanAt(1, 6),
		Ident: "Bogus",
	}, varStore)

	erroneous, ok := result.Typ.(types.Erroneous)
	assert.True(t, ok)
	assert.Equal(t, types.UnrecognizedIdent{Name: "Bogus"}, erroneous.Problem)
	assert.Equal(t, []karsterr.ErrCode{karsterr.UnrecognizedIdent}, problemCodes(env))
}

func TestCanonicalizeQualifiedLookup(t *testing.T) {
	env, scope, varStore := testSetup()
	env.Expose("Json", "Value", ir.Symbol{Module: ir.FirstUserModule + 1, Ident: 0})

	resolved := CanonicalizeAnnotation(env, scope, &ast.Apply{
		Range:  spanAt(1, 11),
		Module: "Json",
		Ident:  "Value",
	}, varStore)
	assert.False(t, env.Problems.HasError())
	assert.IsType(t, types.Apply{}, resolved.Typ)
	assert.True(t, resolved.References.Contains(ir.Symbol{Module: ir.FirstUserModule + 1, Ident: 0}))

	missing := CanonicalizeAnnotation(env, scope, &ast.Apply{
		Range:  spanAt(1, 12),
		Module: "Json",
		Ident:  "Absent",
	}, varStore)
	erroneous, ok := missing.Typ.(types.Erroneous)
	assert.True(t, ok)
	assert.Equal(t, types.QualifiedLookupFailed{Module: "Json", Ident: "Absent"}, erroneous.Problem)
}

func TestCanonicalizeDuplicateRecordFieldLastWins(t *testing.T) {
	env, scope, varStore := testSetup()

	firstRegion := spanAt(2, 10)
	secondRegion := spanAt(12, 20)
	annotation := &ast.Record{
		Range: spanAt(1, 21),
		Fields: []ast.AssignedField{
			&ast.RequiredField{Range: firstRegion, Name: "a", Value: &ast.BoundVariable{Range: spanAt(6, 7), Name: "x"}},
			&ast.RequiredField{Range: secondRegion, Name: "a", Value: &ast.BoundVariable{Range: spanAt(16, 17), Name: "y"}},
		},
	}

	result := CanonicalizeAnnotation(env, scope, annotation, varStore)

	record, ok := result.Typ.(types.Record)
	assert.True(t, ok)
	assert.Len(t, record.Fields, 1)

	yVar, _ := result.IntroducedVariables.VarByName("y")
	assert.Equal(t, types.RecordField{Type: types.TypeVariable{V: yVar}}, record.Fields["a"])

	errs := env.Problems.Errors()
	assert.Len(t, errs, 1)
	dup, isDup := errs[0].(karsterr.NewDuplicateRecordFieldType)
	assert.True(t, isDup)
	assert.Equal(t, "a", dup.FieldName)
	assert.Equal(t, firstRegion, dup.ReplacedRegion)
}

func TestCanonicalizeDuplicateTagLastWins(t *testing.T) {
	env, scope, varStore := testSetup()

	annotation := &ast.TagUnion{
		Range: spanAt(1, 30),
		Tags: []ast.Tag{
			&ast.TagApply{Range: spanAt(2, 10), Name: "Ok", Args: []ast.TypeAnnotation{
				&ast.BoundVariable{Range: spanAt(5, 6), Name: "x"},
			}},
			&ast.TagApply{Range: spanAt(12, 20), Name: "Ok"},
		},
	}

	result := CanonicalizeAnnotation(env, scope, annotation, varStore)

	union, ok := result.Typ.(types.TagUnion)
	assert.True(t, ok)
	assert.Len(t, union.Tags, 1)
	assert.Empty(t, union.Tags[0].Args)

	errs := env.Problems.Errors()
	assert.Len(t, errs, 1)
	dup, isDup := errs[0].(karsterr.NewDuplicateTag)
	assert.True(t, isDup)
	assert.Equal(t, "Ok", dup.TagName)
	assert.Equal(t, spanAt(2, 10), dup.ReplacedRegion)
}

func TestCanonicalizeTagsSortedByName(t *testing.T) {
	env, scope, varStore := testSetup()

	reordered := CanonicalizeAnnotation(env, scope, &ast.TagUnion{
		Range: spanAt(1, 10),
		Tags: []ast.Tag{
			&ast.TagApply{Range: spanAt(2, 3), Name: "B"},
			&ast.TagApply{Range: spanAt(5, 6), Name: "A"},
		},
	}, varStore)

	sorted := CanonicalizeAnnotation(env, scope, &ast.TagUnion{
		Range: spanAt(1, 10),
		Tags: []ast.Tag{
			&ast.TagApply{Range: spanAt(2, 3), Name: "A"},
			&ast.TagApply{Range: spanAt(5, 6), Name: "B"},
		},
	}, varStore)

	union, ok := reordered.Typ.(types.TagUnion)
	assert.True(t, ok)
	assert.Equal(t, "A", union.Tags[0].Name)
	assert.Equal(t, "B", union.Tags[1].Name)
	assert.True(t, types.Equal(reordered.Typ, sorted.Typ))
}

func TestCanonicalizeOpenAndClosedEmptyRecordsDiffer(t *testing.T) {
	env, scope, varStore := testSetup()

	closed := CanonicalizeAnnotation(env, scope, &ast.Record{Range: spanAt(1, 3)}, varStore)
	open := CanonicalizeAnnotation(env, scope, &ast.Record{
		Range: spanAt(1, 4),
		Ext:   &ast.BoundVariable{Range: spanAt(3, 4), Name: "a"},
	}, varStore)

	assert.False(t, env.Problems.HasError())
	assert.Equal(t, types.EmptyRecord{}, closed.Typ)

	// {}a is still a record shape, only open through a; it must not
	// collapse to the bare variable, which would unify with anything
	openRecord, ok := open.Typ.(types.Record)
	assert.True(t, ok)
	assert.Empty(t, openRecord.Fields)
	extVar, ok := open.IntroducedVariables.VarByName("a")
	assert.True(t, ok)
	assert.Equal(t, types.OpenExtension(types.TypeVariable{V: extVar}), openRecord.Ext)
	assert.False(t, types.Equal(closed.Typ, open.Typ))
}

func TestCanonicalizeOpenEmptyTagUnionKeepsUnionShape(t *testing.T) {
	env, scope, varStore := testSetup()

	closed := CanonicalizeAnnotation(env, scope, &ast.TagUnion{Range: spanAt(1, 3)}, varStore)
	open := CanonicalizeAnnotation(env, scope, &ast.TagUnion{
		Range: spanAt(1, 4),
		Ext:   &ast.BoundVariable{Range: spanAt(3, 4), Name: "a"},
	}, varStore)

	assert.False(t, env.Problems.HasError())
	assert.Equal(t, types.EmptyTagUnion{}, closed.Typ)

	openUnion, ok := open.Typ.(types.TagUnion)
	assert.True(t, ok)
	assert.Empty(t, openUnion.Tags)
	extVar, ok := open.IntroducedVariables.VarByName("a")
	assert.True(t, ok)
	assert.Equal(t, types.OpenExtension(types.TypeVariable{V: extVar}), openUnion.Ext)
	assert.False(t, types.Equal(closed.Typ, open.Typ))
}

func TestCanonicalizeInvalidExtensionRecovers(t *testing.T) {
	env, scope, varStore := testSetup()

	annotation := &ast.Record{
		Range: spanAt(1, 30),
		Fields: []ast.AssignedField{
			&ast.RequiredField{Range: spanAt(2, 10), Name: "x", Value: &ast.BoundVariable{Range: spanAt(6, 7), Name: "a"}},
		},
		Ext: &ast.TagUnion{Range: spanAt(12, 20), Tags: []ast.Tag{
			&ast.TagApply{Range: spanAt(13, 14), Name: "A"},
		}},
	}

	result := CanonicalizeAnnotation(env, scope, annotation, varStore)

	assert.Equal(t, []karsterr.ErrCode{karsterr.InvalidExtensionType}, problemCodes(env))

	record, ok := result.Typ.(types.Record)
	assert.True(t, ok)
	ext, isOpen := record.Ext.Open()
	assert.True(t, isOpen)

	// the bad tail was replaced with a fresh inference variable
	assert.Len(t, result.IntroducedVariables.Inferred(), 1)
	assert.Equal(t, types.TypeVariable{V: result.IntroducedVariables.Inferred()[0].Variable}, ext)
}

func TestCanonicalizeWildcardInferredMalformed(t *testing.T) {
	env, scope, varStore := testSetup()

	result := CanonicalizeAnnotation(env, scope, &ast.Record{
		Range: spanAt(1, 30),
		Fields: []ast.AssignedField{
			&ast.RequiredField{Range: spanAt(2, 5), Name: "w", Value: &ast.Wildcard{Range: spanAt(4, 5)}},
			&ast.RequiredField{Range: spanAt(7, 10), Name: "i", Value: &ast.Inferred{Range: spanAt(9, 10)}},
			&ast.RequiredField{Range: spanAt(12, 18), Name: "m", Value: &ast.Malformed{Range: spanAt(14, 18), Text: "$$"}},
		},
	}, varStore)

	// malformed also lands in the wildcard bucket
	assert.Len(t, result.IntroducedVariables.Wildcards(), 2)
	assert.Len(t, result.IntroducedVariables.Inferred(), 1)
	assert.Equal(t, []karsterr.ErrCode{karsterr.MalformedTypeName}, problemCodes(env))
}

func TestCanonicalizeMalformedFieldIsSkippedButReported(t *testing.T) {
	env, scope, varStore := testSetup()

	result := CanonicalizeAnnotation(env, scope, &ast.Record{
		Range: spanAt(1, 20),
		Fields: []ast.AssignedField{
			&ast.RequiredField{Range: spanAt(2, 7), Name: "a", Value: &ast.BoundVariable{Range: spanAt(6, 7), Name: "x"}},
			&ast.MalformedField{Range: spanAt(9, 12), Text: "$$"},
		},
	}, varStore)

	record, ok := result.Typ.(types.Record)
	assert.True(t, ok)
	assert.Len(t, record.Fields, 1)
	assert.Contains(t, record.Fields, "a")
	assert.Equal(t, []karsterr.ErrCode{karsterr.MalformedTypeName}, problemCodes(env))
}

func TestCanonicalizeMalformedTagIsSkippedButReported(t *testing.T) {
	env, scope, varStore := testSetup()

	result := CanonicalizeAnnotation(env, scope, &ast.TagUnion{
		Range: spanAt(1, 20),
		Tags: []ast.Tag{
			&ast.TagApply{Range: spanAt(2, 4), Name: "Ok"},
			&ast.MalformedTag{Range: spanAt(6, 9), Text: "$$"},
		},
	}, varStore)

	union, ok := result.Typ.(types.TagUnion)
	assert.True(t, ok)
	assert.Len(t, union.Tags, 1)
	assert.Equal(t, "Ok", union.Tags[0].Name)
	assert.Equal(t, []karsterr.ErrCode{karsterr.MalformedTypeName}, problemCodes(env))
}

func TestCanonicalizeLabelOnlyField(t *testing.T) {
	env, scope, varStore := testSetup()

	result := CanonicalizeAnnotation(env, scope, &ast.Record{
		Range: spanAt(1, 10),
		Fields: []ast.AssignedField{
			&ast.LabelOnlyField{Range: spanAt(2, 3), Name: "a"},
			&ast.RequiredField{Range: spanAt(5, 9), Name: "b", Value: &ast.BoundVariable{Range: spanAt(8, 9), Name: "a"}},
		},
	}, varStore)

	assert.False(t, env.Problems.HasError())
	record := result.Typ.(types.Record)

	// { a, ... } reads as { a : a, ... }: both fields share the variable
	assert.Equal(t, record.Fields["a"], types.RecordField{Type: record.Fields["b"].Type})
	assert.Len(t, result.IntroducedVariables.Named(), 1)
}

func TestCanonicalizeSpaceWrappersAreTransparent(t *testing.T) {
	env, scope, varStore := testSetup()

	wrapped := CanonicalizeAnnotation(env, scope, &ast.SpaceAfter{
		Range: spanAt(1, 10),
		Inner: &ast.SpaceBefore{
			Range: spanAt(1, 8),
			Inner: &ast.BoundVariable{Range: spanAt(3, 4), Name: "a"},
		},
	}, varStore)

	assert.False(t, env.Problems.HasError())
	assert.IsType(t, types.TypeVariable{}, wrapped.Typ)
	assert.Len(t, wrapped.IntroducedVariables.Named(), 1)
}

func TestCanonicalizeAsAliasRecursive(t *testing.T) {
	env, scope, varStore := testSetup()

	// [Cons a (ConsList a), Nil] as ConsList a
	annotation := &ast.As{
		Range: spanAt(1, 40),
		Inner: &ast.TagUnion{
			Range: spanAt(1, 25),
			Tags: []ast.Tag{
				&ast.TagApply{Range: spanAt(2, 18), Name: "Cons", Args: []ast.TypeAnnotation{
					&ast.BoundVariable{Range: spanAt(7, 8), Name: "a"},
					&ast.Apply{Range: spanAt(10, 18), Ident: "ConsList", Args: []ast.TypeAnnotation{
						&ast.BoundVariable{Range: spanAt(19, 20), Name: "a"},
					}},
				}},
				&ast.TagApply{Range: spanAt(21, 24), Name: "Nil"},
			},
		},
		Header: ast.TypeHeader{
			Range: spanAt(29, 40),
			Name:  "ConsList",
			Vars:  []ast.HeaderVar{{Range: spanAt(38, 39), Name: "a"}},
		},
	}

	result := CanonicalizeAnnotation(env, scope, annotation, varStore)
	assert.False(t, env.Problems.HasError())

	instance, ok := result.Typ.(types.AliasInstance)
	assert.True(t, ok)
	assert.Equal(t, types.AliasStructural, instance.Kind)

	recursive, isRecursive := instance.Actual.(types.RecursiveTagUnion)
	assert.True(t, isRecursive)
	assert.Len(t, recursive.Tags, 2)

	// the self-reference in Cons's payload became the recursion variable
	assert.Equal(t, "Cons", recursive.Tags[0].Name)
	assert.Equal(t, types.TypeVariable{V: recursive.RecVar}, recursive.Tags[0].Args[1])

	// the alias is visible in scope and in the local alias table
	assert.Len(t, result.Aliases, 1)
	registered, found := scope.LookupAlias(instance.Symbol)
	assert.True(t, found)
	assert.Equal(t, registered, result.Aliases[instance.Symbol])
}

func TestCanonicalizeAsAliasNestedDatatype(t *testing.T) {
	env, scope, varStore := testSetup()

	// [Wrap (Weird b)] as Weird a: the self-reference instantiates the
	// alias with something other than its own parameter
	annotation := &ast.As{
		Range: spanAt(1, 30),
		Inner: &ast.TagUnion{
			Range: spanAt(1, 18),
			Tags: []ast.Tag{
				&ast.TagApply{Range: spanAt(2, 17), Name: "Wrap", Args: []ast.TypeAnnotation{
					&ast.Apply{Range: spanAt(8, 16), Ident: "Weird", Args: []ast.TypeAnnotation{
						&ast.BoundVariable{Range: spanAt(14, 15), Name: "b"},
					}},
				}},
			},
		},
		Header: ast.TypeHeader{
			Range: spanAt(22, 30),
			Name:  "Weird",
			Vars:  []ast.HeaderVar{{Range: spanAt(28, 29), Name: "a"}},
		},
	}

	result := CanonicalizeAnnotation(env, scope, annotation, varStore)

	errs := env.Problems.Errors()
	assert.Len(t, errs, 1)
	nested, isNested := errs[0].(karsterr.NewNestedDatatype)
	assert.True(t, isNested)
	assert.Equal(t, "Weird", nested.Alias)
	assert.Equal(t, spanAt(8, 16), nested.DifferingRecursionRegion)

	// the union falls back to non-recursive rather than crashing
	instance, ok := result.Typ.(types.AliasInstance)
	assert.True(t, ok)
	assert.IsType(t, types.TagUnion{}, instance.Actual)
}

func TestCanonicalizeAsAliasShadowing(t *testing.T) {
	env, scope, varStore := testSetup()
	_, _, ok := scope.Introduce("Taken", spanAt(1, 6))
	assert.True(t, ok)

	result := CanonicalizeAnnotation(env, scope, &ast.As{
		Range:  spanAt(10, 30),
		Inner:  &ast.Record{Range: spanAt(10, 12)},
		Header: ast.TypeHeader{Range: spanAt(16, 30), Name: "Taken"},
	}, varStore)

	erroneous, isErr := result.Typ.(types.Erroneous)
	assert.True(t, isErr)
	assert.Equal(t, types.Shadowed{OriginalRegion: spanAt(1, 6), Name: "Taken"}, erroneous.Problem)
	assert.Equal(t, []karsterr.ErrCode{karsterr.Shadowed}, problemCodes(env))
	assert.Empty(t, result.Aliases)
}

func TestCanonicalizeParameterFreeAsAliasIsHostExposed(t *testing.T) {
	env, scope, varStore := testSetup()

	result := CanonicalizeAnnotation(env, scope, &ast.As{
		Range: spanAt(1, 20),
		Inner: &ast.Record{
			Range: spanAt(1, 10),
			Fields: []ast.AssignedField{
				&ast.RequiredField{Range: spanAt(2, 9), Name: "x", Value: &ast.Wildcard{Range: spanAt(7, 8)}},
			},
		},
		Header: ast.TypeHeader{Range: spanAt(14, 20), Name: "Config"},
	}, varStore)

	assert.False(t, env.Problems.HasError())

	hostExposed, ok := result.Typ.(types.HostExposedAlias)
	assert.True(t, ok)
	assert.Empty(t, hostExposed.TypeArguments)

	exposedVar, recorded := result.IntroducedVariables.HostExposedAliases()[hostExposed.Name]
	assert.True(t, recorded)
	assert.Equal(t, hostExposed.ActualVar, exposedVar)

	assert.Len(t, result.Aliases, 1)
}

func TestFindTypeDefSymbols(t *testing.T) {
	identIDs := ir.NewIdentIDs()

	annotation := &ast.Function{
		Range: spanAt(1, 40),
		Args: []ast.TypeAnnotation{
			&ast.Apply{Range: spanAt(1, 8), Ident: "Request"},
			&ast.Record{Range: spanAt(10, 25), Fields: []ast.AssignedField{
				&ast.RequiredField{Range: spanAt(11, 24), Name: "body", Value: &ast.Apply{Range: spanAt(17, 24), Ident: "Payload"}},
			}},
		},
		Ret: &ast.TagUnion{Range: spanAt(27, 40), Tags: []ast.Tag{
			&ast.TagApply{Range: spanAt(28, 39), Name: "Ok", Args: []ast.TypeAnnotation{
				&ast.Apply{Range: spanAt(31, 39), Ident: "Response"},
			}},
		}},
	}

	symbols := FindTypeDefSymbols(ir.FirstUserModule, identIDs, annotation)

	var names []string
	for _, symbol := range symbols {
		name, _ := identIDs.Name(symbol.Ident)
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"Request", "Payload", "Response"}, names)
}
