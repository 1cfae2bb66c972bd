package can

import (
	set "github.com/hashicorp/go-set/v3"
	"github.com/karstlang/karst/frontend/ast"
	"github.com/karstlang/karst/frontend/ir"
	"github.com/karstlang/karst/frontend/karsterr"
	"github.com/karstlang/karst/frontend/types"
	"github.com/karstlang/karst/util"
)

// Annotation is the outcome of canonicalizing one type annotation: the
// internal type, every variable the walk minted, every symbol it referenced,
// and any aliases the annotation itself introduced.
type Annotation struct {
	Typ                 types.Type
	IntroducedVariables *IntroducedVariables
	References          *set.Set[ir.Symbol]
	Aliases             map[ir.Symbol]types.Alias
}

// CanonicalizeAnnotation resolves a surface annotation into a Type,
// accumulating diagnostics into env.Problems. It never fails: unresolvable
// parts become erroneous placeholders or fresh variables so the surrounding
// declaration stays well formed.
func CanonicalizeAnnotation(
	env *Env,
	scope *Scope,
	annotation ast.TypeAnnotation,
	varStore *types.VarStore,
) Annotation {
	ctx := &annotationCtx{
		env:        env,
		scope:      scope,
		varStore:   varStore,
		introduced: NewIntroducedVariables(),
		references: set.New[ir.Symbol](8),
		aliases:    map[ir.Symbol]types.Alias{},
	}
	typ := ctx.can(annotation)
	return Annotation{
		Typ:                 typ,
		IntroducedVariables: ctx.introduced,
		References:          ctx.references,
		Aliases:             ctx.aliases,
	}
}

type annotationCtx struct {
	env        *Env
	scope      *Scope
	varStore   *types.VarStore
	introduced *IntroducedVariables
	references *set.Set[ir.Symbol]
	aliases    map[ir.Symbol]types.Alias
}

func (ctx *annotationCtx) can(annotation ast.TypeAnnotation) types.Type {
	switch t := annotation.(type) {
	case *ast.Function:
		args := make([]types.Type, len(t.Args))
		for i, arg := range t.Args {
			args[i] = ctx.can(arg)
		}
		ret := ctx.can(t.Ret)

		lambdaVar := ctx.varStore.Fresh()
		ctx.introduced.InsertLambdaSet(lambdaVar)
		return types.Function{
			Args:    args,
			Closure: types.TypeVariable{V: lambdaVar},
			Ret:     ret,
		}

	case *ast.Apply:
		return ctx.canApply(t)

	case *ast.BoundVariable:
		if v, ok := ctx.introduced.VarByName(t.Name); ok {
			return types.TypeVariable{V: v}
		}
		v := ctx.varStore.Fresh()
		ctx.introduced.InsertNamed(t.Name, v, t.Range)
		return types.TypeVariable{V: v}

	case *ast.As:
		return ctx.canAs(t)

	case *ast.Record:
		ext := ctx.canExtensionType(t.Ext, karsterr.ExtensionRecord)
		if len(t.Fields) == 0 {
			if t.Ext == nil {
				return types.EmptyRecord{}
			}
			// just `a` does not mean the same as `{}a`: with an explicit
			// extension the result is still a record shape, only open
			return types.Record{
				Fields: map[string]types.RecordField{},
				Ext:    types.ExtensionFrom(ext),
			}
		}
		fields := ctx.canAssignedFields(t.Fields, t.Range)
		return types.Record{Fields: fields, Ext: types.ExtensionFrom(ext)}

	case *ast.TagUnion:
		ext := ctx.canExtensionType(t.Ext, karsterr.ExtensionTagUnion)
		if len(t.Tags) == 0 {
			if t.Ext == nil {
				return types.EmptyTagUnion{}
			}
			return types.TagUnion{Tags: nil, Ext: types.ExtensionFrom(ext)}
		}
		tags := ctx.canTags(t.Tags, t.Range)
		types.SortTags(tags)
		return types.TagUnion{Tags: tags, Ext: types.ExtensionFrom(ext)}

	case *ast.Wildcard:
		v := ctx.varStore.Fresh()
		ctx.introduced.InsertWildcard(v, t.Range)
		return types.TypeVariable{V: v}

	case *ast.Inferred:
		v := ctx.varStore.Fresh()
		ctx.introduced.InsertInferred(v, t.Range)
		return types.TypeVariable{V: v}

	case *ast.Malformed:
		ctx.env.Problems.With(karsterr.New(karsterr.NewMalformedTypeName{
			Positioner: t.Range,
			Text:       t.Text,
		}))
		v := ctx.varStore.Fresh()
		ctx.introduced.InsertWildcard(v, t.Range)
		return types.TypeVariable{V: v}

	case *ast.SpaceBefore:
		return ctx.can(t.Inner)
	case *ast.SpaceAfter:
		return ctx.can(t.Inner)

	default:
		panic("canonicalize: unhandled annotation variant")
	}
}

func (ctx *annotationCtx) canApply(apply *ast.Apply) types.Type {
	var symbol ir.Symbol
	if apply.Module == "" {
		resolved, ok := ctx.scope.LookupName(apply.Ident)
		if !ok {
			ctx.env.Problems.With(karsterr.New(karsterr.NewUnrecognizedIdent{
				Positioner: apply.Range,
				Name:       apply.Ident,
			}))
			return types.Erroneous{Problem: types.UnrecognizedIdent{Name: apply.Ident}}
		}
		symbol = resolved
	} else {
		resolved, ok := ctx.env.QualifiedLookup(apply.Module, apply.Ident)
		if !ok {
			ctx.env.Problems.With(karsterr.New(karsterr.NewQualifiedLookup{
				Positioner: apply.Range,
				Module:     apply.Module,
				Ident:      apply.Ident,
			}))
			return types.Erroneous{Problem: types.QualifiedLookupFailed{
				Module: apply.Module,
				Ident:  apply.Ident,
			}}
		}
		symbol = resolved
	}

	ctx.references.Insert(symbol)

	args := make([]types.Type, len(apply.Args))
	for i, arg := range apply.Args {
		args[i] = ctx.can(arg)
	}

	alias, known := ctx.scope.LookupAlias(symbol)
	if !known {
		return types.Apply{Symbol: symbol, Args: args, Region: apply.Range}
	}

	if len(args) != len(alias.Params) {
		ctx.env.Problems.With(karsterr.New(karsterr.NewBadTypeArguments{
			Positioner: apply.Range,
			Name:       apply.Ident,
			AliasNeeds: len(alias.Params),
			TypeGot:    len(args),
		}))
		return types.Erroneous{Problem: types.BadTypeArguments{
			Symbol:     symbol,
			Region:     apply.Range,
			AliasNeeds: len(alias.Params),
			TypeGot:    len(args),
		}}
	}

	// a non-imported (home or builtin) structural alias without lambda sets
	// can stay symbolic for the solver to expand; everything else expands here
	isImport := !symbol.IsBuiltin() && symbol.Module != ctx.env.Home
	if !isImport &&
		alias.Kind == types.AliasStructural &&
		len(alias.LambdaSetVariables) == 0 {
		typeArguments := make([]util.Pair[string, types.Type], len(args))
		for i, arg := range args {
			typeArguments[i] = util.NewPair(alias.Params[i].Name, arg)
		}
		return types.DelayedAlias{Common: types.AliasCommon{
			Symbol:        symbol,
			TypeArguments: typeArguments,
		}}
	}

	typeVarToArg, lambdaSets, actual := InstantiateAndFreshenAliasType(
		ctx.varStore, ctx.introduced, alias.Params, args, alias.LambdaSetVariables, alias.Typ)
	return types.AliasInstance{
		Symbol:             symbol,
		TypeArguments:      typeVarToArg,
		LambdaSetVariables: lambdaSets,
		Actual:             actual,
		Kind:               alias.Kind,
	}
}

func (ctx *annotationCtx) canAs(as *ast.As) types.Type {
	header := as.Header
	symbol, originalRegion, ok := ctx.scope.Introduce(header.Name, header.Range)
	if !ok {
		ctx.env.Problems.With(karsterr.New(karsterr.NewShadowed{
			Positioner:     header.Range,
			Name:           header.Name,
			OriginalRegion: originalRegion,
		}))
		return types.Erroneous{Problem: types.Shadowed{
			OriginalRegion: originalRegion,
			Name:           header.Name,
		}}
	}

	// the symbol is in scope before the body is canonicalized, so the body
	// can refer to the alias by name
	inner := ctx.can(as.Inner)
	ctx.references.Insert(symbol)

	params := make([]types.AliasParam, len(header.Vars))
	aliasArgs := make([]types.Type, len(header.Vars))
	for i, headerVar := range header.Vars {
		v, seen := ctx.introduced.VarByName(headerVar.Name)
		if !seen {
			v = ctx.varStore.Fresh()
			ctx.introduced.InsertNamed(headerVar.Name, v, headerVar.Range)
		}
		params[i] = types.AliasParam{Name: headerVar.Name, Var: v, Region: headerVar.Range}
		aliasArgs[i] = types.TypeVariable{V: v}
	}

	actual := inner
	if union, isUnion := inner.(types.TagUnion); isUnion {
		recVar := ctx.varStore.Fresh()
		nestedDatatype := false
		newTags := make([]types.Tag, len(union.Tags))
		for i, tag := range union.Tags {
			newArgs := make([]types.Type, len(tag.Args))
			for j, arg := range tag.Args {
				substituted, differing := types.SubstituteAlias(
					arg, symbol, aliasArgs, types.TypeVariable{V: recVar})
				if differing != nil {
					ctx.env.Problems.With(karsterr.New(karsterr.NewNestedDatatype{
						Positioner:               as.Range,
						Alias:                    header.Name,
						DifferingRecursionRegion: *differing,
					}))
					nestedDatatype = true
				}
				newArgs[j] = substituted
			}
			newTags[i] = types.Tag{Name: tag.Name, Args: newArgs}
		}
		if nestedDatatype {
			// no representation for nested datatypes, so do not mark the
			// union recursive at all
			actual = types.TagUnion{Tags: newTags, Ext: union.Ext}
		} else {
			actual = types.RecursiveTagUnion{RecVar: recVar, Tags: newTags, Ext: union.Ext}
		}
	}

	hidden := set.New[types.Variable](4)
	for v := range types.Variables(actual) {
		hidden.Insert(v)
	}
	for _, param := range params {
		hidden.Remove(param.Var)
	}
	if hidden.Size() > 0 {
		// free variables captured by an alias are implicitly quantified;
		// surfacing them to the user is a solver concern, not ours
		logger.Debug("alias captures variables beyond its parameters",
			"alias", header.Name, "hidden", hidden.Slice())
	}

	alias := types.Alias{
		Region: header.Range,
		Params: params,
		Typ:    actual,
		Kind:   types.AliasStructural,
	}
	ctx.scope.AddAlias(symbol, alias)
	ctx.aliases[symbol] = alias

	typeArguments := make([]util.Pair[string, types.Type], len(params))
	for i, param := range params {
		typeArguments[i] = util.NewPair(param.Name, aliasArgs[i])
	}

	if len(params) == 0 && symbol.Module == ctx.env.Home {
		actualVar := ctx.varStore.Fresh()
		ctx.introduced.InsertHostExposedAlias(symbol, actualVar)
		return types.HostExposedAlias{
			Name:               symbol,
			TypeArguments:      typeArguments,
			LambdaSetVariables: alias.LambdaSetVariables,
			Actual:             alias.Typ,
			ActualVar:          actualVar,
		}
	}
	return types.AliasInstance{
		Symbol:             symbol,
		TypeArguments:      typeArguments,
		LambdaSetVariables: alias.LambdaSetVariables,
		Actual:             alias.Typ,
		Kind:               types.AliasStructural,
	}
}

// canAssignedFields resolves record fields in source order. On a duplicate
// name the later occurrence wins the slot and the earlier region is reported
// as replaced. Malformed fields are skipped, not fatal.
func (ctx *annotationCtx) canAssignedFields(fields []ast.AssignedField, recordRegion ast.Range) map[string]types.RecordField {
	fieldTypes := make(map[string]types.RecordField, len(fields))
	seen := make(map[string]ast.Range, len(fields))

	for _, outer := range fields {
		field := outer
	unwrap:
		for {
			switch f := field.(type) {
			case *ast.RequiredField:
				fieldTypes[f.Name] = types.RecordField{Type: ctx.can(f.Value)}
				ctx.noteFieldSeen(seen, f.Name, ast.RangeOf(outer), recordRegion)
				break unwrap
			case *ast.OptionalField:
				fieldTypes[f.Name] = types.RecordField{Type: ctx.can(f.Value), Optional: true}
				ctx.noteFieldSeen(seen, f.Name, ast.RangeOf(outer), recordRegion)
				break unwrap
			case *ast.LabelOnlyField:
				// { a, b } reads as { a : a, b : b }
				v, ok := ctx.introduced.VarByName(f.Name)
				if !ok {
					v = ctx.varStore.Fresh()
					ctx.introduced.InsertNamed(f.Name, v, f.Range)
				}
				fieldTypes[f.Name] = types.RecordField{Type: types.TypeVariable{V: v}}
				ctx.noteFieldSeen(seen, f.Name, ast.RangeOf(outer), recordRegion)
				break unwrap
			case *ast.FieldSpaceBefore:
				field = f.Inner
			case *ast.FieldSpaceAfter:
				field = f.Inner
			case *ast.MalformedField:
				ctx.env.Problems.With(karsterr.New(karsterr.NewMalformedTypeName{
					Positioner: f.Range,
					Text:       f.Text,
				}))
				break unwrap
			default:
				panic("canAssignedFields: unhandled field variant")
			}
		}
	}
	return fieldTypes
}

func (ctx *annotationCtx) noteFieldSeen(seen map[string]ast.Range, name string, region, recordRegion ast.Range) {
	if replaced, dup := seen[name]; dup {
		ctx.env.Problems.With(karsterr.New(karsterr.NewDuplicateRecordFieldType{
			Positioner:     region,
			FieldName:      name,
			RecordRegion:   recordRegion,
			ReplacedRegion: replaced,
		}))
	}
	seen[name] = region
}

// canTags resolves tags in source order, with the same duplicate handling
// as record fields. Tags are returned unsorted; the caller sorts.
func (ctx *annotationCtx) canTags(tags []ast.Tag, unionRegion ast.Range) []types.Tag {
	tagTypes := make([]types.Tag, 0, len(tags))
	byName := make(map[string]int, len(tags))
	seen := make(map[string]ast.Range, len(tags))

	for _, outer := range tags {
		tag := outer
	unwrap:
		for {
			switch t := tag.(type) {
			case *ast.TagApply:
				args := make([]types.Type, len(t.Args))
				for i, arg := range t.Args {
					args[i] = ctx.can(arg)
				}
				resolved := types.Tag{Name: t.Name, Args: args}
				if at, dup := byName[t.Name]; dup {
					tagTypes[at] = resolved
					ctx.env.Problems.With(karsterr.New(karsterr.NewDuplicateTag{
						Positioner:     ast.RangeOf(outer),
						TagName:        t.Name,
						TagUnionRegion: unionRegion,
						ReplacedRegion: seen[t.Name],
					}))
				} else {
					byName[t.Name] = len(tagTypes)
					tagTypes = append(tagTypes, resolved)
				}
				seen[t.Name] = ast.RangeOf(outer)
				break unwrap
			case *ast.TagSpaceBefore:
				tag = t.Inner
			case *ast.TagSpaceAfter:
				tag = t.Inner
			case *ast.MalformedTag:
				ctx.env.Problems.With(karsterr.New(karsterr.NewMalformedTypeName{
					Positioner: t.Range,
					Text:       t.Text,
				}))
				break unwrap
			default:
				panic("canTags: unhandled tag variant")
			}
		}
	}
	return tagTypes
}
