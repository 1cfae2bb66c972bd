package types

import (
	"iter"

	"github.com/benbjohnson/immutable"
	"github.com/karstlang/karst/frontend/ast"
	"github.com/karstlang/karst/frontend/ir"
	"github.com/karstlang/karst/util"
)

// VarHasher lets Variables key immutable collections.
type VarHasher struct{}

func (VarHasher) Hash(v Variable) uint32   { return uint32(v) ^ uint32(uint64(v)>>32) }
func (VarHasher) Equal(a, b Variable) bool { return a == b }

// Substitutions maps variables to replacement types. A substitution is built
// once and then applied as an immutable value; see NewSubstitutionsBuilder.
type Substitutions = *immutable.Map[Variable, Type]

func NewSubstitutionsBuilder() *immutable.MapBuilder[Variable, Type] {
	return immutable.NewMapBuilder[Variable, Type](VarHasher{})
}

// Variables yields every type variable mentioned anywhere in t, depth first.
// A variable occurring more than once is yielded more than once.
func Variables(t Type) iter.Seq[Variable] {
	return func(yield func(Variable) bool) {
		walkVariables(t, yield)
	}
}

func walkVariables(t Type, yield func(Variable) bool) bool {
	all := func(ts []Type) bool {
		for _, inner := range ts {
			if !walkVariables(inner, yield) {
				return false
			}
		}
		return true
	}
	ext := func(e Extension) bool {
		open, ok := e.Open()
		return !ok || walkVariables(open, yield)
	}
	tags := func(ts []Tag) bool {
		for _, tag := range ts {
			if !all(tag.Args) {
				return false
			}
		}
		return true
	}
	lambdaSets := func(ls []LambdaSet) bool {
		for _, l := range ls {
			if !walkVariables(l.Inner, yield) {
				return false
			}
		}
		return true
	}
	pairs := func(ps []util.Pair[string, Type]) bool {
		for _, p := range ps {
			if !walkVariables(p.Snd, yield) {
				return false
			}
		}
		return true
	}

	switch t := t.(type) {
	case TypeVariable:
		return yield(t.V)
	case Function:
		return all(t.Args) && walkVariables(t.Closure, yield) && walkVariables(t.Ret, yield)
	case Apply:
		return all(t.Args)
	case Record:
		for _, name := range t.sortedFieldNames() {
			if !walkVariables(t.Fields[name].Type, yield) {
				return false
			}
		}
		return ext(t.Ext)
	case TagUnion:
		return tags(t.Tags) && ext(t.Ext)
	case RecursiveTagUnion:
		return yield(t.RecVar) && tags(t.Tags) && ext(t.Ext)
	case EmptyRecord, EmptyTagUnion, Erroneous:
		return true
	case DelayedAlias:
		return pairs(t.Common.TypeArguments) && lambdaSets(t.Common.LambdaSetVariables)
	case AliasInstance:
		return pairs(t.TypeArguments) && lambdaSets(t.LambdaSetVariables) && walkVariables(t.Actual, yield)
	case HostExposedAlias:
		return yield(t.ActualVar) && pairs(t.TypeArguments) &&
			lambdaSets(t.LambdaSetVariables) && walkVariables(t.Actual, yield)
	default:
		panic("walkVariables: unhandled Type variant")
	}
}

// Substitute returns t with every variable in sub replaced by its mapped
// type. Replacements are inserted as-is; they are not themselves walked.
func Substitute(t Type, sub Substitutions) Type {
	mapAll := func(ts []Type) []Type {
		if len(ts) == 0 {
			return nil
		}
		out := make([]Type, len(ts))
		for i, inner := range ts {
			out[i] = Substitute(inner, sub)
		}
		return out
	}
	mapExt := func(e Extension) Extension {
		open, ok := e.Open()
		if !ok {
			return e
		}
		return OpenExtension(Substitute(open, sub))
	}
	mapTags := func(ts []Tag) []Tag {
		if len(ts) == 0 {
			return nil
		}
		out := make([]Tag, len(ts))
		for i, tag := range ts {
			out[i] = Tag{Name: tag.Name, Args: mapAll(tag.Args)}
		}
		return out
	}
	mapLambdaSets := func(ls []LambdaSet) []LambdaSet {
		if len(ls) == 0 {
			return nil
		}
		out := make([]LambdaSet, len(ls))
		for i, l := range ls {
			out[i] = LambdaSet{Inner: Substitute(l.Inner, sub)}
		}
		return out
	}
	mapPairs := func(ps []util.Pair[string, Type]) []util.Pair[string, Type] {
		if len(ps) == 0 {
			return nil
		}
		out := make([]util.Pair[string, Type], len(ps))
		for i, p := range ps {
			out[i] = util.NewPair(p.Fst, Substitute(p.Snd, sub))
		}
		return out
	}

	switch t := t.(type) {
	case TypeVariable:
		if rep, ok := sub.Get(t.V); ok {
			return rep
		}
		return t
	case Function:
		return Function{Args: mapAll(t.Args), Closure: Substitute(t.Closure, sub), Ret: Substitute(t.Ret, sub)}
	case Apply:
		return Apply{Symbol: t.Symbol, Args: mapAll(t.Args), Region: t.Region}
	case Record:
		fields := make(map[string]RecordField, len(t.Fields))
		for name, field := range t.Fields {
			fields[name] = RecordField{Type: Substitute(field.Type, sub), Optional: field.Optional}
		}
		return Record{Fields: fields, Ext: mapExt(t.Ext)}
	case TagUnion:
		return TagUnion{Tags: mapTags(t.Tags), Ext: mapExt(t.Ext)}
	case RecursiveTagUnion:
		recVar := t.RecVar
		if rep, ok := sub.Get(t.RecVar); ok {
			if repVar, isVar := rep.(TypeVariable); isVar {
				recVar = repVar.V
			}
		}
		return RecursiveTagUnion{RecVar: recVar, Tags: mapTags(t.Tags), Ext: mapExt(t.Ext)}
	case EmptyRecord, EmptyTagUnion, Erroneous:
		return t
	case DelayedAlias:
		return DelayedAlias{Common: AliasCommon{
			Symbol:             t.Common.Symbol,
			TypeArguments:      mapPairs(t.Common.TypeArguments),
			LambdaSetVariables: mapLambdaSets(t.Common.LambdaSetVariables),
		}}
	case AliasInstance:
		return AliasInstance{
			Symbol:             t.Symbol,
			TypeArguments:      mapPairs(t.TypeArguments),
			LambdaSetVariables: mapLambdaSets(t.LambdaSetVariables),
			Actual:             Substitute(t.Actual, sub),
			Kind:               t.Kind,
		}
	case HostExposedAlias:
		return HostExposedAlias{
			Name:               t.Name,
			TypeArguments:      mapPairs(t.TypeArguments),
			LambdaSetVariables: mapLambdaSets(t.LambdaSetVariables),
			Actual:             Substitute(t.Actual, sub),
			ActualVar:          t.ActualVar,
		}
	default:
		panic("Substitute: unhandled Type variant")
	}
}

type aliasSubst struct {
	symbol ir.Symbol
	args   []Type
	rep    Type
	// differing is the region of the first self-reference whose arguments
	// did not match the alias's own parameters, if any
	differing *ast.Range
}

// SubstituteAlias replaces every self-reference to symbol inside t with rep,
// provided the self-reference instantiates the alias with exactly args (the
// alias's own parameters). A self-reference with different arguments cannot
// be expressed through a single recursion marker; the region of the first
// such occurrence is returned and the occurrence is left in place.
func SubstituteAlias(t Type, symbol ir.Symbol, args []Type, rep Type) (Type, *ast.Range) {
	ctx := &aliasSubst{symbol: symbol, args: args, rep: rep}
	out := ctx.apply(t)
	return out, ctx.differing
}

func (ctx *aliasSubst) apply(t Type) Type {
	mapAll := func(ts []Type) []Type {
		if len(ts) == 0 {
			return nil
		}
		out := make([]Type, len(ts))
		for i, inner := range ts {
			out[i] = ctx.apply(inner)
		}
		return out
	}
	mapExt := func(e Extension) Extension {
		open, ok := e.Open()
		if !ok {
			return e
		}
		return OpenExtension(ctx.apply(open))
	}
	mapTags := func(ts []Tag) []Tag {
		if len(ts) == 0 {
			return nil
		}
		out := make([]Tag, len(ts))
		for i, tag := range ts {
			out[i] = Tag{Name: tag.Name, Args: mapAll(tag.Args)}
		}
		return out
	}
	mapPairs := func(ps []util.Pair[string, Type]) []util.Pair[string, Type] {
		if len(ps) == 0 {
			return nil
		}
		out := make([]util.Pair[string, Type], len(ps))
		for i, p := range ps {
			out[i] = util.NewPair(p.Fst, ctx.apply(p.Snd))
		}
		return out
	}

	switch t := t.(type) {
	case Apply:
		if t.Symbol == ctx.symbol {
			if len(t.Args) == len(ctx.args) && argsEqual(t.Args, ctx.args) {
				return ctx.rep
			}
			if ctx.differing == nil {
				region := t.Region
				ctx.differing = &region
			}
		}
		return Apply{Symbol: t.Symbol, Args: mapAll(t.Args), Region: t.Region}
	case TypeVariable, EmptyRecord, EmptyTagUnion, Erroneous:
		return t
	case Function:
		return Function{Args: mapAll(t.Args), Closure: ctx.apply(t.Closure), Ret: ctx.apply(t.Ret)}
	case Record:
		fields := make(map[string]RecordField, len(t.Fields))
		for name, field := range t.Fields {
			fields[name] = RecordField{Type: ctx.apply(field.Type), Optional: field.Optional}
		}
		return Record{Fields: fields, Ext: mapExt(t.Ext)}
	case TagUnion:
		return TagUnion{Tags: mapTags(t.Tags), Ext: mapExt(t.Ext)}
	case RecursiveTagUnion:
		return RecursiveTagUnion{RecVar: t.RecVar, Tags: mapTags(t.Tags), Ext: mapExt(t.Ext)}
	case DelayedAlias:
		return DelayedAlias{Common: AliasCommon{
			Symbol:             t.Common.Symbol,
			TypeArguments:      mapPairs(t.Common.TypeArguments),
			LambdaSetVariables: t.Common.LambdaSetVariables,
		}}
	case AliasInstance:
		return AliasInstance{
			Symbol:             t.Symbol,
			TypeArguments:      mapPairs(t.TypeArguments),
			LambdaSetVariables: t.LambdaSetVariables,
			Actual:             ctx.apply(t.Actual),
			Kind:               t.Kind,
		}
	case HostExposedAlias:
		return HostExposedAlias{
			Name:               t.Name,
			TypeArguments:      mapPairs(t.TypeArguments),
			LambdaSetVariables: t.LambdaSetVariables,
			Actual:             ctx.apply(t.Actual),
			ActualVar:          t.ActualVar,
		}
	default:
		panic("SubstituteAlias: unhandled Type variant")
	}
}

func argsEqual(this, other []Type) bool {
	for i, arg := range this {
		if !Equal(arg, other[i]) {
			return false
		}
	}
	return true
}
