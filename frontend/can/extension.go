package can

import (
	"github.com/karstlang/karst/frontend/ast"
	"github.com/karstlang/karst/frontend/karsterr"
	"github.com/karstlang/karst/frontend/types"
)

// canExtensionType canonicalizes the tail of a record or tag union and
// checks it can legally extend that kind of shape. An invalid tail is
// reported and replaced with a fresh inference variable so solving can
// continue; an absent tail is the closed empty shape for the kind.
func (ctx *annotationCtx) canExtensionType(ext ast.TypeAnnotation, kind karsterr.ExtensionKind) types.Type {
	if ext == nil {
		if kind == karsterr.ExtensionTagUnion {
			return types.EmptyTagUnion{}
		}
		return types.EmptyRecord{}
	}

	extType := ctx.can(ext)
	if validExtensionType(shallowDealiasWithScope(ctx.scope, extType), kind) {
		return extType
	}

	ctx.env.Problems.With(karsterr.New(karsterr.NewInvalidExtensionType{
		Positioner: ast.RangeOf(ext),
		Kind:       kind,
	}))
	v := ctx.varStore.Fresh()
	ctx.introduced.InsertInferred(v, ast.RangeOf(ext))
	return types.TypeVariable{V: v}
}

// validExtensionType accepts the matching empty shape, the matching
// compound shape, a bare variable, or an erroneous type. Erroneous types
// pass so one bad annotation does not cascade into extension diagnostics.
func validExtensionType(t types.Type, kind karsterr.ExtensionKind) bool {
	if kind == karsterr.ExtensionTagUnion {
		switch t.(type) {
		case types.EmptyTagUnion, types.TagUnion, types.RecursiveTagUnion, types.TypeVariable, types.Erroneous:
			return true
		}
		return false
	}
	switch t.(type) {
	case types.EmptyRecord, types.Record, types.TypeVariable, types.Erroneous:
		return true
	}
	return false
}

// shallowDealiasWithScope follows alias indirections to the first
// non-alias constructor. Delayed aliases are resolved through scope; a
// delayed alias scope cannot resolve is returned as-is.
func shallowDealiasWithScope(scope *Scope, t types.Type) types.Type {
	for {
		switch alias := t.(type) {
		case types.AliasInstance:
			t = alias.Actual
		case types.HostExposedAlias:
			t = alias.Actual
		case types.DelayedAlias:
			def, ok := scope.LookupAlias(alias.Common.Symbol)
			if !ok {
				return t
			}
			t = def.Typ
		default:
			return t
		}
	}
}
