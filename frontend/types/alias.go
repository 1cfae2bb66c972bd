package types

import (
	"github.com/karstlang/karst/frontend/ast"
)

// AliasKind separates transparent aliases from opaque (nominal) types.
type AliasKind uint8

const (
	AliasStructural AliasKind = iota
	AliasOpaque
)

func (k AliasKind) String() string {
	if k == AliasOpaque {
		return "opaque"
	}
	return "structural"
}

// LambdaSet wraps a lambda-set placeholder. By the time an alias is
// registered these are always type variables; the wrapper keeps that
// distinction visible in signatures.
type LambdaSet struct {
	Inner Type
}

// AliasParam is one declared parameter of an alias, with the region where
// the parameter name first appeared.
type AliasParam struct {
	Name   string
	Var    Variable
	Region ast.Range
}

// Alias is a named type definition. It is owned by the Scope that registered
// it; the canonicalizer takes structural copies, never mutates it in place.
type Alias struct {
	Region             ast.Range
	Params             []AliasParam
	LambdaSetVariables []LambdaSet
	Typ                Type
	Kind               AliasKind
}
