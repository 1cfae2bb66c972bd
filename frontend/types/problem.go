package types

import (
	"fmt"

	"github.com/karstlang/karst/frontend/ast"
	"github.com/karstlang/karst/frontend/ir"
)

// Problem is carried by an Erroneous type so the solver knows why the hole
// exists without consulting the diagnostics sink.
type Problem interface {
	fmt.Stringer
	problemNode()
}

var (
	_ Problem = (*UnrecognizedIdent)(nil)
	_ Problem = (*QualifiedLookupFailed)(nil)
	_ Problem = (*BadTypeArguments)(nil)
	_ Problem = (*Shadowed)(nil)
)

// UnrecognizedIdent is an unqualified type name that did not resolve in scope.
type UnrecognizedIdent struct {
	Name string
}

func (UnrecognizedIdent) problemNode() {}
func (p UnrecognizedIdent) String() string {
	return fmt.Sprintf("unrecognized identifier %q", p.Name)
}

// QualifiedLookupFailed is a cross-module type reference that did not
// resolve, either because the module is not imported or because it does not
// expose the identifier.
type QualifiedLookupFailed struct {
	Module string
	Ident  string
}

func (QualifiedLookupFailed) problemNode() {}
func (p QualifiedLookupFailed) String() string {
	return fmt.Sprintf("%s.%s did not resolve", p.Module, p.Ident)
}

// BadTypeArguments is an alias applied with the wrong number of arguments.
type BadTypeArguments struct {
	Symbol     ir.Symbol
	Region     ast.Range
	AliasNeeds int
	TypeGot    int
}

func (BadTypeArguments) problemNode() {}
func (p BadTypeArguments) String() string {
	return fmt.Sprintf("%s needs %d type arguments, got %d", p.Symbol, p.AliasNeeds, p.TypeGot)
}

// Shadowed is an "as" alias whose name collides with an existing binding.
type Shadowed struct {
	OriginalRegion ast.Range
	Name           string
}

func (Shadowed) problemNode() {}
func (p Shadowed) String() string {
	return fmt.Sprintf("%q is already bound at %s", p.Name, p.OriginalRegion)
}
