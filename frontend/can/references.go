package can

import (
	"github.com/karstlang/karst/frontend/ast"
	"github.com/karstlang/karst/frontend/ir"
)

// FindTypeDefSymbols collects, without canonicalizing, every symbol a type
// definition's annotation would reference in the home module. Used to build
// the dependency order of type declarations before canonicalization runs.
func FindTypeDefSymbols(home ir.ModuleID, identIDs *ir.IdentIDs, annotation ast.TypeAnnotation) []ir.Symbol {
	var result []ir.Symbol
	stack := []ast.TypeAnnotation{annotation}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t := current.(type) {
		case *ast.Apply:
			result = append(result, ir.Symbol{Module: home, Ident: identIDs.GetOrInsert(t.Ident)})
			stack = append(stack, t.Args...)
		case *ast.Function:
			stack = append(stack, t.Args...)
			stack = append(stack, t.Ret)
		case *ast.As:
			stack = append(stack, t.Inner)
		case *ast.Record:
			for _, field := range t.Fields {
				field = unwrapField(field)
				switch f := field.(type) {
				case *ast.RequiredField:
					stack = append(stack, f.Value)
				case *ast.OptionalField:
					stack = append(stack, f.Value)
				}
			}
			if t.Ext != nil {
				stack = append(stack, t.Ext)
			}
		case *ast.TagUnion:
			for _, tag := range t.Tags {
				if apply, ok := unwrapTag(tag).(*ast.TagApply); ok {
					stack = append(stack, apply.Args...)
				}
			}
			if t.Ext != nil {
				stack = append(stack, t.Ext)
			}
		case *ast.SpaceBefore:
			stack = append(stack, t.Inner)
		case *ast.SpaceAfter:
			stack = append(stack, t.Inner)
		case *ast.BoundVariable, *ast.Wildcard, *ast.Inferred, *ast.Malformed:
			// no symbols inside
		}
	}
	return result
}

func unwrapField(field ast.AssignedField) ast.AssignedField {
	for {
		switch f := field.(type) {
		case *ast.FieldSpaceBefore:
			field = f.Inner
		case *ast.FieldSpaceAfter:
			field = f.Inner
		default:
			return field
		}
	}
}

func unwrapTag(tag ast.Tag) ast.Tag {
	for {
		switch t := tag.(type) {
		case *ast.TagSpaceBefore:
			tag = t.Inner
		case *ast.TagSpaceAfter:
			tag = t.Inner
		default:
			return tag
		}
	}
}
