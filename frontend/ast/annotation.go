package ast

// TypeAnnotation is the surface syntax of a type, as produced by the parser.
// All variants embed a Range pointing back at the source text.
type TypeAnnotation interface {
	Positioner
	annotationNode()
}

var (
	_ TypeAnnotation = (*Function)(nil)
	_ TypeAnnotation = (*Apply)(nil)
	_ TypeAnnotation = (*BoundVariable)(nil)
	_ TypeAnnotation = (*As)(nil)
	_ TypeAnnotation = (*Record)(nil)
	_ TypeAnnotation = (*TagUnion)(nil)
	_ TypeAnnotation = (*Wildcard)(nil)
	_ TypeAnnotation = (*Inferred)(nil)
	_ TypeAnnotation = (*Malformed)(nil)
	_ TypeAnnotation = (*SpaceBefore)(nil)
	_ TypeAnnotation = (*SpaceAfter)(nil)
)

// Function is an arrow type: a, b -> c
type Function struct {
	Range
	Args []TypeAnnotation
	Ret  TypeAnnotation
}

func (*Function) annotationNode() {}

// Apply is a type constructor applied to arguments, like List Str.
// An empty Module means the identifier is unqualified.
type Apply struct {
	Range
	Module string
	Ident  string
	Args   []TypeAnnotation
}

func (*Apply) annotationNode() {}

// BoundVariable is a user-written lowercase type parameter.
type BoundVariable struct {
	Range
	Name string
}

func (*BoundVariable) annotationNode() {}

// TypeHeader is the name-and-parameters part of an "as" alias, like List a as ConsList a.
type TypeHeader struct {
	Range
	Name string
	Vars []HeaderVar
}

// HeaderVar is one declared lowercase parameter in a TypeHeader.
type HeaderVar struct {
	Range
	Name string
}

// As introduces a new alias for the inner annotation.
type As struct {
	Range
	Inner  TypeAnnotation
	Header TypeHeader
}

func (*As) annotationNode() {}

// Record is a record literal type: { name : Str, age ? U8 }ext
// A nil Ext means the record is closed.
type Record struct {
	Range
	Fields []AssignedField
	Ext    TypeAnnotation
}

func (*Record) annotationNode() {}

// TagUnion is a tag union literal type: [ Ok a, Err e ]ext
// A nil Ext means the union is closed.
type TagUnion struct {
	Range
	Tags []Tag
	Ext  TypeAnnotation
}

func (*TagUnion) annotationNode() {}

// Wildcard is the anonymous type `*`.
type Wildcard struct{ Range }

func (*Wildcard) annotationNode() {}

// Inferred is the underscore type `_`, fully unconstrained.
type Inferred struct{ Range }

func (*Inferred) annotationNode() {}

// Malformed is type text the parser could not make sense of.
type Malformed struct {
	Range
	Text string
}

func (*Malformed) annotationNode() {}

// SpaceBefore wraps a node preceded by whitespace or comments; transparent to canonicalization.
type SpaceBefore struct {
	Range
	Inner TypeAnnotation
}

func (*SpaceBefore) annotationNode() {}

// SpaceAfter wraps a node followed by whitespace or comments; transparent to canonicalization.
type SpaceAfter struct {
	Range
	Inner TypeAnnotation
}

func (*SpaceAfter) annotationNode() {}

// AssignedField is one field of a Record annotation.
type AssignedField interface {
	Positioner
	assignedFieldNode()
}

var (
	_ AssignedField = (*RequiredField)(nil)
	_ AssignedField = (*OptionalField)(nil)
	_ AssignedField = (*LabelOnlyField)(nil)
	_ AssignedField = (*MalformedField)(nil)
	_ AssignedField = (*FieldSpaceBefore)(nil)
	_ AssignedField = (*FieldSpaceAfter)(nil)
)

// RequiredField is `name : type`.
type RequiredField struct {
	Range
	Name  string
	Value TypeAnnotation
}

func (*RequiredField) assignedFieldNode() {}

// OptionalField is `name ? type`.
type OptionalField struct {
	Range
	Name  string
	Value TypeAnnotation
}

func (*OptionalField) assignedFieldNode() {}

// LabelOnlyField is the shorthand `{ a, b }`, read as `{ a : a, b : b }`.
type LabelOnlyField struct {
	Range
	Name string
}

func (*LabelOnlyField) assignedFieldNode() {}

// MalformedField is field text the parser could not make sense of.
type MalformedField struct {
	Range
	Text string
}

func (*MalformedField) assignedFieldNode() {}

type FieldSpaceBefore struct {
	Range
	Inner AssignedField
}

func (*FieldSpaceBefore) assignedFieldNode() {}

type FieldSpaceAfter struct {
	Range
	Inner AssignedField
}

func (*FieldSpaceAfter) assignedFieldNode() {}

// Tag is one alternative of a TagUnion annotation.
type Tag interface {
	Positioner
	tagNode()
}

var (
	_ Tag = (*TagApply)(nil)
	_ Tag = (*MalformedTag)(nil)
	_ Tag = (*TagSpaceBefore)(nil)
	_ Tag = (*TagSpaceAfter)(nil)
)

// TagApply is an uppercase tag name applied to zero or more payload types.
type TagApply struct {
	Range
	Name string
	Args []TypeAnnotation
}

func (*TagApply) tagNode() {}

// MalformedTag is tag text the parser could not make sense of.
type MalformedTag struct {
	Range
	Text string
}

func (*MalformedTag) tagNode() {}

type TagSpaceBefore struct {
	Range
	Inner Tag
}

func (*TagSpaceBefore) tagNode() {}

type TagSpaceAfter struct {
	Range
	Inner Tag
}

func (*TagSpaceAfter) tagNode() {}
