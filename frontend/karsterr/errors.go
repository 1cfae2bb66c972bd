package karsterr

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/karstlang/karst/frontend/ast"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = true
const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	MalformedTypeName
	UnrecognizedIdent
	QualifiedLookup
	BadTypeArguments
	Shadowed
	InvalidExtensionType
	DuplicateRecordFieldType
	DuplicateTag
	NestedDatatype
)

type KarstError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) KarstError
	getStack() []byte
}

func FormatWithCode(e KarstError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E KarstError](err E) KarstError {
	return err.withStack(debug.Stack())
}

// ExtensionKind says which compound shape a record/tag-union tail belongs to.
type ExtensionKind int

const (
	ExtensionRecord ExtensionKind = iota
	ExtensionTagUnion
)

func (k ExtensionKind) String() string {
	if k == ExtensionTagUnion {
		return "tag union"
	}
	return "record"
}

type NewMalformedTypeName struct {
	ast.Positioner
	Text  string
	stack []byte
}

func (e NewMalformedTypeName) Error() string {
	return fmt.Sprintf("'%s' is not a valid type name", e.Text)
}
func (e NewMalformedTypeName) Code() ErrCode    { return MalformedTypeName }
func (e NewMalformedTypeName) getStack() []byte { return e.stack }
func (e NewMalformedTypeName) withStack(stack []byte) KarstError {
	e.stack = stack
	return e
}

type NewUnrecognizedIdent struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUnrecognizedIdent) Error() string {
	return fmt.Sprintf("type '%s' is not defined", e.Name)
}
func (e NewUnrecognizedIdent) Code() ErrCode    { return UnrecognizedIdent }
func (e NewUnrecognizedIdent) getStack() []byte { return e.stack }
func (e NewUnrecognizedIdent) withStack(stack []byte) KarstError {
	e.stack = stack
	return e
}

type NewQualifiedLookup struct {
	ast.Positioner
	Module string
	Ident  string
	stack  []byte
}

func (e NewQualifiedLookup) Error() string {
	return fmt.Sprintf("'%s.%s' could not be resolved: the module is not imported or does not expose '%s'", e.Module, e.Ident, e.Ident)
}
func (e NewQualifiedLookup) Code() ErrCode    { return QualifiedLookup }
func (e NewQualifiedLookup) getStack() []byte { return e.stack }
func (e NewQualifiedLookup) withStack(stack []byte) KarstError {
	e.stack = stack
	return e
}

type NewBadTypeArguments struct {
	ast.Positioner
	Name       string
	AliasNeeds int
	TypeGot    int
	stack      []byte
}

func (e NewBadTypeArguments) Error() string {
	return fmt.Sprintf("alias '%s' needs %d type arguments, but got %d", e.Name, e.AliasNeeds, e.TypeGot)
}
func (e NewBadTypeArguments) Code() ErrCode    { return BadTypeArguments }
func (e NewBadTypeArguments) getStack() []byte { return e.stack }
func (e NewBadTypeArguments) withStack(stack []byte) KarstError {
	e.stack = stack
	return e
}

type NewShadowed struct {
	ast.Positioner
	Name           string
	OriginalRegion ast.Range
	stack          []byte
}

func (e NewShadowed) Error() string {
	return fmt.Sprintf("'%s' shadows an existing binding (first defined at %s)", e.Name, e.OriginalRegion)
}
func (e NewShadowed) Code() ErrCode    { return Shadowed }
func (e NewShadowed) getStack() []byte { return e.stack }
func (e NewShadowed) withStack(stack []byte) KarstError {
	e.stack = stack
	return e
}

type NewInvalidExtensionType struct {
	ast.Positioner
	Kind  ExtensionKind
	stack []byte
}

func (e NewInvalidExtensionType) Error() string {
	return fmt.Sprintf("invalid %s extension type: a %s tail must be another %s, a type variable, or absent", e.Kind, e.Kind, e.Kind)
}
func (e NewInvalidExtensionType) Code() ErrCode    { return InvalidExtensionType }
func (e NewInvalidExtensionType) getStack() []byte { return e.stack }
func (e NewInvalidExtensionType) withStack(stack []byte) KarstError {
	e.stack = stack
	return e
}

type NewDuplicateRecordFieldType struct {
	ast.Positioner
	FieldName      string
	RecordRegion   ast.Range
	ReplacedRegion ast.Range
	stack          []byte
}

func (e NewDuplicateRecordFieldType) Error() string {
	return fmt.Sprintf("record field '%s' appears more than once; the earlier occurrence at %s is replaced", e.FieldName, e.ReplacedRegion)
}
func (e NewDuplicateRecordFieldType) Code() ErrCode    { return DuplicateRecordFieldType }
func (e NewDuplicateRecordFieldType) getStack() []byte { return e.stack }
func (e NewDuplicateRecordFieldType) withStack(stack []byte) KarstError {
	e.stack = stack
	return e
}

type NewDuplicateTag struct {
	ast.Positioner
	TagName        string
	TagUnionRegion ast.Range
	ReplacedRegion ast.Range
	stack          []byte
}

func (e NewDuplicateTag) Error() string {
	return fmt.Sprintf("tag '%s' appears more than once; the earlier occurrence at %s is replaced", e.TagName, e.ReplacedRegion)
}
func (e NewDuplicateTag) Code() ErrCode    { return DuplicateTag }
func (e NewDuplicateTag) getStack() []byte { return e.stack }
func (e NewDuplicateTag) withStack(stack []byte) KarstError {
	e.stack = stack
	return e
}

type NewNestedDatatype struct {
	ast.Positioner
	Alias                    string
	DifferingRecursionRegion ast.Range
	stack                    []byte
}

func (e NewNestedDatatype) Error() string {
	return fmt.Sprintf("alias '%s' is a nested datatype: it refers to itself with different type arguments (at %s), which cannot be represented", e.Alias, e.DifferingRecursionRegion)
}
func (e NewNestedDatatype) Code() ErrCode    { return NestedDatatype }
func (e NewNestedDatatype) getStack() []byte { return e.stack }
func (e NewNestedDatatype) withStack(stack []byte) KarstError {
	e.stack = stack
	return e
}
