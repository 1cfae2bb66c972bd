package types

import (
	"fmt"
	"hash/fnv"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/karstlang/karst/frontend/ast"
	"github.com/karstlang/karst/frontend/ir"
	"github.com/karstlang/karst/util"
)

// Variable identifies one type variable in the substitution store.
// The variable and the shape it currently stands for are separate,
// independently substitutable entities.
type Variable uint64

func (v Variable) String() string {
	return "t" + strconv.FormatUint(uint64(v), 10)
}

// Type is a type expression as built by the annotation canonicalizer,
// before solving. Equality between types is structural and implemented
// through Hash, following the same convention as the rest of the front end:
// each variant decides what its own equality means.
type Type interface {
	fmt.Stringer
	Hash() uint64
	typeNode()
}

var (
	_ Type = (*TypeVariable)(nil)
	_ Type = (*Function)(nil)
	_ Type = (*Apply)(nil)
	_ Type = (*Record)(nil)
	_ Type = (*TagUnion)(nil)
	_ Type = (*RecursiveTagUnion)(nil)
	_ Type = (*EmptyRecord)(nil)
	_ Type = (*EmptyTagUnion)(nil)
	_ Type = (*DelayedAlias)(nil)
	_ Type = (*AliasInstance)(nil)
	_ Type = (*HostExposedAlias)(nil)
	_ Type = (*Erroneous)(nil)
)

// Equal compares two types structurally.
func Equal(this, other Type) bool {
	return this.Hash() == other.Hash()
}

// TypeVariable is a reference to a type variable.
type TypeVariable struct {
	V Variable
}

func (TypeVariable) typeNode()        {}
func (t TypeVariable) String() string { return t.V.String() }
func (t TypeVariable) Hash() uint64 {
	const prime uint64 = 7919
	return prime * (uint64(t.V) + 31)
}

// Function is an arrow type. Closure is the lambda-set placeholder minted
// for this arrow; it is always a TypeVariable when produced by the
// canonicalizer.
type Function struct {
	Args    []Type
	Closure Type
	Ret     Type
}

func (Function) typeNode() {}
func (t Function) String() string {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("(%s -%s-> %s)", strings.Join(args, ", "), t.Closure, t.Ret)
}
func (t Function) Hash() uint64 {
	var hash uint64 = 2166136261
	for _, arg := range t.Args {
		hash = hash*16777619 ^ arg.Hash()
	}
	hash = hash*16777619 ^ t.Closure.Hash()
	hash = hash*16777619 ^ t.Ret.Hash()
	return hash
}

// Apply is a named type constructor applied to arguments. When the symbol
// does not resolve to a known alias, the node stays opaque to further
// analysis until solved.
type Apply struct {
	Symbol ir.Symbol
	Args   []Type
	Region ast.Range
}

func (Apply) typeNode() {}
func (t Apply) String() string {
	if len(t.Args) == 0 {
		return t.Symbol.String()
	}
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s %s", t.Symbol, strings.Join(args, " "))
}

// Hash for Apply deliberately excludes the region: two textual occurrences
// of the same application are the same type.
func (t Apply) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Apply"))
	_, _ = h.Write([]byte(t.Symbol.String()))
	hash := h.Sum64()
	for _, arg := range t.Args {
		hash = hash*31 ^ arg.Hash()
	}
	return hash
}

// RecordField is the type of one record field, required or optional as
// written in the annotation.
type RecordField struct {
	Type     Type
	Optional bool
}

func (f RecordField) String() string {
	if f.Optional {
		return "? " + f.Type.String()
	}
	return f.Type.String()
}

// Extension is the tail of a record or tag union: closed, or open through
// a type. The zero value is closed.
type Extension struct {
	open Type
}

// ExtensionFrom builds an Extension, normalizing the dedicated empty shapes
// to a closed extension.
func ExtensionFrom(t Type) Extension {
	switch t.(type) {
	case EmptyRecord, EmptyTagUnion:
		return Extension{}
	default:
		return Extension{open: t}
	}
}

// OpenExtension builds an extension through t without normalizing.
func OpenExtension(t Type) Extension { return Extension{open: t} }

func (e Extension) IsClosed() bool { return e.open == nil }

// Open returns the extension type when the extension is open.
func (e Extension) Open() (Type, bool) {
	if e.open == nil {
		return nil, false
	}
	return e.open, true
}

func (e Extension) String() string {
	if e.open == nil {
		return ""
	}
	return e.open.String()
}

func (e Extension) hashInto(hash uint64) uint64 {
	if e.open == nil {
		return hash * 97
	}
	return hash*89 ^ e.open.Hash()
}

// Record is a record shape with an extension. A Record with zero fields is
// a different type from EmptyRecord: `{}a` is open through `a`, `{}` is not.
type Record struct {
	Fields map[string]RecordField
	Ext    Extension
}

func (Record) typeNode() {}
func (t Record) String() string {
	names := t.sortedFieldNames()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + t.Fields[name].String()
	}
	return "{" + strings.Join(parts, ", ") + "}" + t.Ext.String()
}
func (t Record) sortedFieldNames() []string {
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
func (t Record) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Record"))
	hash := h.Sum64()
	for _, name := range t.sortedFieldNames() {
		field := t.Fields[name]
		nameHasher := fnv.New64a()
		_, _ = nameHasher.Write([]byte(name))
		hash = hash*31 ^ nameHasher.Sum64()
		hash = hash*31 ^ field.Type.Hash()
		if field.Optional {
			hash = hash * 53
		}
	}
	return t.Ext.hashInto(hash)
}

// Tag is one alternative of a tag union, with its payload types.
type Tag struct {
	Name string
	Args []Type
}

func (t Tag) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return t.Name + " " + strings.Join(args, " ")
}

func (t Tag) hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.Name))
	hash := h.Sum64()
	for _, arg := range t.Args {
		hash = hash*31 ^ arg.Hash()
	}
	return hash
}

// TagUnion is a tag union shape with an extension. Tags are kept sorted by
// name; the canonicalizer sorts once at construction so alias instantiation
// never needs to re-sort.
type TagUnion struct {
	Tags []Tag
	Ext  Extension
}

func (TagUnion) typeNode() {}
func (t TagUnion) String() string {
	parts := make([]string, len(t.Tags))
	for i, tag := range t.Tags {
		parts[i] = tag.String()
	}
	return "[" + strings.Join(parts, ", ") + "]" + t.Ext.String()
}
func (t TagUnion) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("TagUnion"))
	hash := h.Sum64()
	for _, tag := range t.Tags {
		hash = hash*31 ^ tag.hash()
	}
	return t.Ext.hashInto(hash)
}

// RecursiveTagUnion is a tag union whose body refers to itself through
// RecVar. The recursion variable and the shape it stands for stay separate
// so each can be substituted independently.
type RecursiveTagUnion struct {
	RecVar Variable
	Tags   []Tag
	Ext    Extension
}

func (RecursiveTagUnion) typeNode() {}
func (t RecursiveTagUnion) String() string {
	inner := TagUnion{Tags: t.Tags, Ext: t.Ext}
	return fmt.Sprintf("(%s as %s)", inner, t.RecVar)
}
func (t RecursiveTagUnion) Hash() uint64 {
	inner := TagUnion{Tags: t.Tags, Ext: t.Ext}
	return inner.Hash()*41 ^ (uint64(t.RecVar) + 104729)
}

// EmptyRecord is the closed record with no fields, `{}`.
type EmptyRecord struct{}

func (EmptyRecord) typeNode()      {}
func (EmptyRecord) String() string { return "{}" }
func (EmptyRecord) Hash() uint64   { return 15487469 }

// EmptyTagUnion is the closed tag union with no tags, `[]`.
type EmptyTagUnion struct{}

func (EmptyTagUnion) typeNode()      {}
func (EmptyTagUnion) String() string { return "[]" }
func (EmptyTagUnion) Hash() uint64   { return 32452843 }

// AliasCommon is the symbolic part of an alias reference: the alias symbol
// and the argument bound to each of its parameters, by parameter name.
type AliasCommon struct {
	Symbol             ir.Symbol
	TypeArguments      []util.Pair[string, Type]
	LambdaSetVariables []LambdaSet
}

func (c AliasCommon) hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(c.Symbol.String()))
	hash := h.Sum64()
	for _, arg := range c.TypeArguments {
		nameHasher := fnv.New64a()
		_, _ = nameHasher.Write([]byte(arg.Fst))
		hash = hash*31 ^ nameHasher.Sum64()
		hash = hash*31 ^ arg.Snd.Hash()
	}
	for _, ls := range c.LambdaSetVariables {
		hash = hash*37 ^ ls.Inner.Hash()
	}
	return hash
}

func (c AliasCommon) String() string {
	if len(c.TypeArguments) == 0 {
		return c.Symbol.String()
	}
	args := make([]string, len(c.TypeArguments))
	for i, arg := range c.TypeArguments {
		args[i] = arg.Snd.String()
	}
	return fmt.Sprintf("%s %s", c.Symbol, strings.Join(args, " "))
}

// DelayedAlias is an alias reference left symbolic for the solver to expand.
type DelayedAlias struct {
	Common AliasCommon
}

func (DelayedAlias) typeNode()        {}
func (t DelayedAlias) String() string { return t.Common.String() }
func (t DelayedAlias) Hash() uint64   { return 433 * t.Common.hash() }

// AliasInstance is an alias reference expanded eagerly: the body has already
// been substituted with the arguments.
type AliasInstance struct {
	Symbol             ir.Symbol
	TypeArguments      []util.Pair[string, Type]
	LambdaSetVariables []LambdaSet
	Actual             Type
	Kind               AliasKind
}

func (AliasInstance) typeNode() {}
func (t AliasInstance) String() string {
	return AliasCommon{Symbol: t.Symbol, TypeArguments: t.TypeArguments}.String()
}
func (t AliasInstance) Hash() uint64 {
	common := AliasCommon{Symbol: t.Symbol, TypeArguments: t.TypeArguments, LambdaSetVariables: t.LambdaSetVariables}
	return common.hash()*9973 ^ t.Actual.Hash()
}

// HostExposedAlias wraps a parameter-free alias defined in the current
// compilation unit. ActualVar is a solver-only variable standing for the
// alias body, needed so host boundaries can refer to the solved shape.
type HostExposedAlias struct {
	Name               ir.Symbol
	TypeArguments      []util.Pair[string, Type]
	LambdaSetVariables []LambdaSet
	Actual             Type
	ActualVar          Variable
}

func (HostExposedAlias) typeNode()        {}
func (t HostExposedAlias) String() string { return t.Name.String() }
func (t HostExposedAlias) Hash() uint64 {
	common := AliasCommon{Symbol: t.Name, TypeArguments: t.TypeArguments, LambdaSetVariables: t.LambdaSetVariables}
	return common.hash()*10007 ^ t.Actual.Hash() ^ uint64(t.ActualVar)
}

// Erroneous is a placeholder for a type that could not be canonicalized.
// It keeps the surrounding structure well formed so downstream passes never
// crash on a hole.
type Erroneous struct {
	Problem Problem
}

func (Erroneous) typeNode()        {}
func (t Erroneous) String() string { return "<error: " + t.Problem.String() + ">" }
func (t Erroneous) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("Erroneous"))
	_, _ = h.Write([]byte(t.Problem.String()))
	return h.Sum64()
}

// SortTags sorts tags by name, in place. The input is typically nearly
// sorted already, so an insertion sort stays close to linear.
func SortTags(tags []Tag) {
	for i := 1; i < len(tags); i++ {
		pos, _ := slices.BinarySearchFunc(tags[:i], tags[i], func(a, b Tag) int {
			return strings.Compare(a.Name, b.Name)
		})
		for j := i; j > pos; j-- {
			tags[j-1], tags[j] = tags[j], tags[j-1]
		}
	}
}
