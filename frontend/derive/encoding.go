package derive

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/karstlang/karst/frontend/ir"
	"github.com/karstlang/karst/frontend/types"
)

// FlatEncodable classifies a solved type for encode derivation: either a
// builtin handles it directly, or a keyed implementation must be generated.
type FlatEncodable interface {
	flatEncodableNode()
}

var (
	_ FlatEncodable = (*EncodeImmediate)(nil)
	_ FlatEncodable = (*EncodeKey)(nil)
)

// EncodeImmediate names the builtin that encodes the type; nothing needs
// generating.
type EncodeImmediate struct {
	Symbol ir.Symbol
}

func (EncodeImmediate) flatEncodableNode() {}

// EncodeKey wraps the structural key a generated implementation is shared
// under.
type EncodeKey struct {
	Key EncodableKey
}

func (EncodeKey) flatEncodableNode() {}

// EncodableKey is the canonical fingerprint of a compound shape. Keys are
// order-independent for records and tag unions: sorting happens here, never
// in callers.
type EncodableKey interface {
	DebugName() string
	Hash() uint64
	encodableKeyNode()
}

var (
	_ EncodableKey = (*EncodeList)(nil)
	_ EncodableKey = (*EncodeSet)(nil)
	_ EncodableKey = (*EncodeDict)(nil)
	_ EncodableKey = (*EncodeRecord)(nil)
	_ EncodableKey = (*EncodeTagUnion)(nil)
)

// EncodeList keys all lists; the element type is left generic.
type EncodeList struct{}

func (EncodeList) encodableKeyNode() {}
func (EncodeList) DebugName() string { return "list" }
func (EncodeList) Hash() uint64      { return 262147 }

// EncodeSet keys all sets.
type EncodeSet struct{}

func (EncodeSet) encodableKeyNode() {}
func (EncodeSet) DebugName() string { return "set" }
func (EncodeSet) Hash() uint64      { return 524287 }

// EncodeDict keys all dicts.
type EncodeDict struct{}

func (EncodeDict) encodableKeyNode() {}
func (EncodeDict) DebugName() string { return "dict" }
func (EncodeDict) Hash() uint64      { return 1048573 }

// EncodeRecord keys a record by its sorted field names.
type EncodeRecord struct {
	Fields []string
}

func (EncodeRecord) encodableKeyNode() {}
func (k EncodeRecord) DebugName() string {
	return fmt.Sprintf("record {%s}", strings.Join(k.Fields, ","))
}
func (k EncodeRecord) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("record"))
	for _, field := range k.Fields {
		_, _ = h.Write([]byte(field))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

// TagArity is one alternative of a tag union key: its name and how many
// payload arguments it carries.
type TagArity struct {
	Name  string
	Arity int
}

// EncodeTagUnion keys a tag union by its sorted (name, arity) pairs. The
// recursion marker of a recursive union is not part of the key: derived
// implementations only look at the union's surface, and nested instances
// are filled in by later specialization.
type EncodeTagUnion struct {
	Tags []TagArity
}

func (EncodeTagUnion) encodableKeyNode() {}
func (k EncodeTagUnion) DebugName() string {
	parts := make([]string, len(k.Tags))
	for i, tag := range k.Tags {
		parts[i] = fmt.Sprintf("%s %d", tag.Name, tag.Arity)
	}
	return fmt.Sprintf("tag_union [%s]", strings.Join(parts, ","))
}
func (k EncodeTagUnion) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte("tag_union"))
	hash := h.Sum64()
	for _, tag := range k.Tags {
		nameHasher := fnv.New64a()
		_, _ = nameHasher.Write([]byte(tag.Name))
		hash = hash*31 ^ nameHasher.Sum64()
		hash = hash*31 ^ uint64(tag.Arity)
	}
	return hash
}

// FromVarEncodable classifies the type behind v for encode derivation.
// It returns ErrUnboundVar when v is not concrete enough yet, and
// ErrUnderivable when its shape has no encode rule.
func FromVarEncodable(subs *types.Subs, v types.Variable) (FlatEncodable, error) {
	switch content := subs.GetContentWithoutCompacting(v).(type) {
	case types.Structure:
		return encodableFromFlatType(subs, content.FlatType)

	case types.AliasContent:
		if immediate, ok := encodeImmediateForNumber(content.Symbol); ok {
			return EncodeImmediate{Symbol: immediate}, nil
		}
		// every alias, opaque included, derives as its real representation
		return FromVarEncodable(subs, content.RealVar)

	case types.FlexVar, types.RigidVar, types.FlexAbleVar, types.RigidAbleVar:
		return nil, ErrUnboundVar

	case types.RecursionVar, types.LambdaSetContent, types.RangedNumber, types.ErrorContent:
		return nil, ErrUnderivable

	default:
		panic("FromVarEncodable: unhandled Content variant")
	}
}

func encodableFromFlatType(subs *types.Subs, flat types.FlatType) (FlatEncodable, error) {
	switch flat := flat.(type) {
	case types.ApplyFlat:
		switch flat.Symbol {
		case ir.SymListList:
			return EncodeKey{Key: EncodeList{}}, nil
		case ir.SymSetSet:
			return EncodeKey{Key: EncodeSet{}}, nil
		case ir.SymDictDict:
			return EncodeKey{Key: EncodeDict{}}, nil
		case ir.SymStrStr:
			return EncodeImmediate{Symbol: ir.SymEncodeString}, nil
		default:
			return nil, ErrUnderivable
		}

	case types.RecordFlat:
		fields, ext := gatherRecordFields(subs, flat)
		if err := checkExtVar(subs, ext, func(f types.FlatType) bool {
			_, empty := f.(types.EmptyRecordFlat)
			return empty
		}); err != nil {
			return nil, err
		}
		names := make([]string, len(fields))
		for i, field := range fields {
			names[i] = field.Name
		}
		sort.Strings(names)
		return EncodeKey{Key: EncodeRecord{Fields: names}}, nil

	case types.TagUnionFlat:
		return encodableFromTags(subs, flat.Tags, flat.Ext)
	case types.RecursiveTagUnionFlat:
		return encodableFromTags(subs, flat.Tags, flat.Ext)

	case types.FunctionOrTagUnionFlat:
		return EncodeKey{Key: EncodeTagUnion{Tags: []TagArity{{Name: flat.TagName}}}}, nil

	case types.EmptyRecordFlat:
		return EncodeKey{Key: EncodeRecord{}}, nil
	case types.EmptyTagUnionFlat:
		return EncodeKey{Key: EncodeTagUnion{}}, nil

	case types.FuncFlat, types.ErroneousFlat:
		return nil, ErrUnderivable

	default:
		panic("encodableFromFlatType: unhandled FlatType variant")
	}
}

func encodableFromTags(subs *types.Subs, tags []types.TagVars, ext types.Variable) (FlatEncodable, error) {
	allTags, finalExt := gatherTags(subs, tags, ext)
	if err := checkExtVar(subs, finalExt, func(f types.FlatType) bool {
		_, empty := f.(types.EmptyTagUnionFlat)
		return empty
	}); err != nil {
		return nil, err
	}
	arities := make([]TagArity, len(allTags))
	for i, tag := range allTags {
		arities[i] = TagArity{Name: tag.Name, Arity: len(tag.Args)}
	}
	sort.Slice(arities, func(i, j int) bool { return arities[i].Name < arities[j].Name })
	return EncodeKey{Key: EncodeTagUnion{Tags: arities}}, nil
}

// encodeImmediateForNumber maps a builtin numeric alias to the builtin that
// encodes it. Both the user-facing and compiler-internal alias names map
// to the same immediate.
func encodeImmediateForNumber(symbol ir.Symbol) (ir.Symbol, bool) {
	switch symbol {
	case ir.SymNumU8, ir.SymNumUnsigned8:
		return ir.SymEncodeU8, true
	case ir.SymNumI8, ir.SymNumSigned8:
		return ir.SymEncodeI8, true
	case ir.SymNumU16, ir.SymNumUnsigned16:
		return ir.SymEncodeU16, true
	case ir.SymNumI16, ir.SymNumSigned16:
		return ir.SymEncodeI16, true
	case ir.SymNumU32, ir.SymNumUnsigned32:
		return ir.SymEncodeU32, true
	case ir.SymNumI32, ir.SymNumSigned32:
		return ir.SymEncodeI32, true
	case ir.SymNumU64, ir.SymNumUnsigned64:
		return ir.SymEncodeU64, true
	case ir.SymNumI64, ir.SymNumSigned64:
		return ir.SymEncodeI64, true
	case ir.SymNumU128, ir.SymNumUnsigned128:
		return ir.SymEncodeU128, true
	case ir.SymNumI128, ir.SymNumSigned128:
		return ir.SymEncodeI128, true
	case ir.SymNumF32, ir.SymNumBinary32:
		return ir.SymEncodeF32, true
	case ir.SymNumF64, ir.SymNumBinary64:
		return ir.SymEncodeF64, true
	case ir.SymNumDec, ir.SymNumDecimal:
		return ir.SymEncodeDec, true
	default:
		return ir.Symbol{}, false
	}
}
