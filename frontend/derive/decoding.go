package derive

import (
	"github.com/karstlang/karst/frontend/ir"
	"github.com/karstlang/karst/frontend/types"
)

// FlatDecodable classifies a solved type for decode derivation. Decode
// generation currently covers only lists and the builtin primitives;
// records and tag unions are not derivable yet.
type FlatDecodable interface {
	flatDecodableNode()
}

var (
	_ FlatDecodable = (*DecodeImmediate)(nil)
	_ FlatDecodable = (*DecodeKey)(nil)
)

// DecodeImmediate names the builtin that decodes the type.
type DecodeImmediate struct {
	Symbol ir.Symbol
}

func (DecodeImmediate) flatDecodableNode() {}

// DecodeKey wraps the structural key a generated decoder is shared under.
type DecodeKey struct {
	Key DecodableKey
}

func (DecodeKey) flatDecodableNode() {}

// DecodableKey is the canonical fingerprint of a decodable compound shape.
type DecodableKey interface {
	DebugName() string
	Hash() uint64
	decodableKeyNode()
}

var _ DecodableKey = (*DecodeList)(nil)

// DecodeList keys all lists; the element type is left generic.
type DecodeList struct{}

func (DecodeList) decodableKeyNode() {}
func (DecodeList) DebugName() string { return "list" }
func (DecodeList) Hash() uint64      { return 2097143 }

// FromVarDecodable classifies the type behind v for decode derivation.
func FromVarDecodable(subs *types.Subs, v types.Variable) (FlatDecodable, error) {
	switch content := subs.GetContentWithoutCompacting(v).(type) {
	case types.Structure:
		return decodableFromFlatType(content.FlatType)

	case types.AliasContent:
		if immediate, ok := decodeImmediateForNumber(content.Symbol); ok {
			return DecodeImmediate{Symbol: immediate}, nil
		}
		return FromVarDecodable(subs, content.RealVar)

	case types.FlexVar, types.RigidVar, types.FlexAbleVar, types.RigidAbleVar:
		return nil, ErrUnboundVar

	case types.RecursionVar, types.LambdaSetContent, types.RangedNumber, types.ErrorContent:
		return nil, ErrUnderivable

	default:
		panic("FromVarDecodable: unhandled Content variant")
	}
}

func decodableFromFlatType(flat types.FlatType) (FlatDecodable, error) {
	switch flat := flat.(type) {
	case types.ApplyFlat:
		switch flat.Symbol {
		case ir.SymListList:
			return DecodeKey{Key: DecodeList{}}, nil
		case ir.SymStrStr:
			return DecodeImmediate{Symbol: ir.SymDecodeString}, nil
		default:
			return nil, ErrUnderivable
		}

	case types.RecordFlat, types.TagUnionFlat, types.RecursiveTagUnionFlat,
		types.FunctionOrTagUnionFlat, types.EmptyRecordFlat, types.EmptyTagUnionFlat,
		types.FuncFlat, types.ErroneousFlat:
		return nil, ErrUnderivable

	default:
		panic("decodableFromFlatType: unhandled FlatType variant")
	}
}

func decodeImmediateForNumber(symbol ir.Symbol) (ir.Symbol, bool) {
	switch symbol {
	case ir.SymNumU8, ir.SymNumUnsigned8:
		return ir.SymDecodeU8, true
	case ir.SymNumI8, ir.SymNumSigned8:
		return ir.SymDecodeI8, true
	case ir.SymNumU16, ir.SymNumUnsigned16:
		return ir.SymDecodeU16, true
	case ir.SymNumI16, ir.SymNumSigned16:
		return ir.SymDecodeI16, true
	case ir.SymNumU32, ir.SymNumUnsigned32:
		return ir.SymDecodeU32, true
	case ir.SymNumI32, ir.SymNumSigned32:
		return ir.SymDecodeI32, true
	case ir.SymNumU64, ir.SymNumUnsigned64:
		return ir.SymDecodeU64, true
	case ir.SymNumI64, ir.SymNumSigned64:
		return ir.SymDecodeI64, true
	case ir.SymNumU128, ir.SymNumUnsigned128:
		return ir.SymDecodeU128, true
	case ir.SymNumI128, ir.SymNumSigned128:
		return ir.SymDecodeI128, true
	case ir.SymNumF32, ir.SymNumBinary32:
		return ir.SymDecodeF32, true
	case ir.SymNumF64, ir.SymNumBinary64:
		return ir.SymDecodeF64, true
	case ir.SymNumDec, ir.SymNumDecimal:
		return ir.SymDecodeDec, true
	default:
		return ir.Symbol{}, false
	}
}
