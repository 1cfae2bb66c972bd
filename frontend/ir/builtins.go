package ir

// Builtin symbols get fixed ident IDs within their module so they can be
// matched against constants anywhere in the compiler.

var (
	SymListList = Symbol{Module: ModuleList, Ident: 0}
	SymSetSet   = Symbol{Module: ModuleSet, Ident: 0}
	SymDictDict = Symbol{Module: ModuleDict, Ident: 0}
	SymStrStr   = Symbol{Module: ModuleStr, Ident: 0}
	SymBoolBool = Symbol{Module: ModuleBool, Ident: 0}
)

// Numeric builtins. Each width has both a user-facing alias (U8) and the
// underlying compiler-internal alias (Unsigned8); both resolve to the same
// derivation behavior.
var (
	SymNumU8   = Symbol{Module: ModuleNum, Ident: 0}
	SymNumI8   = Symbol{Module: ModuleNum, Ident: 1}
	SymNumU16  = Symbol{Module: ModuleNum, Ident: 2}
	SymNumI16  = Symbol{Module: ModuleNum, Ident: 3}
	SymNumU32  = Symbol{Module: ModuleNum, Ident: 4}
	SymNumI32  = Symbol{Module: ModuleNum, Ident: 5}
	SymNumU64  = Symbol{Module: ModuleNum, Ident: 6}
	SymNumI64  = Symbol{Module: ModuleNum, Ident: 7}
	SymNumU128 = Symbol{Module: ModuleNum, Ident: 8}
	SymNumI128 = Symbol{Module: ModuleNum, Ident: 9}
	SymNumF32  = Symbol{Module: ModuleNum, Ident: 10}
	SymNumF64  = Symbol{Module: ModuleNum, Ident: 11}
	SymNumDec  = Symbol{Module: ModuleNum, Ident: 12}

	SymNumUnsigned8   = Symbol{Module: ModuleNum, Ident: 13}
	SymNumSigned8     = Symbol{Module: ModuleNum, Ident: 14}
	SymNumUnsigned16  = Symbol{Module: ModuleNum, Ident: 15}
	SymNumSigned16    = Symbol{Module: ModuleNum, Ident: 16}
	SymNumUnsigned32  = Symbol{Module: ModuleNum, Ident: 17}
	SymNumSigned32    = Symbol{Module: ModuleNum, Ident: 18}
	SymNumUnsigned64  = Symbol{Module: ModuleNum, Ident: 19}
	SymNumSigned64    = Symbol{Module: ModuleNum, Ident: 20}
	SymNumUnsigned128 = Symbol{Module: ModuleNum, Ident: 21}
	SymNumSigned128   = Symbol{Module: ModuleNum, Ident: 22}
	SymNumBinary32    = Symbol{Module: ModuleNum, Ident: 23}
	SymNumBinary64    = Symbol{Module: ModuleNum, Ident: 24}
	SymNumDecimal     = Symbol{Module: ModuleNum, Ident: 25}
)

// Builtin members of the Encode ability, one per directly encodable primitive.
var (
	SymEncodeU8     = Symbol{Module: ModuleEncode, Ident: 0}
	SymEncodeI8     = Symbol{Module: ModuleEncode, Ident: 1}
	SymEncodeU16    = Symbol{Module: ModuleEncode, Ident: 2}
	SymEncodeI16    = Symbol{Module: ModuleEncode, Ident: 3}
	SymEncodeU32    = Symbol{Module: ModuleEncode, Ident: 4}
	SymEncodeI32    = Symbol{Module: ModuleEncode, Ident: 5}
	SymEncodeU64    = Symbol{Module: ModuleEncode, Ident: 6}
	SymEncodeI64    = Symbol{Module: ModuleEncode, Ident: 7}
	SymEncodeU128   = Symbol{Module: ModuleEncode, Ident: 8}
	SymEncodeI128   = Symbol{Module: ModuleEncode, Ident: 9}
	SymEncodeF32    = Symbol{Module: ModuleEncode, Ident: 10}
	SymEncodeF64    = Symbol{Module: ModuleEncode, Ident: 11}
	SymEncodeDec    = Symbol{Module: ModuleEncode, Ident: 12}
	SymEncodeString = Symbol{Module: ModuleEncode, Ident: 13}
)

// Builtin members of the Decode ability.
var (
	SymDecodeU8     = Symbol{Module: ModuleDecode, Ident: 0}
	SymDecodeI8     = Symbol{Module: ModuleDecode, Ident: 1}
	SymDecodeU16    = Symbol{Module: ModuleDecode, Ident: 2}
	SymDecodeI16    = Symbol{Module: ModuleDecode, Ident: 3}
	SymDecodeU32    = Symbol{Module: ModuleDecode, Ident: 4}
	SymDecodeI32    = Symbol{Module: ModuleDecode, Ident: 5}
	SymDecodeU64    = Symbol{Module: ModuleDecode, Ident: 6}
	SymDecodeI64    = Symbol{Module: ModuleDecode, Ident: 7}
	SymDecodeU128   = Symbol{Module: ModuleDecode, Ident: 8}
	SymDecodeI128   = Symbol{Module: ModuleDecode, Ident: 9}
	SymDecodeF32    = Symbol{Module: ModuleDecode, Ident: 10}
	SymDecodeF64    = Symbol{Module: ModuleDecode, Ident: 11}
	SymDecodeDec    = Symbol{Module: ModuleDecode, Ident: 12}
	SymDecodeString = Symbol{Module: ModuleDecode, Ident: 13}
)
