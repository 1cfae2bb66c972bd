package ir

import "fmt"

// ModuleID identifies a module within one compilation. The builtin modules
// have fixed IDs so that builtin symbols can be compared against constants.
type ModuleID uint32

const (
	ModuleNum ModuleID = iota
	ModuleStr
	ModuleBool
	ModuleList
	ModuleSet
	ModuleDict
	ModuleEncode
	ModuleDecode
	// ModuleDerived is the synthetic module that owns generated
	// derive implementations. It is never written by users.
	ModuleDerived

	// FirstUserModule is where user module IDs start.
	FirstUserModule
)

// IsBuiltin reports whether the module ships with the compiler.
func (m ModuleID) IsBuiltin() bool {
	return m < FirstUserModule
}

func (m ModuleID) String() string {
	switch m {
	case ModuleNum:
		return "Num"
	case ModuleStr:
		return "Str"
	case ModuleBool:
		return "Bool"
	case ModuleList:
		return "List"
	case ModuleSet:
		return "Set"
	case ModuleDict:
		return "Dict"
	case ModuleEncode:
		return "Encode"
	case ModuleDecode:
		return "Decode"
	case ModuleDerived:
		return "#Derived"
	default:
		return fmt.Sprintf("Module%d", uint32(m))
	}
}

// IdentID is an index into a module's identifier table.
type IdentID uint32

// Symbol is a fully resolved identifier: a module plus an interned name.
type Symbol struct {
	Module ModuleID
	Ident  IdentID
}

func (s Symbol) IsBuiltin() bool { return s.Module.IsBuiltin() }

func (s Symbol) String() string {
	return fmt.Sprintf("%s.%d", s.Module, uint32(s.Ident))
}

// IdentIDs interns identifier names for one module.
// The zero value is not usable; construct with NewIdentIDs.
type IdentIDs struct {
	byName map[string]IdentID
	names  []string
}

func NewIdentIDs() *IdentIDs {
	return &IdentIDs{byName: make(map[string]IdentID)}
}

// GetOrInsert returns the ID for name, interning it on first use.
func (ids *IdentIDs) GetOrInsert(name string) IdentID {
	if id, ok := ids.byName[name]; ok {
		return id
	}
	id := IdentID(len(ids.names))
	ids.names = append(ids.names, name)
	ids.byName[name] = id
	return id
}

// GetID returns the ID for name, if it has been interned.
func (ids *IdentIDs) GetID(name string) (IdentID, bool) {
	id, ok := ids.byName[name]
	return id, ok
}

// Name returns the interned text for id.
func (ids *IdentIDs) Name(id IdentID) (string, bool) {
	if int(id) >= len(ids.names) {
		return "", false
	}
	return ids.names[id], true
}

// GenUnique mints an ID with no attached name, for symbols that only
// ever need identity (generated code, not user-visible names).
func (ids *IdentIDs) GenUnique() IdentID {
	id := IdentID(len(ids.names))
	ids.names = append(ids.names, "")
	return id
}
