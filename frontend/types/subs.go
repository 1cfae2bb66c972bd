package types

import (
	"github.com/karstlang/karst/frontend/ir"
)

// Subs is the substitution store the solver writes into: every variable maps
// to the Content it has been resolved to (or a flex/rigid placeholder while
// unsolved). This subsystem only ever inspects it without compacting, so no
// union-find path compression happens here.
type Subs struct {
	store    *VarStore
	contents map[Variable]Content
}

func NewSubs() *Subs {
	return &Subs{
		store:    NewVarStore(),
		contents: make(map[Variable]Content),
	}
}

// Fresh mints a variable resolved to the given content.
func (s *Subs) Fresh(content Content) Variable {
	v := s.store.Fresh()
	s.contents[v] = content
	return v
}

// FreshFlex mints an unconstrained, unnamed variable.
func (s *Subs) FreshFlex() Variable {
	return s.Fresh(FlexVar{})
}

// SetContent overwrites the content of an existing variable.
func (s *Subs) SetContent(v Variable, content Content) {
	s.contents[v] = content
}

// GetContentWithoutCompacting returns the content of v as stored, without
// performing any path compression. A variable this store has never seen is
// an unconstrained flex variable.
func (s *Subs) GetContentWithoutCompacting(v Variable) Content {
	if content, ok := s.contents[v]; ok {
		return content
	}
	return FlexVar{}
}

// Content is what a solved (or in-progress) variable stands for.
type Content interface {
	contentNode()
}

var (
	_ Content = (*Structure)(nil)
	_ Content = (*AliasContent)(nil)
	_ Content = (*RecursionVar)(nil)
	_ Content = (*FlexVar)(nil)
	_ Content = (*RigidVar)(nil)
	_ Content = (*FlexAbleVar)(nil)
	_ Content = (*RigidAbleVar)(nil)
	_ Content = (*RangedNumber)(nil)
	_ Content = (*LambdaSetContent)(nil)
	_ Content = (*ErrorContent)(nil)
)

// Structure is a concrete flat shape.
type Structure struct {
	FlatType FlatType
}

func (Structure) contentNode() {}

// AliasContent is a solved alias reference: the alias view plus the variable
// holding its real (structural) content.
type AliasContent struct {
	Symbol  ir.Symbol
	Args    []Variable
	RealVar Variable
	Kind    AliasKind
}

func (AliasContent) contentNode() {}

// RecursionVar marks the self-reference point of a recursive structure.
type RecursionVar struct {
	Structure Variable
	Name      string
}

func (RecursionVar) contentNode() {}

// FlexVar is an unconstrained variable the solver may still fill in.
type FlexVar struct {
	Name string
}

func (FlexVar) contentNode() {}

// RigidVar is a user-named variable that must not unify with a concrete type.
type RigidVar struct {
	Name string
}

func (RigidVar) contentNode() {}

// FlexAbleVar is a flex variable constrained to implement an ability.
type FlexAbleVar struct {
	Name    string
	Ability ir.Symbol
}

func (FlexAbleVar) contentNode() {}

// RigidAbleVar is a rigid variable constrained to implement an ability.
type RigidAbleVar struct {
	Name    string
	Ability ir.Symbol
}

func (RigidAbleVar) contentNode() {}

// RangedNumber is a numeric literal not yet committed to one width.
type RangedNumber struct {
	Widths []ir.Symbol
}

func (RangedNumber) contentNode() {}

// LambdaSetContent is a solved lambda set. Its members are irrelevant to
// this subsystem; only the tag matters.
type LambdaSetContent struct {
	Solved []Variable
}

func (LambdaSetContent) contentNode() {}

// ErrorContent marks a variable poisoned by an earlier type error.
type ErrorContent struct{}

func (ErrorContent) contentNode() {}

// FlatType is the shape under a Structure content.
type FlatType interface {
	flatTypeNode()
}

var (
	_ FlatType = (*ApplyFlat)(nil)
	_ FlatType = (*FuncFlat)(nil)
	_ FlatType = (*RecordFlat)(nil)
	_ FlatType = (*TagUnionFlat)(nil)
	_ FlatType = (*FunctionOrTagUnionFlat)(nil)
	_ FlatType = (*RecursiveTagUnionFlat)(nil)
	_ FlatType = (*EmptyRecordFlat)(nil)
	_ FlatType = (*EmptyTagUnionFlat)(nil)
	_ FlatType = (*ErroneousFlat)(nil)
)

type ApplyFlat struct {
	Symbol ir.Symbol
	Args   []Variable
}

func (ApplyFlat) flatTypeNode() {}

type FuncFlat struct {
	Args    []Variable
	Closure Variable
	Ret     Variable
}

func (FuncFlat) flatTypeNode() {}

// RecordFieldVar is one solved record field.
type RecordFieldVar struct {
	Name     string
	Var      Variable
	Optional bool
}

type RecordFlat struct {
	Fields []RecordFieldVar
	Ext    Variable
}

func (RecordFlat) flatTypeNode() {}

// TagVars is one solved tag union alternative.
type TagVars struct {
	Name string
	Args []Variable
}

type TagUnionFlat struct {
	Tags []TagVars
	Ext  Variable
}

func (TagUnionFlat) flatTypeNode() {}

// FunctionOrTagUnionFlat is a single-tag union that may still collapse into
// a function; for derivation purposes it behaves as a one-tag union.
type FunctionOrTagUnionFlat struct {
	TagName string
	Symbol  ir.Symbol
	Ext     Variable
}

func (FunctionOrTagUnionFlat) flatTypeNode() {}

type RecursiveTagUnionFlat struct {
	RecVar Variable
	Tags   []TagVars
	Ext    Variable
}

func (RecursiveTagUnionFlat) flatTypeNode() {}

type EmptyRecordFlat struct{}

func (EmptyRecordFlat) flatTypeNode() {}

type EmptyTagUnionFlat struct{}

func (EmptyTagUnionFlat) flatTypeNode() {}

type ErroneousFlat struct {
	Problem Problem
}

func (ErroneousFlat) flatTypeNode() {}

// InstantiateRigids walks everything reachable from v and re-introduces
// rigid variables as flex, so an imported generic signature can unify
// freely at its use site.
func InstantiateRigids(subs *Subs, v Variable) {
	visited := make(map[Variable]struct{})
	stack := []Variable{v}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		switch content := subs.GetContentWithoutCompacting(current).(type) {
		case RigidVar:
			subs.SetContent(current, FlexVar{Name: content.Name})
		case RigidAbleVar:
			subs.SetContent(current, FlexAbleVar{Name: content.Name, Ability: content.Ability})
		case Structure:
			stack = append(stack, flatTypeVars(content.FlatType)...)
		case AliasContent:
			stack = append(stack, content.Args...)
			stack = append(stack, content.RealVar)
		case RecursionVar:
			stack = append(stack, content.Structure)
		case LambdaSetContent:
			stack = append(stack, content.Solved...)
		case FlexVar, FlexAbleVar, RangedNumber, ErrorContent:
			// nothing reachable below these
		default:
			panic("InstantiateRigids: unhandled Content variant")
		}
	}
}

func flatTypeVars(flat FlatType) []Variable {
	switch flat := flat.(type) {
	case ApplyFlat:
		return flat.Args
	case FuncFlat:
		vars := make([]Variable, 0, len(flat.Args)+2)
		vars = append(vars, flat.Args...)
		return append(vars, flat.Closure, flat.Ret)
	case RecordFlat:
		vars := make([]Variable, 0, len(flat.Fields)+1)
		for _, field := range flat.Fields {
			vars = append(vars, field.Var)
		}
		return append(vars, flat.Ext)
	case TagUnionFlat:
		return tagUnionVars(flat.Tags, flat.Ext)
	case RecursiveTagUnionFlat:
		return append(tagUnionVars(flat.Tags, flat.Ext), flat.RecVar)
	case FunctionOrTagUnionFlat:
		return []Variable{flat.Ext}
	case EmptyRecordFlat, EmptyTagUnionFlat, ErroneousFlat:
		return nil
	default:
		panic("flatTypeVars: unhandled FlatType variant")
	}
}

func tagUnionVars(tags []TagVars, ext Variable) []Variable {
	vars := make([]Variable, 0, len(tags)+1)
	for _, tag := range tags {
		vars = append(vars, tag.Args...)
	}
	return append(vars, ext)
}
