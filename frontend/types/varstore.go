package types

// VarStore mints unique type variables. It is mutable and not suitable for
// concurrent use; it travels as an explicit parameter through the whole
// canonicalization call tree.
type VarStore struct {
	next Variable
}

func NewVarStore() *VarStore {
	return &VarStore{}
}

// Fresh returns a variable never returned before by this store.
func (s *VarStore) Fresh() Variable {
	v := s.next
	s.next++
	return v
}

// Peek returns the next variable without minting it. Useful for tests and
// for splitting generation ranges if canonicalization is ever parallelized.
func (s *VarStore) Peek() Variable {
	return s.next
}
