// Package derive maps solved types to canonical structural keys, so two
// types with the same shape share one generated encode or decode
// implementation.
package derive

import (
	"github.com/pkg/errors"

	"github.com/karstlang/karst/frontend/types"
	"github.com/karstlang/karst/internal/log"
)

var logger = log.DefaultLogger.With("section", "derive")

// Outcomes of key extraction. These are ordinary results the caller uses to
// decide applicability, not diagnostics for the user.
var (
	// ErrUnderivable means the type's shape has no derivation rule and
	// never will.
	ErrUnderivable = errors.New("type shape is not derivable")
	// ErrUnboundVar means the type is not yet concrete enough to derive
	// against; the caller should solve further and retry.
	ErrUnboundVar = errors.New("type variable is not bound to a concrete shape")
)

// checkExtVar verifies the extension of a record or tag union resolved to
// its closed empty shape. A still-unbound extension (flex, rigid, or
// ability-constrained) is ErrUnboundVar; anything else is ErrUnderivable.
func checkExtVar(subs *types.Subs, ext types.Variable, isEmpty func(types.FlatType) bool) error {
	switch content := subs.GetContentWithoutCompacting(ext).(type) {
	case types.Structure:
		if isEmpty(content.FlatType) {
			return nil
		}
		return ErrUnderivable
	case types.FlexVar, types.RigidVar, types.FlexAbleVar, types.RigidAbleVar:
		return ErrUnboundVar
	default:
		return ErrUnderivable
	}
}

// gatherRecordFields follows the extension chain of a record, collecting
// fields from every record layer, and returns them with the final
// extension variable.
func gatherRecordFields(subs *types.Subs, record types.RecordFlat) ([]types.RecordFieldVar, types.Variable) {
	fields := make([]types.RecordFieldVar, 0, len(record.Fields))
	fields = append(fields, record.Fields...)
	ext := record.Ext

	for {
		switch content := subs.GetContentWithoutCompacting(ext).(type) {
		case types.Structure:
			if inner, ok := content.FlatType.(types.RecordFlat); ok {
				fields = append(fields, inner.Fields...)
				ext = inner.Ext
				continue
			}
			return fields, ext
		case types.AliasContent:
			ext = content.RealVar
		default:
			return fields, ext
		}
	}
}

// gatherTags follows the extension chain of a tag union, collecting tags
// from every union layer, and returns them with the final extension
// variable.
func gatherTags(subs *types.Subs, tags []types.TagVars, ext types.Variable) ([]types.TagVars, types.Variable) {
	all := make([]types.TagVars, 0, len(tags))
	all = append(all, tags...)

	for {
		switch content := subs.GetContentWithoutCompacting(ext).(type) {
		case types.Structure:
			switch inner := content.FlatType.(type) {
			case types.TagUnionFlat:
				all = append(all, inner.Tags...)
				ext = inner.Ext
			case types.RecursiveTagUnionFlat:
				all = append(all, inner.Tags...)
				ext = inner.Ext
			default:
				return all, ext
			}
		case types.AliasContent:
			ext = content.RealVar
		default:
			return all, ext
		}
	}
}
