package store

// EntityKind names a persisted entity class.
type EntityKind string

// Persisted entity kinds.
const (
	KindUser         EntityKind = "user"
	KindFoodAnalysis EntityKind = "food_analysis"
	KindGoal         EntityKind = "nutrition_goal"
)

// tableFor maps an entity kind to its backing table.
func tableFor(kind EntityKind) string {
	switch kind {
	case KindUser:
		return "users"
	case KindFoodAnalysis:
		return "food_analyses"
	case KindGoal:
		return "nutrition_goals"
	default:
		return ""
	}
}

// ChangeOp is the kind of mutation applied to an entity.
type ChangeOp string

// Change operations.
const (
	OpCreate ChangeOp = "create"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// Change describes one mutation inside a committed write scope.
type Change struct {
	Kind EntityKind
	Op   ChangeOp
	ID   string
}

// ChangeSet is the ordered list of mutations a write scope committed.
// It is broadcast to subscribers only after the commit succeeds, so an
// observer that reacts by querying always sees the committed state.
type ChangeSet []Change

// Contains reports whether the set touches the given kind.
func (cs ChangeSet) Contains(kind EntityKind) bool {
	for _, c := range cs {
		if c.Kind == kind {
			return true
		}
	}
	return false
}
