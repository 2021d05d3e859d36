package dynamo

// Key identifies a single item by its hash key.
type Key struct {
	Attribute string
	Value     string
}

// FieldUpdate is one attribute assignment of a partial update.
type FieldUpdate struct {
	Field string
	Value interface{}
}

// FieldUpdates is the normalized, ordered set of assignments of a partial
// update. It carries no store syntax; Store translates it when executing.
type FieldUpdates []FieldUpdate

// Set appends an assignment, replacing an earlier one for the same field.
func (u *FieldUpdates) Set(field string, value interface{}) {
	for i := range *u {
		if (*u)[i].Field == field {
			(*u)[i].Value = value
			return
		}
	}
	*u = append(*u, FieldUpdate{Field: field, Value: value})
}

// Has reports whether field is assigned.
func (u FieldUpdates) Has(field string) bool {
	for _, f := range u {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Fields lists the assigned attribute names in order.
func (u FieldUpdates) Fields() []string {
	fields := make([]string, 0, len(u))
	for _, f := range u {
		fields = append(fields, f.Field)
	}
	return fields
}

type PredicateKind int

const (
	PredicateEqual PredicateKind = iota
	PredicateExists
)

// Predicate is a single server-side condition on one attribute.
type Predicate struct {
	Kind  PredicateKind
	Field string
	Value interface{}
}

func Equal(field string, value interface{}) Predicate {
	return Predicate{Kind: PredicateEqual, Field: field, Value: value}
}

func Exists(field string) Predicate {
	return Predicate{Kind: PredicateExists, Field: field}
}

// Predicates are AND-combined. An empty set constrains nothing.
type Predicates []Predicate

// EqualIfSet adds an equality predicate only when value is supplied.
func (p *Predicates) EqualIfSet(field string, value *string) {
	if value == nil {
		return
	}
	*p = append(*p, Equal(field, *value))
}

func (p *Predicates) Add(pred Predicate) {
	*p = append(*p, pred)
}
