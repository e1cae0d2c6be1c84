package contract

// Provider is the metadata side of a run: it enumerates the contract types and
// resolves type references by full name.
type Provider interface {
	Types() []*Type
	Lookup(fullName string) (*Type, bool)
}

// Assembly is an in-memory Provider. Types keep contract order.
type Assembly struct {
	types  []*Type
	byName map[string]*Type
}

func NewAssembly(types ...*Type) *Assembly {
	a := &Assembly{byName: make(map[string]*Type, len(types))}
	for _, t := range types {
		a.add(t)
	}
	return a
}

func (a *Assembly) add(t *Type) {
	a.types = append(a.types, t)
	a.byName[t.FullName()] = t
	for _, p := range t.Properties {
		p.DeclaringType = t
	}
}

func (a *Assembly) Types() []*Type {
	return a.types
}

func (a *Assembly) Lookup(fullName string) (*Type, bool) {
	t, ok := a.byName[fullName]
	return t, ok
}

// StringConstantPredicate builds the "is this the platform string-constant
// type" capability from a list of type names.
func StringConstantPredicate(names []string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(returnType string) bool {
		return set[returnType]
	}
}
