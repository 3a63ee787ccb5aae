package ir0

// Module is an ordered collection of template declarations. Order is
// insertion order and is what code generation starts from, so identical
// inputs produce identical modules.
type Module struct {
	decls   []*Decl
	byName  map[string]DeclID
	globals []Global
}

func NewModule() *Module {
	return &Module{byName: make(map[string]DeclID)}
}

// New allocates a declaration with the given name and registers it.
// Names must be unique within a module.
func (m *Module) New(name string) *Decl {
	d := &Decl{ID: DeclID(len(m.decls) + 1), Name: name}
	m.decls = append(m.decls, d)
	m.byName[name] = d.ID
	return d
}

// Add registers an externally built declaration, assigning its ID.
func (m *Module) Add(d *Decl) DeclID {
	d.ID = DeclID(len(m.decls) + 1)
	m.decls = append(m.decls, d)
	m.byName[d.Name] = d.ID
	return d.ID
}

// Decl returns the declaration for id, or nil for NoDeclID.
func (m *Module) Decl(id DeclID) *Decl {
	if !id.IsValid() || int(id) > len(m.decls) {
		return nil
	}
	return m.decls[id-1]
}

// ByName looks a declaration up by name.
func (m *Module) ByName(name string) *Decl {
	if id, ok := m.byName[name]; ok {
		return m.Decl(id)
	}
	return nil
}

// Decls returns every declaration in insertion order. The slice is shared;
// callers must not reorder it.
func (m *Module) Decls() []*Decl { return m.decls }

// Len reports the number of declarations.
func (m *Module) Len() int { return len(m.decls) }

// Rename changes a declaration's name, keeping the index coherent.
func (m *Module) Rename(d *Decl, name string) {
	delete(m.byName, d.Name)
	d.Name = name
	m.byName[name] = d.ID
}
