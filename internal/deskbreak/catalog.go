package deskbreak

// Catalog is the mutable weighted exercise pool. Iteration order is the
// insertion order and never changes. Catalog is not safe for concurrent
// use on its own; the SessionManager serializes all access, and weight
// writes only happen at session boundaries.
type Catalog struct {
	defs []ExerciseDefinition
}

// NewCatalog builds a catalog from definitions, copying them. Definitions
// without an explicit weight default to 1.0.
func NewCatalog(defs []ExerciseDefinition) *Catalog {
	c := &Catalog{defs: make([]ExerciseDefinition, len(defs))}
	copy(c.defs, defs)
	for i := range c.defs {
		if c.defs[i].Weight <= 0 {
			c.defs[i].Weight = 1.0
		}
	}
	return c
}

// All returns a copy of the definitions in stable order.
func (c *Catalog) All() []ExerciseDefinition {
	out := make([]ExerciseDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// AdjustWeight sets the weight of the named definition from the tag
// (More 2.0, Less 0.5, None 1.0). Unknown names are a silent no-op.
func (c *Catalog) AdjustWeight(name string, tag Tag) {
	for i := range c.defs {
		if c.defs[i].Name == name {
			c.defs[i].Weight = tag.Weight()
			return
		}
	}
}

// WeightOf returns the current weight of the named definition.
func (c *Catalog) WeightOf(name string) (float64, bool) {
	for i := range c.defs {
		if c.defs[i].Name == name {
			return c.defs[i].Weight, true
		}
	}
	return 0, false
}
