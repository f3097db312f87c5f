package model

import "fmt"

type (
	// Recipe is a named, ordered list of tool names defining one
	// regeneration pipeline.
	Recipe struct {
		Name  string   `json:"name" yaml:"name"`
		Tools []string `json:"tools" yaml:"tools"`
	}

	// ToolDef describes an external executable together with its argument
	// template. Argument tokens may contain placeholders that are expanded
	// per document just before invocation.
	ToolDef struct {
		Name    string   `json:"name" yaml:"name"`
		Command string   `json:"command" yaml:"command"`
		Args    []string `json:"args" yaml:"args"`
	}

	// Invocation is a fully resolved command template: the executable
	// followed by its (still unexpanded) argument tokens.
	Invocation struct {
		Tool string
		Argv []string
	}

	// ToolTable maps the selected recipe onto concrete invocations. It
	// preserves the recipe's declared tool order; tool names the recipe
	// references but no definition provides are absent.
	ToolTable struct {
		byName map[string]*Invocation
		order  []string
	}
)

// Validate reports a shape violation or nil.
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("recipe name is required")
	}
	return nil
}

// Validate reports a shape violation or nil.
func (t *ToolDef) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if t.Command == "" {
		return fmt.Errorf("tool %q command is required", t.Name)
	}
	return nil
}

// Template returns the executable prepended to the argument tokens.
func (t *ToolDef) Template() []string {
	argv := make([]string, 0, 1+len(t.Args))
	argv = append(argv, t.Command)
	argv = append(argv, t.Args...)
	return argv
}

// NewToolTable restricts defs to the tools the recipe references, in the
// recipe's declared order. Duplicate definitions keep the first occurrence.
func NewToolTable(recipe *Recipe, defs []*ToolDef) *ToolTable {
	table := &ToolTable{byName: make(map[string]*Invocation)}
	if recipe == nil {
		return table
	}
	index := make(map[string]*ToolDef, len(defs))
	for _, def := range defs {
		if _, ok := index[def.Name]; ok {
			continue
		}
		index[def.Name] = def
	}
	for _, name := range recipe.Tools {
		def, ok := index[name]
		if !ok {
			continue
		}
		if _, ok := table.byName[name]; ok {
			continue
		}
		table.byName[name] = &Invocation{Tool: name, Argv: def.Template()}
		table.order = append(table.order, name)
	}
	return table
}

// Lookup returns the invocation template for a tool name.
func (t *ToolTable) Lookup(name string) (*Invocation, bool) {
	inv, ok := t.byName[name]
	return inv, ok
}

// Order returns tool names in recipe order.
func (t *ToolTable) Order() []string {
	return append([]string(nil), t.order...)
}

// Invocations returns the invocation templates in recipe order.
func (t *ToolTable) Invocations() []*Invocation {
	ret := make([]*Invocation, 0, len(t.order))
	for _, name := range t.order {
		ret = append(ret, t.byName[name])
	}
	return ret
}

// Size returns the number of resolved tools.
func (t *ToolTable) Size() int {
	return len(t.order)
}
