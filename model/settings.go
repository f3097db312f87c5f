package model

import "fmt"

// Settings mirrors the LaTeX Workshop fragment of a VS Code settings document.
// Both arrays are mandatory; parsing is strict and there is no defaulting.
type Settings struct {
	Recipes []*Recipe  `json:"latex-workshop.latex.recipes" yaml:"latex-workshop.latex.recipes"`
	Tools   []*ToolDef `json:"latex-workshop.latex.tools" yaml:"latex-workshop.latex.tools"`
}

// Validate reports the first shape violation or nil.
func (s *Settings) Validate() error {
	if len(s.Recipes) == 0 {
		return fmt.Errorf("settings: at least one recipe is required")
	}
	if len(s.Tools) == 0 {
		return fmt.Errorf("settings: at least one tool definition is required")
	}
	for _, recipe := range s.Recipes {
		if err := recipe.Validate(); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	}
	for _, tool := range s.Tools {
		if err := tool.Validate(); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	}
	return nil
}

// Recipe returns the named recipe, or the first one when name is empty.
func (s *Settings) Recipe(name string) (*Recipe, error) {
	if name == "" {
		if len(s.Recipes) == 0 {
			return nil, fmt.Errorf("settings: no recipes defined")
		}
		return s.Recipes[0], nil
	}
	for _, recipe := range s.Recipes {
		if recipe.Name == name {
			return recipe, nil
		}
	}
	return nil, fmt.Errorf("settings: recipe %q not found", name)
}

// ToolTable builds the restricted tool table for the named recipe.
func (s *Settings) ToolTable(recipeName string) (*Recipe, *ToolTable, error) {
	recipe, err := s.Recipe(recipeName)
	if err != nil {
		return nil, nil, err
	}
	return recipe, NewToolTable(recipe, s.Tools), nil
}
