// Package model contains the in-memory representation of recipes, tools and
// the documents they are applied to.
//
// A recipe is typically loaded from an editor settings document (JSON) into
// the Settings structure; the ToolTable derived from it restricts and orders
// the tool definitions a run may invoke.  Command templates carry
// placeholders that are expanded per document via Expansion.
package model
