// Package schema registers the built-in import templates with the core
// registry. Import this package to ensure all templates are registered.
package schema

// This file exists to provide a single import point.
// Each template file uses init() to register its templates.
