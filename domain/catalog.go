package domain

import (
	"context"
	"encoding/json"
)

// Course is a read-only projection of a catalog record. Nil pointers mean
// the field was absent (or null) upstream.
type Course struct {
	Title       *string  `json:"title"`
	Instructor  *string  `json:"instructor"`
	Description *string  `json:"description"`
	Modules     []Module `json:"modules"`
}

// Module only matters for its lesson count; lessons stay opaque.
type Module struct {
	Lessons []json.RawMessage `json:"lessons"`
}

// CourseCatalog fetches the current list of courses from upstream.
type CourseCatalog interface {
	ListCourses(ctx context.Context) ([]Course, error)
}

// ContextProvider produces the context block injected into every prompt.
// Implementations must never fail; they degrade to fallback content.
type ContextProvider interface {
	GetContext(ctx context.Context) string
}
