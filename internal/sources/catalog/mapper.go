package catalog

import (
	"fmt"
	"strings"
)

// Mapper converts raw catalog entries to validated categories
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapCategories converts a parsed categories file to []Category.
// Entries without an ID are skipped; a missing label falls back to the
// capitalized ID.
func (m *Mapper) MapCategories(file *File) ([]Category, error) {
	categories := make([]Category, 0, len(file.Categories))
	seen := make(map[string]struct{}, len(file.Categories))

	for _, props := range file.Categories {
		id := strings.ToLower(strings.TrimSpace(props.ID))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		label := strings.TrimSpace(props.Label)
		if label == "" {
			label = capitalize(id)
		}

		categories = append(categories, Category{
			ID:          id,
			Label:       label,
			Description: strings.TrimSpace(props.Description),
			Sensitive:   props.Sensitive,
		})
	}

	if len(categories) == 0 {
		return nil, fmt.Errorf("no valid categories found in catalog")
	}

	return categories, nil
}

// capitalize upper-cases the first letter of an ASCII identifier
// Example: "social" -> "Social"
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
