package catalog

import (
	"testing"
)

func TestMapperMapCategories(t *testing.T) {
	file := &File{
		Categories: []EntryProps{
			{ID: "social", Label: "Social", Description: "Profiles"},
			{ID: "Adult", Sensitive: true},
		},
	}

	mapper := NewMapper()
	categories, err := mapper.MapCategories(file)
	if err != nil {
		t.Fatalf("MapCategories() error = %v", err)
	}

	if len(categories) != 2 {
		t.Fatalf("MapCategories() returned %v categories, want 2", len(categories))
	}

	if categories[0].ID != "social" || categories[0].Label != "Social" {
		t.Errorf("unexpected first category: %+v", categories[0])
	}

	// ID is lowercased and the label falls back to the capitalized ID.
	if categories[1].ID != "adult" {
		t.Errorf("category ID = %v, want adult", categories[1].ID)
	}
	if categories[1].Label != "Adult" {
		t.Errorf("category Label = %v, want Adult", categories[1].Label)
	}
	if !categories[1].Sensitive {
		t.Error("adult category should keep its sensitive flag")
	}
}

func TestMapperMapCategoriesSkipsInvalid(t *testing.T) {
	file := &File{
		Categories: []EntryProps{
			{ID: "  ", Label: "Blank"},
			{ID: "music"},
			{ID: "music", Label: "Duplicate"},
		},
	}

	mapper := NewMapper()
	categories, err := mapper.MapCategories(file)
	if err != nil {
		t.Fatalf("MapCategories() error = %v", err)
	}

	if len(categories) != 1 {
		t.Fatalf("MapCategories() returned %v categories, want 1", len(categories))
	}
	if categories[0].ID != "music" || categories[0].Label != "Music" {
		t.Errorf("unexpected category: %+v", categories[0])
	}
}

func TestMapperMapCategoriesEmpty(t *testing.T) {
	mapper := NewMapper()
	categories, err := mapper.MapCategories(&File{})

	if err == nil {
		t.Error("MapCategories() with empty file should return error")
	}
	if categories != nil {
		t.Errorf("MapCategories() with empty file should return nil, got %v", len(categories))
	}
}
