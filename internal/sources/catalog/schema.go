package catalog

// File represents the top-level structure of categories.yaml
type File struct {
	Categories []EntryProps `yaml:"categories"`
}

// EntryProps contains the raw properties of one category entry
type EntryProps struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label,omitempty"`
	Description string `yaml:"description,omitempty"`
	Sensitive   bool   `yaml:"sensitive,omitempty"`
}

// Category is a validated catalog entry used for interstitial copy
type Category struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Sensitive   bool   `json:"sensitive"`
}
