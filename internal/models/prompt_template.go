package model

// PromptTemplate is a reusable chat prompt, grouped by category.
type PromptTemplate struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

type PromptTemplatePatch struct {
	Name     *string   `json:"name,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Category *string   `json:"category,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}
