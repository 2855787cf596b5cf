package models

const (
	VisualDiagram = "diagram"
	VisualVideo   = "video"
)

type KnowledgeVisual struct {
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description"`
}

type KnowledgeArticle struct {
	Slug     string            `yaml:"slug" json:"slug"`
	Title    string            `yaml:"title" json:"title"`
	Category string            `yaml:"category" json:"category"`
	Content  []string          `yaml:"content" json:"content"`
	Visuals  []KnowledgeVisual `yaml:"visuals,omitempty" json:"visuals,omitempty"`
}
