package domain

// RecipeCandidate is one entry of a presented recipe list
type RecipeCandidate struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RecipeInfo is the summary of a recipe returned by the lookup API
type RecipeInfo struct {
	ID             string
	Title          string
	ReadyInMinutes int
	Servings       int
}

// RecipeStep is one analyzed instruction step
type RecipeStep struct {
	Number    int
	Text      string
	Equipment []string
}

// Instruction is a named block of steps; recipes usually have exactly one
type Instruction struct {
	Name  string
	Steps []RecipeStep
}

// Popularity is one row of an aggregate usage view
type Popularity struct {
	Kind     string `json:"kind"`
	Label    string `json:"label"`
	Requests int64  `json:"requests"`
}
