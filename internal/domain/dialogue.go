package domain

// DialogueContext is the opaque key-value state owned by the dialogue engine
type DialogueContext map[string]any

// Well-known dialogue context keys
const (
	ContextFavorites   = "is_favorites"
	ContextIngredients = "is_ingredients"
	ContextSelection   = "is_selection"
	ContextChoice      = "selection"
	ContextRecipes     = "recipes"
)

// Flag reports whether key holds boolean true
func (c DialogueContext) Flag(key string) bool {
	v, ok := c[key].(bool)
	return ok && v
}

// String returns the value at key if it is a string
func (c DialogueContext) String(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

// DialogueEntity is an entity extracted by the dialogue engine
type DialogueEntity struct {
	Entity string `json:"entity"`
	Value  string `json:"value"`
}

// DialogueResponse is the result of one dialogue engine turn
type DialogueResponse struct {
	Context  DialogueContext
	Entities []DialogueEntity
	Output   []string
}

// InboundMessage is a chat message from a human user
type InboundMessage struct {
	Text      string
	SenderID  string
	ChannelID string
}
