package domain

// SessionState is the dialogue state the router acts on for one turn
type SessionState string

const (
	StateAwaitingTopic            SessionState = "awaiting_topic"
	StateAwaitingFavoritesDisplay SessionState = "awaiting_favorites_display"
	StateAwaitingIngredientText   SessionState = "awaiting_ingredient_text"
	StateAwaitingCuisineEntity    SessionState = "awaiting_cuisine_entity"
	StateAwaitingSelectionDigit   SessionState = "awaiting_selection_digit"
)

// CuisineEntity is the dialogue entity name that carries a cuisine
const CuisineEntity = "cuisine"

// DeriveState maps a dialogue engine response onto a SessionState.
// Priority: favorites, ingredients, selection, cuisine entity, topic. First match wins.
func DeriveState(resp *DialogueResponse) SessionState {
	switch {
	case resp.Context.Flag(ContextFavorites):
		return StateAwaitingFavoritesDisplay
	case resp.Context.Flag(ContextIngredients):
		return StateAwaitingIngredientText
	case resp.Context.Flag(ContextSelection):
		return StateAwaitingSelectionDigit
	case len(resp.Entities) > 0 && resp.Entities[0].Entity == CuisineEntity:
		return StateAwaitingCuisineEntity
	default:
		return StateAwaitingTopic
	}
}
