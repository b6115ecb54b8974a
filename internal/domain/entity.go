package domain

import (
	"strings"
	"time"
)

// EntityKind discriminates stored entities
type EntityKind string

const (
	KindIngredient EntityKind = "ingredient"
	KindCuisine    EntityKind = "cuisine"
	KindRecipe     EntityKind = "recipe"
	KindUser       EntityKind = "user"
)

// Entity is a persisted ingredient, cuisine, recipe or user record.
// (Kind, Key) is unique.
type Entity struct {
	ID        int64
	Kind      EntityKind
	Key       string
	Payload   Payload
	CreatedAt time.Time
}

// Payload holds the variant-specific fields of an entity.
// Only the fields of the entity's kind are populated.
type Payload struct {
	// ingredient, cuisine
	Recipes []RecipeCandidate `json:"recipes,omitempty"`

	// recipe
	Title        string `json:"title,omitempty"`
	Instructions string `json:"instructions,omitempty"`

	// user
	Name        string        `json:"name,omitempty"`
	Ingredients []NameCount   `json:"ingredients,omitempty"`
	Cuisines    []NameCount   `json:"cuisines,omitempty"`
	RecipeUsage []RecipeCount `json:"recipe_usage,omitempty"`
}

// NameCount is a usage counter embedded in a user record
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RecipeCount is a recipe usage counter embedded in a user record
type RecipeCount struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// DisplayName returns the name written into usage records for this entity
func (e *Entity) DisplayName() string {
	switch e.Kind {
	case KindRecipe:
		return e.Payload.Title
	case KindUser:
		return e.Payload.Name
	default:
		return e.Key
	}
}

// IncrementUsage bumps the user's embedded counter for target, creating it at zero first.
// The receiver must be a user entity.
func (e *Entity) IncrementUsage(target *Entity) {
	switch target.Kind {
	case KindIngredient:
		e.Payload.Ingredients = incrementName(e.Payload.Ingredients, target.Key)
	case KindCuisine:
		e.Payload.Cuisines = incrementName(e.Payload.Cuisines, target.Key)
	case KindRecipe:
		for i := range e.Payload.RecipeUsage {
			if e.Payload.RecipeUsage[i].ID == target.Key {
				e.Payload.RecipeUsage[i].Count++
				return
			}
		}
		e.Payload.RecipeUsage = append(e.Payload.RecipeUsage, RecipeCount{
			ID:    target.Key,
			Title: target.Payload.Title,
			Count: 1,
		})
	}
}

func incrementName(counts []NameCount, name string) []NameCount {
	for i := range counts {
		if counts[i].Name == name {
			counts[i].Count++
			return counts
		}
	}
	return append(counts, NameCount{Name: name, Count: 1})
}

// NewUser builds an unsaved user entity for a transport user id
func NewUser(userID string) *Entity {
	return &Entity{
		Kind:    KindUser,
		Key:     userID,
		Payload: Payload{Name: userID},
	}
}

// NewIngredient builds an unsaved ingredient entity from raw user input
func NewIngredient(input string, recipes []RecipeCandidate) *Entity {
	return &Entity{
		Kind:    KindIngredient,
		Key:     CanonicalIngredients(input),
		Payload: Payload{Recipes: recipes},
	}
}

// NewCuisine builds an unsaved cuisine entity from raw user input
func NewCuisine(input string, recipes []RecipeCandidate) *Entity {
	return &Entity{
		Kind:    KindCuisine,
		Key:     CanonicalCuisine(input),
		Payload: Payload{Recipes: recipes},
	}
}

// NewRecipe builds an unsaved recipe entity
func NewRecipe(recipeID, title, instructions string) *Entity {
	return &Entity{
		Kind: KindRecipe,
		Key:  CanonicalRecipeKey(recipeID),
		Payload: Payload{
			Title:        strings.TrimSpace(title),
			Instructions: instructions,
		},
	}
}
