package domain

import (
	"sort"
	"strings"
)

// CanonicalIngredients normalizes a comma-separated ingredient list into a cache key:
// tokens are trimmed, lowercased, sorted and joined with commas. Empty tokens are kept,
// so "tomato," and ",tomato" share the key ",tomato".
func CanonicalIngredients(input string) string {
	tokens := strings.Split(strings.ToLower(strings.TrimSpace(input)), ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	sort.Strings(tokens)
	return strings.Join(tokens, ",")
}

// CanonicalCuisine normalizes a cuisine name
func CanonicalCuisine(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// CanonicalRecipeKey normalizes an external recipe id
func CanonicalRecipeKey(recipeID string) string {
	return strings.ToLower(strings.TrimSpace(recipeID))
}
