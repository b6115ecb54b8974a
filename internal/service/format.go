package service

import (
	"fmt"
	"strings"

	"souschef/internal/domain"
)

// RecipeListResponse renders a numbered candidate list
func RecipeListResponse(recipes []domain.RecipeCandidate) string {
	var b strings.Builder
	b.WriteString("Lets see here...\nI've found these recipes:\n")
	for i, r := range recipes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Title)
	}
	b.WriteString("\nPlease enter the corresponding number of your choice.")
	return b.String()
}

// RecipeDetailResponse renders a recipe summary followed by the steps of its first instruction block
func RecipeDetailResponse(info *domain.RecipeInfo, instructions []domain.Instruction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ok, it takes *%d* minutes to make *%d* servings of *%s*. Here are the steps:\n\n",
		info.ReadyInMinutes, info.Servings, info.Title)

	if len(instructions) > 0 && len(instructions[0].Steps) > 0 {
		for i, step := range instructions[0].Steps {
			equipment := "None"
			if len(step.Equipment) > 0 {
				equipment = strings.Join(step.Equipment, ", ")
			}
			fmt.Fprintf(&b, "*Step %d*:\n_Equipment_: %s\n_Action_: %s\n\n", i+1, equipment, step.Text)
		}
	} else {
		b.WriteString("_No instructions available for this recipe._\n\n")
	}

	b.WriteString("*Say anything to me to start over...*")
	return b.String()
}

// startResponse joins the engine's output lines, each followed by a newline
func startResponse(output []string) string {
	var b strings.Builder
	for _, line := range output {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
