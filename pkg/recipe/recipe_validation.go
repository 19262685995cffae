package recipe

import (
	"fmt"

	"foodgram/domain"
)

// ValidateRecipe runs the semantic checks that struct tags cannot express.
// It reports the first problem found.
func ValidateRecipe(req domain.RecipeRequest) error {
	if len(req.Ingredients) == 0 {
		return domain.NewValidationError("ingredients", domain.CodeMissingIngredients, "at least one ingredient is required")
	}

	seenIngredients := make(map[string]struct{}, len(req.Ingredients))
	for _, line := range req.Ingredients {
		if _, dup := seenIngredients[line.ID]; dup {
			return domain.NewValidationError("ingredients", domain.CodeDuplicateIngredient,
				fmt.Sprintf("ingredient %s is listed more than once", line.ID))
		}
		seenIngredients[line.ID] = struct{}{}
	}

	for _, line := range req.Ingredients {
		if line.Amount <= 0 {
			return domain.NewValidationError("ingredients", domain.CodeNonPositiveAmount,
				fmt.Sprintf("amount of ingredient %s must be at least 1", line.ID))
		}
		if line.Amount > domain.MaxIngredientAmount {
			return domain.NewValidationError("ingredients", domain.CodeAmountTooLarge,
				fmt.Sprintf("amount of ingredient %s must be at most %d", line.ID, domain.MaxIngredientAmount))
		}
	}

	if len(req.Tags) == 0 {
		return domain.NewValidationError("tags", domain.CodeMissingTags, "at least one tag is required")
	}

	seenTags := make(map[string]struct{}, len(req.Tags))
	for _, tag := range req.Tags {
		if _, dup := seenTags[tag]; dup {
			return domain.NewValidationError("tags", domain.CodeDuplicateTag,
				fmt.Sprintf("tag %s is listed more than once", tag))
		}
		seenTags[tag] = struct{}{}
	}

	if req.CookingTime <= 0 {
		return domain.NewValidationError("cooking_time", domain.CodeNonPositiveDuration, "cooking time must be at least 1 minute")
	}

	return nil
}
