package enum

import "fmt"

// RecipeStatus tracks a station ticket from creation to pickup.
type RecipeStatus string

const (
	RecipeStatusNew       RecipeStatus = "NEW"
	RecipeStatusPreparing RecipeStatus = "PREPARING"
	RecipeStatusReady     RecipeStatus = "READY"
)

func (s RecipeStatus) Valid() bool {
	switch s {
	case RecipeStatusNew, RecipeStatusPreparing, RecipeStatusReady:
		return true
	}
	return false
}

func (s RecipeStatus) String() string {
	return string(s)
}

// ParseRecipeStatus converts a string into a RecipeStatus, rejecting unknown values.
func ParseRecipeStatus(s string) (RecipeStatus, error) {
	st := RecipeStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown recipe status %q", s)
	}
	return st, nil
}
