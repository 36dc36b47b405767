package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Difficulty levels a stored recipe may carry. Filters additionally accept
// the "all" sentinel, which is never a valid stored value.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	DifficultyAll = "all"
)

var validDifficulty = map[string]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// Dietary tags recognized by the filter and validation layers.
var validDietary = map[string]bool{
	"vegetarian":  true,
	"vegan":       true,
	"gluten-free": true,
}

// Recipe represents a stored recipe. IDs are assigned by the store and are
// immutable once created. CreatedAt is only set for generated recipes.
type Recipe struct {
	ID           int        `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Ingredients  []string   `json:"ingredients"`
	Instructions []string   `json:"instructions"`
	CookTime     int        `json:"cookTime" db:"cook_time"`
	Difficulty   string     `json:"difficulty" db:"difficulty"`
	Servings     int        `json:"servings" db:"servings"`
	Calories     float64    `json:"calories" db:"calories"`
	Protein      float64    `json:"protein" db:"protein"`
	Cuisine      string     `json:"cuisine" db:"cuisine"`
	Dietary      []string   `json:"dietary"`
	Rating       float64    `json:"rating" db:"rating"`
	FromLLM      bool       `json:"fromLLM,omitempty" db:"from_llm"`
	CreatedAt    *time.Time `json:"timestamp,omitempty" db:"created_at"`
}

// Match pairs a recipe with its ingredient-overlap score for a single query.
// The score is ephemeral search context and is never written back to the store.
type Match struct {
	Recipe Recipe `json:"recipe"`
	Score  int    `json:"match_score"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Recipe.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type Alias Recipe // Create an alias to avoid infinite recursion
	aux := &struct {
		Difficulty string   `json:"difficulty"`
		Dietary    []string `json:"dietary"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Difficulty = strings.ToLower(strings.TrimSpace(aux.Difficulty))
	r.Dietary = make([]string, 0, len(aux.Dietary))
	for _, d := range aux.Dietary {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			r.Dietary = append(r.Dietary, d)
		}
	}

	return nil
}

// Validate checks that a recipe conforms to the shape the store accepts.
// Payloads arriving from the generation collaborator must pass this before
// they are persisted; a failure means the payload is discarded.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("recipe has no name")
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("recipe %q has no ingredients", r.Name)
	}
	if len(r.Instructions) == 0 {
		return fmt.Errorf("recipe %q has no instructions", r.Name)
	}
	if r.CookTime < 0 {
		return fmt.Errorf("recipe %q has negative cook time", r.Name)
	}
	if r.Servings <= 0 {
		return fmt.Errorf("recipe %q has invalid servings %d", r.Name, r.Servings)
	}
	if r.Calories < 0 || r.Protein < 0 {
		return fmt.Errorf("recipe %q has negative nutrition values", r.Name)
	}
	if r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("recipe %q has rating %v outside [0,5]", r.Name, r.Rating)
	}
	if !validDifficulty[r.Difficulty] {
		return fmt.Errorf("recipe %q has unknown difficulty %q", r.Name, r.Difficulty)
	}
	for _, d := range r.Dietary {
		if !validDietary[d] {
			return fmt.Errorf("recipe %q has unknown dietary tag %q", r.Name, d)
		}
	}
	return nil
}
