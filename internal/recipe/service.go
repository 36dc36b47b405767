package recipe

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// maxResults caps how many ranked matches a search reports.
const maxResults = 5

// Synthesizer defines the interface to the external recipe-generation
// collaborator.
type Synthesizer interface {
	GenerateRecipe(ctx context.Context, ingredients string, dietary []string) (*Recipe, error)
}

// State names the terminal branch a search request ended in.
type State string

const (
	// StateSearched means stored recipes matched and were returned ranked.
	StateSearched State = "searched"
	// StateSynthesized means the search came up empty and the generation
	// collaborator was invoked, successfully or not.
	StateSynthesized State = "synthesized"
)

// Outcome is the result of running the search-then-synthesize pipeline.
// Matches is set for StateSearched; Recipe for a successful synthesis.
// Message is always a user-facing summary, including the failure reason
// when synthesis did not produce a recipe.
type Outcome struct {
	State   State
	Matches []Match
	Recipe  *Recipe
	Message string
}

// Service runs the matching pipeline over the store and falls back to the
// synthesis collaborator when nothing matches.
type Service struct {
	store Store
	synth Synthesizer
}

// NewService creates a new Service.
func NewService(store Store, synth Synthesizer) *Service {
	return &Service{store: store, synth: synth}
}

// Search normalizes the raw ingredient text and ranks the freshly loaded
// collection against it. An empty result is the normal no-match outcome.
func (s *Service) Search(ctx context.Context, ingredients string, f Filters) ([]Match, error) {
	recipes, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	tokens := NormalizeIngredients(ingredients)
	return Rank(recipes, tokens, f), nil
}

// List returns the current collection.
func (s *Service) List(ctx context.Context) ([]Recipe, error) {
	return s.store.LoadAll(ctx)
}

// Get returns the recipe with the given id, or nil when absent.
func (s *Service) Get(ctx context.Context, id int) (*Recipe, error) {
	recipes, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range recipes {
		if recipes[i].ID == id {
			return &recipes[i], nil
		}
	}
	return nil, nil
}

// Find runs the two-stage contract: search the store, and when the search is
// empty, generate a recipe, validate it, and persist it so future identical
// queries can be served by retrieval.
//
// Collaborator failures (missing credential, transport errors, malformed
// payloads) terminate in StateSynthesized with no recipe and the reason in
// Message. Only store failures are returned as errors.
func (s *Service) Find(ctx context.Context, ingredients string, f Filters) (*Outcome, error) {
	matches, err := s.Search(ctx, ingredients, f)
	if err != nil {
		return nil, err
	}

	if len(matches) > 0 {
		total := len(matches)
		if total > maxResults {
			matches = matches[:maxResults]
		}
		zap.L().Info("recipes matched in store",
			zap.Int("matches", total),
			zap.Int("top_score", matches[0].Score),
		)
		return &Outcome{
			State:   StateSearched,
			Matches: matches,
			Message: fmt.Sprintf("Found %d matching recipe(s)", total),
		}, nil
	}

	zap.L().Info("no stored recipe matched, generating", zap.String("ingredients", ingredients))

	generated, err := s.synth.GenerateRecipe(ctx, ingredients, f.Dietary)
	if err != nil {
		zap.L().Warn("recipe generation failed", zap.Error(err))
		return &Outcome{
			State:   StateSynthesized,
			Message: fmt.Sprintf("Error generating recipe: %s", err.Error()),
		}, nil
	}

	if generated == nil {
		zap.L().Warn("recipe generation returned no payload")
		return &Outcome{
			State:   StateSynthesized,
			Message: "Error generating recipe: empty response from generator",
		}, nil
	}

	if err := generated.Validate(); err != nil {
		// Malformed payloads are discarded, never persisted.
		zap.L().Warn("generated recipe failed validation", zap.Error(err))
		return &Outcome{
			State:   StateSynthesized,
			Message: fmt.Sprintf("Error generating recipe: %s", err.Error()),
		}, nil
	}

	generated.FromLLM = true
	if err := s.store.Append(ctx, generated); err != nil {
		return nil, err
	}

	zap.L().Info("generated recipe saved",
		zap.Int("id", generated.ID),
		zap.String("name", generated.Name),
	)
	return &Outcome{
		State:   StateSynthesized,
		Recipe:  generated,
		Message: "AI-generated recipe created and saved",
	}, nil
}
