package recipe

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSynthesizer is a mock of the generation collaborator.
type mockSynthesizer struct {
	recipe      *Recipe
	returnError error
	calls       int
}

func (m *mockSynthesizer) GenerateRecipe(ctx context.Context, ingredients string, dietary []string) (*Recipe, error) {
	m.calls++
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.recipe, nil
}

func newTestService(t *testing.T, synth *mockSynthesizer) (*Service, *FileStore) {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "recipes.json"))
	require.NoError(t, err)
	return NewService(store, synth), store
}

func TestFind_SearchedState(t *testing.T) {
	synth := &mockSynthesizer{}
	service, _ := newTestService(t, synth)

	outcome, err := service.Find(context.Background(), "chicken, garlic, ginger", DefaultFilters())
	require.NoError(t, err)

	assert.Equal(t, StateSearched, outcome.State)
	assert.NotEmpty(t, outcome.Matches)
	assert.Nil(t, outcome.Recipe)
	assert.Equal(t, 0, synth.calls, "synthesis must not run when the search matched")
}

func TestFind_TruncatesToTopFive(t *testing.T) {
	synth := &mockSynthesizer{}
	service, store := newTestService(t, synth)
	ctx := context.Background()

	// Pad the store so more than five recipes share the matching ingredients.
	for i := 0; i < 8; i++ {
		r := generatedRecipe(fmt.Sprintf("Tomato Garlic Dish %d", i))
		r.Ingredients = []string{"tomato", "garlic"}
		require.NoError(t, store.Append(ctx, r))
	}

	outcome, err := service.Find(ctx, "tomato, garlic", DefaultFilters())
	require.NoError(t, err)

	assert.Equal(t, StateSearched, outcome.State)
	assert.Len(t, outcome.Matches, 5)
}

func TestFind_FallbackPersistsGeneratedRecipe(t *testing.T) {
	synth := &mockSynthesizer{recipe: generatedRecipe("Dragon Fruit Salad")}
	synth.recipe.FromLLM = false
	service, store := newTestService(t, synth)
	ctx := context.Background()

	before, err := store.LoadAll(ctx)
	require.NoError(t, err)
	maxID := 0
	for _, r := range before {
		if r.ID > maxID {
			maxID = r.ID
		}
	}

	outcome, err := service.Find(ctx, "dragon fruit, lime", DefaultFilters())
	require.NoError(t, err)

	assert.Equal(t, StateSynthesized, outcome.State)
	require.NotNil(t, outcome.Recipe)
	assert.Greater(t, outcome.Recipe.ID, maxID)
	assert.True(t, outcome.Recipe.FromLLM)
	assert.NotNil(t, outcome.Recipe.CreatedAt)
	assert.Empty(t, outcome.Matches)

	after, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)

	// A repeated identical query is now served by retrieval.
	again, err := service.Find(ctx, "dragon fruit, lime", DefaultFilters())
	require.NoError(t, err)
	assert.Equal(t, StateSearched, again.State)
	require.NotEmpty(t, again.Matches)
	assert.Equal(t, "Dragon Fruit Salad", again.Matches[0].Recipe.Name)
	assert.Equal(t, 1, synth.calls)
}

func TestFind_SynthesisFailureSurfacesReason(t *testing.T) {
	synth := &mockSynthesizer{returnError: fmt.Errorf("quota exceeded")}
	service, store := newTestService(t, synth)
	ctx := context.Background()

	outcome, err := service.Find(ctx, "dragon fruit, lime", DefaultFilters())
	require.NoError(t, err)

	assert.Equal(t, StateSynthesized, outcome.State)
	assert.Nil(t, outcome.Recipe)
	assert.Contains(t, outcome.Message, "quota exceeded")

	recipes, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, len(Seed()), "failed synthesis must not append")
}

func TestFind_NilSynthesisPayload(t *testing.T) {
	// A collaborator that returns neither a recipe nor an error.
	service, store := newTestService(t, &mockSynthesizer{})

	outcome, err := service.Find(context.Background(), "dragon fruit, lime", DefaultFilters())
	require.NoError(t, err)

	assert.Equal(t, StateSynthesized, outcome.State)
	assert.Nil(t, outcome.Recipe)
	assert.Contains(t, outcome.Message, "empty response")

	recipes, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, len(Seed()))
}

func TestFind_MalformedPayloadNotPersisted(t *testing.T) {
	malformed := generatedRecipe("Broken")
	malformed.Ingredients = nil
	synth := &mockSynthesizer{recipe: malformed}
	service, store := newTestService(t, synth)
	ctx := context.Background()

	outcome, err := service.Find(ctx, "dragon fruit, lime", DefaultFilters())
	require.NoError(t, err)

	assert.Equal(t, StateSynthesized, outcome.State)
	assert.Nil(t, outcome.Recipe)
	assert.Contains(t, outcome.Message, "no ingredients")

	recipes, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, recipes, len(Seed()))
}

func TestFind_RejectsUnknownDifficultyFromCollaborator(t *testing.T) {
	bad := generatedRecipe("Mystery Dish")
	bad.Difficulty = "impossible"
	synth := &mockSynthesizer{recipe: bad}
	service, store := newTestService(t, synth)

	outcome, err := service.Find(context.Background(), "dragon fruit, lime", DefaultFilters())
	require.NoError(t, err)

	assert.Nil(t, outcome.Recipe)
	assert.Contains(t, outcome.Message, "difficulty")

	recipes, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, len(Seed()))
}

func TestGet(t *testing.T) {
	service, _ := newTestService(t, &mockSynthesizer{})
	ctx := context.Background()

	r, err := service.Get(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "Chicken Stir Fry", r.Name)

	missing, err := service.Get(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
