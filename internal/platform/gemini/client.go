package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"pantrychef/internal/recipe"
)

// ErrMissingAPIKey is returned when recipe generation is requested but no
// API key was configured. Surfaced to the user rather than skipped silently.
var ErrMissingAPIKey = fmt.Errorf("please provide a Gemini API key to generate custom recipes")

// Client is a client for the Gemini API.
type Client struct {
	model *genai.GenerativeModel
}

// NewClient creates a new Gemini client. An empty API key yields a client
// whose GenerateRecipe reports ErrMissingAPIKey, so the server can still
// serve store-backed searches.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return &Client{}, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Client{model: client.GenerativeModel(model)}, nil
}

// GenerateRecipe asks the model for a recipe built from the given ingredient
// text and dietary constraints, and parses the structured payload it returns.
func (c *Client) GenerateRecipe(ctx context.Context, ingredients string, dietary []string) (*recipe.Recipe, error) {
	if c.model == nil {
		return nil, ErrMissingAPIKey
	}

	promptText := fmt.Sprintf("You are a chef AI. Create a recipe using these ingredients: %s.", ingredients)
	if tags := joinTags(dietary); tags != "" {
		promptText += fmt.Sprintf(" Dietary restrictions: %s.", tags)
	}
	promptText += " Return ONLY a single, clean JSON object with the following keys and data types: 'name' (string), 'ingredients' (array of strings), 'instructions' (array of strings), 'cookTime' (integer minutes), 'difficulty' (one of 'easy', 'medium', 'hard'), 'servings' (integer), 'calories' (number per serving), 'protein' (number of grams per serving), 'cuisine' (string), 'dietary' (array drawn from 'vegetarian', 'vegan', 'gluten-free'), and 'rating' (number from 0 to 5). The JSON response should be clean and not contain any markdown formatting (e.g., ```json)."

	resp, err := c.model.GenerateContent(ctx, genai.Text(promptText))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	return ParseRecipe(string(text))
}

// ParseRecipe extracts the JSON object from a model response, which might be
// wrapped in markdown, and unmarshals it into a Recipe.
func ParseRecipe(raw string) (*recipe.Recipe, error) {
	startIndex := strings.Index(raw, "{")
	endIndex := strings.LastIndex(raw, "}")

	if startIndex == -1 || endIndex == -1 || startIndex > endIndex {
		return nil, fmt.Errorf("could not find JSON object in response: %s", raw)
	}

	cleanJSON := raw[startIndex : endIndex+1]

	var r recipe.Recipe
	if err := json.Unmarshal([]byte(cleanJSON), &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe JSON: %w", err)
	}

	return &r, nil
}

func joinTags(dietary []string) string {
	tags := make([]string, 0, len(dietary))
	for _, d := range dietary {
		if d = strings.TrimSpace(d); d != "" {
			tags = append(tags, d)
		}
	}
	return strings.Join(tags, ", ")
}
