package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// PostgresStore implements the Store interface for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgresStore, bootstrapping the schema and
// seeding the starter collection when the table is empty.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		ingredients JSONB NOT NULL,
		instructions JSONB NOT NULL,
		cook_time INTEGER NOT NULL,
		difficulty TEXT NOT NULL,
		servings INTEGER NOT NULL,
		calories DOUBLE PRECISION NOT NULL,
		protein DOUBLE PRECISION NOT NULL,
		cuisine TEXT,
		dietary JSONB NOT NULL,
		rating DOUBLE PRECISION NOT NULL,
		from_llm BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ
	);
	`
	if _, err = db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create recipes table: %w", err)
	}

	s := &PostgresStore{db: db}

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM recipes"); err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}
	if count == 0 {
		for _, r := range Seed() {
			if err := s.insert(context.Background(), r); err != nil {
				return nil, fmt.Errorf("failed to seed recipe collection: %w", err)
			}
		}
	}

	return s, nil
}

// LoadAll retrieves the whole collection ordered by id.
func (s *PostgresStore) LoadAll(ctx context.Context) ([]Recipe, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, name, ingredients, instructions, cook_time, difficulty, servings, calories, protein, cuisine, dietary, rating, from_llm, created_at FROM recipes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		var ingredientsJSON, instructionsJSON, dietaryJSON []byte
		err := rows.Scan(
			&r.ID,
			&r.Name,
			&ingredientsJSON,
			&instructionsJSON,
			&r.CookTime,
			&r.Difficulty,
			&r.Servings,
			&r.Calories,
			&r.Protein,
			&r.Cuisine,
			&dietaryJSON,
			&r.Rating,
			&r.FromLLM,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}

		if err := json.Unmarshal(ingredientsJSON, &r.Ingredients); err != nil {
			return nil, fmt.Errorf("failed to unmarshal ingredients: %w", err)
		}
		if err := json.Unmarshal(instructionsJSON, &r.Instructions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal instructions: %w", err)
		}
		if err := json.Unmarshal(dietaryJSON, &r.Dietary); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dietary tags: %w", err)
		}
		recipes = append(recipes, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return recipes, nil
}

// Append assigns the next id and a creation timestamp inside a transaction,
// so two concurrent appends cannot claim the same id.
func (s *PostgresStore) Append(ctx context.Context, r *Recipe) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowxContext(ctx, "SELECT COALESCE(MAX(id), 0) + 1 FROM recipes").Scan(&r.ID); err != nil {
		return fmt.Errorf("failed to assign recipe id: %w", err)
	}
	now := time.Now().UTC()
	r.CreatedAt = &now

	ingredientsJSON, err := json.Marshal(r.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	instructionsJSON, err := json.Marshal(r.Instructions)
	if err != nil {
		return fmt.Errorf("failed to marshal instructions: %w", err)
	}
	dietaryJSON, err := json.Marshal(dietaryOrEmpty(r.Dietary))
	if err != nil {
		return fmt.Errorf("failed to marshal dietary tags: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO recipes (id, name, ingredients, instructions, cook_time, difficulty, servings, calories, protein, cuisine, dietary, rating, from_llm, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)",
		r.ID,
		r.Name,
		ingredientsJSON,
		instructionsJSON,
		r.CookTime,
		r.Difficulty,
		r.Servings,
		r.Calories,
		r.Protein,
		r.Cuisine,
		dietaryJSON,
		r.Rating,
		r.FromLLM,
		r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}
	return nil
}

// insert writes a recipe keeping its pre-assigned id. Used for seeding.
func (s *PostgresStore) insert(ctx context.Context, r Recipe) error {
	ingredientsJSON, err := json.Marshal(r.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	instructionsJSON, err := json.Marshal(r.Instructions)
	if err != nil {
		return fmt.Errorf("failed to marshal instructions: %w", err)
	}
	dietaryJSON, err := json.Marshal(dietaryOrEmpty(r.Dietary))
	if err != nil {
		return fmt.Errorf("failed to marshal dietary tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO recipes (id, name, ingredients, instructions, cook_time, difficulty, servings, calories, protein, cuisine, dietary, rating, from_llm, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) ON CONFLICT (id) DO NOTHING",
		r.ID,
		r.Name,
		ingredientsJSON,
		instructionsJSON,
		r.CookTime,
		r.Difficulty,
		r.Servings,
		r.Calories,
		r.Protein,
		r.Cuisine,
		dietaryJSON,
		r.Rating,
		r.FromLLM,
		r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

// dietaryOrEmpty keeps a nil tag set from serializing as JSON null.
func dietaryOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
