package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pantrychef/internal/recipe"
)

// Detector defines the interface for the ingredient-detection collaborator.
type Detector interface {
	Detect(ctx context.Context, imageData []byte) ([]string, error)
}

// DetectionCache defines the interface for cached detection results.
type DetectionCache interface {
	Get(ctx context.Context, imageData []byte) ([]string, error)
	Set(ctx context.Context, imageData []byte, labels []string) error
}

// defaultSearchTimeout bounds a search request when no timeout is configured.
const defaultSearchTimeout = 45 * time.Second

// Handler handles HTTP requests.
type Handler struct {
	Service  *recipe.Service
	Detector Detector
	Cache    DetectionCache
	timeout  time.Duration
}

// NewHandler creates a new Handler. Detector and cache may be nil when the
// deployment serves text-only searches. The timeout bounds the external calls
// a search makes (detection and synthesis).
func NewHandler(service *recipe.Service, detector Detector, cache DetectionCache, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	return &Handler{Service: service, Detector: detector, Cache: cache, timeout: timeout}
}

// SearchResponse is the response body for the search endpoint.
type SearchResponse struct {
	Status      string         `json:"status"`
	State       string         `json:"state"`
	Ingredients string         `json:"ingredients"`
	Matches     []recipe.Match `json:"matches,omitempty"`
	Recipe      *recipe.Recipe `json:"recipe,omitempty"`
}

// Search matches the submitted ingredients (typed, or detected from an
// uploaded photo) against the store, falling back to recipe generation when
// nothing matches.
func (h *Handler) Search(c *gin.Context) {
	ingredientsText := c.PostForm("ingredients")
	filters, err := parseFilters(c)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var note string
	if file, ferr := c.FormFile("image"); ferr == nil {
		// An uploaded photo takes over as the ingredient source; a failed
		// detection degrades to the no-ingredients path below.
		detected, derr := h.detectIngredients(ctx, file)
		if derr != nil {
			zap.L().Warn("ingredient detection failed", zap.Error(derr))
			note = fmt.Sprintf("Ingredient detection failed: %s. ", derr.Error())
			ingredientsText = ""
		} else {
			ingredientsText = strings.Join(detected, ", ")
			note = fmt.Sprintf("Detected ingredients: %s. ", ingredientsText)
		}
	}

	if strings.TrimSpace(ingredientsText) == "" {
		c.JSON(http.StatusOK, SearchResponse{
			Status: note + "Please provide ingredients (text or image)",
			State:  "none",
		})
		return
	}

	outcome, err := h.Service.Find(ctx, ingredientsText, filters)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("store error: %s", err.Error()))
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Status:      note + outcome.Message,
		State:       string(outcome.State),
		Ingredients: ingredientsText,
		Matches:     outcome.Matches,
		Recipe:      outcome.Recipe,
	})
}

// GetRecipes handles requests to retrieve the whole collection.
func (h *Handler) GetRecipes(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipes, err := h.Service.List(ctx)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("store error: %s", err.Error()))
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles requests to retrieve a single recipe by id.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid recipe id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	r, err := h.Service.Get(ctx, id)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("store error: %s", err.Error()))
		return
	}

	if r == nil {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}

	c.JSON(http.StatusOK, r)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// detectIngredients reads the uploaded image and resolves ingredient labels,
// consulting the cache before calling the detector.
func (h *Handler) detectIngredients(ctx context.Context, file *multipart.FileHeader) ([]string, error) {
	allowedExtensions := map[string]bool{
		".jpeg": true,
		".jpg":  true,
		".png":  true,
	}
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[extension] {
		return nil, fmt.Errorf("invalid file type %q, only JPEG, JPG, and PNG images are allowed", extension)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	if h.Cache != nil {
		if labels, err := h.Cache.Get(ctx, imageData); err == nil {
			zap.L().Debug("detection cache hit")
			return labels, nil
		}
	}

	if h.Detector == nil {
		return nil, fmt.Errorf("ingredient detection is not available, please type your ingredients")
	}

	labels, err := h.Detector.Detect(ctx, imageData)
	if err != nil {
		return nil, err
	}

	if h.Cache != nil {
		if err := h.Cache.Set(ctx, imageData, labels); err != nil {
			zap.L().Warn("failed to cache detection result", zap.Error(err))
		}
	}

	return labels, nil
}

// parseFilters reads the filter parameters, applying the permissive defaults
// for anything left unspecified.
func parseFilters(c *gin.Context) (recipe.Filters, error) {
	f := recipe.DefaultFilters()

	if dietary := strings.TrimSpace(c.PostForm("dietary")); dietary != "" {
		f.Dietary = recipe.NormalizeIngredients(dietary)
	}
	if difficulty := strings.TrimSpace(c.PostForm("difficulty")); difficulty != "" {
		f.Difficulty = strings.ToLower(difficulty)
	}
	if maxTime := strings.TrimSpace(c.PostForm("max_time")); maxTime != "" {
		v, err := strconv.Atoi(maxTime)
		if err != nil || v < 0 {
			return f, fmt.Errorf("invalid max_time %q", maxTime)
		}
		f.MaxTime = v
	}
	if minRating := strings.TrimSpace(c.PostForm("min_rating")); minRating != "" {
		v, err := strconv.ParseFloat(minRating, 64)
		if err != nil || v < 0 || v > 5 {
			return f, fmt.Errorf("invalid min_rating %q", minRating)
		}
		f.MinRating = v
	}

	return f, nil
}
