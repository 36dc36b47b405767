package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nfnt/resize"
)

// maxUploadWidth is the width images are downscaled to before upload.
// Detection accuracy does not benefit from larger inputs and the payload
// stays small.
const maxUploadWidth = 800

// Client calls the external ingredient-detection service.
type Client struct {
	http       *resty.Client
	model      string
	confidence float64
}

// NewClient creates a new detection client. The timeout bounds the whole
// detection call; on expiry the caller gets an error, never a hang.
func NewClient(baseURL, model string, confidence float64, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:       client,
		model:      model,
		confidence: confidence,
	}
}

// Request is the detection request body.
type Request struct {
	Model      string  `json:"model"`
	Confidence float64 `json:"confidence"`
	Image      string  `json:"image"`
}

// Response is the detection response body.
type Response struct {
	Labels []string `json:"labels"`
	Error  string   `json:"error,omitempty"`
}

// Detect runs ingredient detection on the image and returns the detected
// label strings, lowercased. An empty detection is reported as an error so
// the caller can degrade to the no-ingredients path.
func (c *Client) Detect(ctx context.Context, imageData []byte) ([]string, error) {
	prepared, err := prepareImage(imageData)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}

	var result Response
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(Request{
			Model:      c.model,
			Confidence: c.confidence,
			Image:      base64.StdEncoding.EncodeToString(prepared),
		}).
		SetResult(&result).
		Post("/detect")
	if err != nil {
		return nil, fmt.Errorf("detection request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("detection service returned status %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error != "" {
		return nil, fmt.Errorf("detection service error: %s", result.Error)
	}

	labels := make([]string, 0, len(result.Labels))
	for _, l := range result.Labels {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			labels = append(labels, l)
		}
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("no ingredients detected in image")
	}

	return labels, nil
}

// prepareImage decodes the upload and downscales it to maxUploadWidth,
// re-encoding as JPEG.
func prepareImage(imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxUploadWidth {
		img = resize.Resize(maxUploadWidth, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
