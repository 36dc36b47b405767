package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage encodes a small solid PNG of the given width.
func testImage(t *testing.T, width int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, width/2+1))
	for x := 0; x < width; x++ {
		for y := 0; y < width/2+1; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	var received Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detect", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(Response{Labels: []string{" Chicken", "GARLIC", "ginger", ""}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "yolo-food", 0.4, 5*time.Second)
	labels, err := client.Detect(context.Background(), testImage(t, 64))
	require.NoError(t, err)

	assert.Equal(t, []string{"chicken", "garlic", "ginger"}, labels)
	assert.Equal(t, "yolo-food", received.Model)
	assert.Equal(t, 0.4, received.Confidence)

	// The uploaded payload is a valid JPEG re-encoding of the original.
	prepared, err := base64.StdEncoding.DecodeString(received.Image)
	require.NoError(t, err)
	_, err = jpeg.Decode(bytes.NewReader(prepared))
	assert.NoError(t, err)
}

func TestDetect_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{Error: "model not loaded"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "yolo-food", 0.4, 5*time.Second)
	_, err := client.Detect(context.Background(), testImage(t, 64))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestDetect_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "yolo-food", 0.4, 5*time.Second)
	_, err := client.Detect(context.Background(), testImage(t, 64))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestDetect_NoLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{Labels: []string{}})
	}))
	defer server.Close()

	client := NewClient(server.URL, "yolo-food", 0.4, 5*time.Second)
	_, err := client.Detect(context.Background(), testImage(t, 64))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ingredients detected")
}

func TestDetect_InvalidImage(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "yolo-food", 0.4, time.Second)
	_, err := client.Detect(context.Background(), []byte("not an image"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prepare image")
}

func TestPrepareImage_DownscalesWideImages(t *testing.T) {
	prepared, err := prepareImage(testImage(t, 1200))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(prepared))
	require.NoError(t, err)
	assert.Equal(t, maxUploadWidth, img.Bounds().Dx())
}

func TestPrepareImage_KeepsSmallImages(t *testing.T) {
	prepared, err := prepareImage(testImage(t, 64))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(prepared))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}
