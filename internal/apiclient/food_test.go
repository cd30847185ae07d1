package apiclient_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladamisici/food-analyzer-sub001/internal/apiclient"
	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
)

// testImage returns an encoded PNG of the given dimensions.
func testImage(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x % 256), A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestAnalyze_ParsesFreeFormMacros(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "Bearer tok_test", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		decoded, err := base64.StdEncoding.DecodeString(body["image"])
		require.NoError(t, err)
		assert.NotEmpty(t, decoded, "image payload must be base64 JPEG bytes")

		json.NewEncoder(w).Encode(map[string]any{
			"foodName":    "Chicken Salad",
			"calories":    420.0,
			"protein":     "32g",
			"carbs":       "18.5 grams",
			"fat":         "garbage",
			"fiber":       "4g",
			"sugar":       "3g",
			"sodium":      "550mg",
			"confidence":  0.91,
			"servingSize": "1 plate",
			"ingredients": []string{"chicken", "lettuce"},
			"healthScore": "Good",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server, true)
	result, err := client.Analyze(context.Background(), testImage(t, 64, 64))

	require.NoError(t, err)
	assert.Equal(t, "Chicken Salad", result.FoodName)
	assert.Equal(t, 420.0, result.Nutrition.Calories)
	assert.Equal(t, 32.0, result.Nutrition.Protein)
	assert.Equal(t, 18.5, result.Nutrition.Carbs)
	assert.Zero(t, result.Nutrition.Fat, "unparseable macro defaults to zero")
	assert.Equal(t, 550.0, result.Nutrition.Sodium)
	assert.Equal(t, 0.91, result.Confidence)
	assert.Equal(t, 7, result.HealthScore)
	assert.Equal(t, []string{"chicken", "lettuce"}, result.Ingredients)
}

func TestAnalyze_UndecodableImage(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := newTestClient(t, server, true)
	_, err := client.Analyze(context.Background(), []byte("not an image"))

	require.Error(t, err)
	assert.Equal(t, apperrors.KindImageProcessingFailed, apperrors.KindOf(err))
	assert.False(t, called, "processing failure must short-circuit before upload")
}

func TestHistory_DecodesItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"id":          "rec_1",
					"foodName":    "Oatmeal",
					"calories":    280.0,
					"protein":     "10g",
					"healthScore": "Healthy",
					"createdAt":   "2026-03-14T08:00:00Z",
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server, true)
	items, err := client.History(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "rec_1", items[0].ID)
	assert.Equal(t, "Oatmeal", items[0].Analysis.FoodName)
	assert.Equal(t, 10.0, items[0].Analysis.Nutrition.Protein)
	assert.Equal(t, 9, items[0].Analysis.HealthScore)
	assert.Equal(t, 2026, items[0].CreatedAt.Year())
}

func TestOptimizeImage_DownscalesLargeImages(t *testing.T) {
	large := testImage(t, 2048, 1024)

	optimized, err := apiclient.OptimizeImage(large)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(optimized))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1024, decoded.Bounds().Dx())
	assert.Equal(t, 512, decoded.Bounds().Dy())
}

func TestOptimizeImage_NeverUpscales(t *testing.T) {
	small := testImage(t, 100, 80)

	optimized, err := apiclient.OptimizeImage(small)
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(optimized))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 80, decoded.Bounds().Dy())
}
