package apiclient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vladamisici/food-analyzer-sub001/internal/apiclient"
)

func TestParseNutrient(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"25g", 25.0},
		{"25.5 grams", 25.5},
		{"garbage", 0.0},
		{"", 0.0},
		{"  12 g  ", 12.0},
		{"approx 8.2g", 8.2},
		{"0g", 0.0},
		{"1.2.3", 1.2},
		{"g25", 25.0},
		{"25.", 25.0},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, apiclient.ParseNutrient(tc.raw))
		})
	}
}

func TestHealthScoreBand(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Healthy", 9},
		{"Excellent", 9},
		{"Good", 7},
		{"Fair", 5},
		{"Moderate", 5},
		{"Poor", 3},
		{"something else", 5},
		{"", 5},
		{"  GOOD  ", 7},
	}

	for _, tc := range tests {
		t.Run(tc.label, func(t *testing.T) {
			assert.Equal(t, tc.want, apiclient.HealthScoreBand(tc.label))
		})
	}
}
