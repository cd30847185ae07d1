package apiclient

import (
	"context"
	"encoding/base64"
	"net/http"
)

// Analyze uploads an image for food analysis. The image is re-encoded to a
// bounded size first; that optimization is pure pre-processing and does not
// change the call contract.
func (c *Client) Analyze(ctx context.Context, image []byte) (*AnalysisResult, error) {
	optimized, err := OptimizeImage(image)
	if err != nil {
		return nil, err
	}

	req := analyzeRequest{Image: base64.StdEncoding.EncodeToString(optimized)}
	var wire analysisWire
	if err := c.do(ctx, http.MethodPost, c.foodBaseURL+"/analyze", req, true, &wire); err != nil {
		return nil, err
	}

	result := wire.toResult()
	return &result, nil
}

// History fetches the remote analysis history, newest first as the service
// returns it.
func (c *Client) History(ctx context.Context) ([]HistoryItem, error) {
	var wire historyWire
	if err := c.do(ctx, http.MethodGet, c.foodBaseURL+"/history", nil, true, &wire); err != nil {
		return nil, err
	}

	items := make([]HistoryItem, len(wire.Items))
	for i, w := range wire.Items {
		items[i] = HistoryItem{
			ID:        w.ID,
			Analysis:  w.analysisWire.toResult(),
			CreatedAt: w.CreatedAt,
		}
	}
	return items, nil
}
