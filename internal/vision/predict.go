package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Predict classifies an image against the published model and returns the
// ranked predictions. A call that succeeds with zero predictions returns an
// empty slice, not an error.
func (c *Client) Predict(ctx context.Context, image []byte) ([]Prediction, error) {
	url := fmt.Sprintf("%s/customvision/v3.0/Prediction/%s/classify/iterations/%s/image",
		c.predictionBase, c.projectID, c.publishedName)

	ctx, cancel := context.WithTimeout(ctx, predictTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Prediction-Key", c.predictionKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send prediction request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("prediction call failed: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var result predictionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal prediction response: %w", err)
	}
	return result.Predictions, nil
}
