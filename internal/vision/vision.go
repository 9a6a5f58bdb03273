// Package vision is a client for the hosted image-classification service.
// Prediction classifies a photo against the published model; training
// ingests labeled photos under tags.
package vision

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Per-call timeouts. Training uploads are slow on large images.
const (
	predictTimeout   = 10 * time.Second
	listTagsTimeout  = 15 * time.Second
	createTagTimeout = 20 * time.Second
	uploadTimeout    = 60 * time.Second
)

// Client talks to the classification service. Prediction and training use
// separate endpoints and keys.
type Client struct {
	predictionBase string
	predictionKey  string
	trainingRaw    string
	trainingBase   string
	trainingKey    string
	projectID      string
	publishedName  string
	httpClient     *http.Client
}

// NewClient creates a classification service client. The training endpoint
// is normalized to scheme+host to tolerate operator-supplied path suffixes.
func NewClient(predictionEndpoint, predictionKey, trainingEndpoint, trainingKey, projectID, publishedName string) (*Client, error) {
	if predictionEndpoint == "" || projectID == "" {
		return nil, errors.New("prediction endpoint and project id are required")
	}
	return &Client{
		predictionBase: strings.TrimRight(predictionEndpoint, "/"),
		predictionKey:  predictionKey,
		trainingRaw:    trainingEndpoint,
		trainingBase:   NormalizeTrainingEndpoint(trainingEndpoint),
		trainingKey:    trainingKey,
		projectID:      projectID,
		publishedName:  publishedName,
		httpClient:     &http.Client{},
	}, nil
}

// NormalizeTrainingEndpoint reduces an endpoint to its resource root
// (scheme+host), stripping any accidental path suffix such as
// "/customvision/...".
func NormalizeTrainingEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return endpoint
	}
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Scheme + "://" + u.Host
	}
	base, _, _ := strings.Cut(endpoint, "/customvision")
	return strings.TrimRight(base, "/")
}

// apiError is a non-2xx response from the service. Status and body are kept
// so callers can surface them in diagnostics.
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// asAPIError extracts an apiError from err, or returns nil.
func asAPIError(err error) *apiError {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// checkStatus turns a non-2xx response into an apiError, consuming the body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apiError{Status: resp.StatusCode, Body: "(could not read error body)"}
	}
	return &apiError{Status: resp.StatusCode, Body: string(body)}
}
