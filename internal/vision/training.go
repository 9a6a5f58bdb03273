package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// trainingURL composes a training API URL under the normalized resource root.
func (c *Client) trainingURL(path string) string {
	return fmt.Sprintf("%s/customvision/v3.3/training/projects/%s%s", c.trainingBase, c.projectID, path)
}

// doTraining sends a training request and decodes the JSON response.
func doTraining[T any](c *Client, ctx context.Context, method, rawURL, contentType string, body io.Reader, timeout time.Duration) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Training-Key", c.trainingKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var result T
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}
	return &result, nil
}

// ListTags retrieves the project's training tags.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	result, err := doTraining[[]Tag](c, ctx, http.MethodGet, c.trainingURL("/tags"), "application/json", nil, listTagsTimeout)
	if err != nil {
		return nil, err
	}
	return *result, nil
}

// CreateTag creates a training tag by name.
func (c *Client) CreateTag(ctx context.Context, name string) (*Tag, error) {
	endpoint := c.trainingURL("/tags?name=" + url.QueryEscape(name))
	return doTraining[Tag](c, ctx, http.MethodPost, endpoint, "", nil, createTagTimeout)
}

// uploadSingle pushes image bytes to the single-image training endpoint.
func (c *Client) uploadSingle(ctx context.Context, image []byte, tagID string) (*uploadResponse, error) {
	endpoint := c.trainingURL("/images/image?tagIds=" + url.QueryEscape(tagID))
	return doTraining[uploadResponse](c, ctx, http.MethodPost, endpoint, "application/octet-stream", bytes.NewReader(image), uploadTimeout)
}

// uploadMultipart pushes image bytes via the multipart batch endpoint. Some
// service deployments 404 the single-image route; this is the fallback.
func (c *Client) uploadMultipart(ctx context.Context, image []byte, tagID string) (*uploadResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("imageData", "upload.jpg")
	if err != nil {
		return nil, fmt.Errorf("could not create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("could not write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	endpoint := c.trainingURL("/images?tagIds=" + url.QueryEscape(tagID))
	return doTraining[uploadResponse](c, ctx, http.MethodPost, endpoint, writer.FormDataContentType(), &body, uploadTimeout)
}

// fail records a step failure on the result. HTTP-level failures carry
// status and body; transport failures carry just the error message.
func (r *RegisterResult) fail(step string, err error) *RegisterResult {
	if apiErr := asAPIError(err); apiErr != nil {
		r.Step = step
		r.Status = apiErr.Status
		r.Body = apiErr.Body
		return r
	}
	r.Error = err.Error()
	return r
}

// RegisterImage registers a training image under the given tag, creating the
// tag if needed. It prefers the single-image transport and falls back to
// multipart when the route is missing. Failures never propagate as errors;
// they are captured in the returned diagnostic so enrollment can proceed.
func (c *Client) RegisterImage(ctx context.Context, image []byte, tagName string) *RegisterResult {
	result := &RegisterResult{
		EndpointRaw:        c.trainingRaw,
		EndpointNormalized: c.trainingBase,
		ProjectID:          c.projectID,
		URLs:               map[string]string{},
	}

	tagsURL := c.trainingURL("/tags")
	result.URLs[StepListTags] = tagsURL
	log.Printf("[vision] GET %s", tagsURL)
	tags, err := c.ListTags(ctx)
	if err != nil {
		return result.fail(StepHTTPError, err)
	}

	var tagID string
	for _, t := range tags {
		if t.Name == tagName {
			tagID = t.ID
			break
		}
	}
	if tagID == "" {
		result.URLs[StepCreateTag] = tagsURL + "?name=" + url.QueryEscape(tagName)
		log.Printf("[vision] POST %s?name=%s", tagsURL, tagName)
		tag, err := c.CreateTag(ctx, tagName)
		if err != nil {
			return result.fail(StepHTTPError, err)
		}
		if tag.ID == "" {
			result.Step = StepCreateTag
			result.Error = "create tag succeeded but no 'id' in response"
			return result
		}
		tagID = tag.ID
	}
	result.UsedTag = &Tag{ID: tagID, Name: tagName}

	singleURL := c.trainingURL("/images/image")
	result.URLs["upload_image_single"] = singleURL + "?tagIds=" + tagID
	log.Printf("[vision] POST %s?tagIds=%s (octet-stream single)", singleURL, tagID)
	upload, err := c.uploadSingle(ctx, image, tagID)

	// Some deployments 404 the single-image route; retry as multipart.
	if apiErr := asAPIError(err); apiErr != nil && apiErr.Status == http.StatusNotFound {
		multipartURL := c.trainingURL("/images")
		result.URLs["upload_image_multipart"] = multipartURL + "?tagIds=" + tagID
		log.Printf("[vision] POST %s?tagIds=%s (multipart fallback)", multipartURL, tagID)
		upload, err = c.uploadMultipart(ctx, image, tagID)
	}
	if err != nil {
		return result.fail(StepUploadImage, err)
	}

	result.OK = true
	result.IsBatchSuccessful = upload.IsBatchSuccessful
	result.Images = upload.Images
	return result
}
