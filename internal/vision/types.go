package vision

// Prediction is one ranked label/confidence pair from the classifier.
type Prediction struct {
	TagName     string  `json:"tagName"`
	Probability float64 `json:"probability"`
}

// predictionResponse is the classifier's response envelope.
type predictionResponse struct {
	Predictions []Prediction `json:"predictions"`
}

// Tag is a training-side label.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UploadedImage is one entry of a training upload batch result.
type UploadedImage struct {
	Status    string `json:"status"`
	SourceURL string `json:"sourceUrl,omitempty"`
}

// uploadResponse is the training upload response envelope.
type uploadResponse struct {
	IsBatchSuccessful bool            `json:"isBatchSuccessful"`
	Images            []UploadedImage `json:"images"`
}

// Registration step names surfaced in RegisterResult.Step.
const (
	StepListTags    = "list_tags"
	StepCreateTag   = "create_tag"
	StepUploadImage = "upload_image"
	StepHTTPError   = "http_error"
)

// RegisterResult is the structured outcome of a best-effort training
/// registration. It is always returned, never an error: callers branch on OK
// and Step instead of parsing messages.
type RegisterResult struct {
	OK                 bool              `json:"ok"`
	Step               string            `json:"step,omitempty"`
	Status             int               `json:"status,omitempty"`
	Body               string            `json:"body,omitempty"`
	Error              string            `json:"error,omitempty"`
	EndpointRaw        string            `json:"endpoint_raw"`
	EndpointNormalized string            `json:"endpoint_normalized"`
	ProjectID          string            `json:"project_id"`
	URLs               map[string]string `json:"urls"`
	UsedTag            *Tag              `json:"usedTag,omitempty"`
	IsBatchSuccessful  bool              `json:"isBatchSuccessful,omitempty"`
	Images             []UploadedImage   `json:"images,omitempty"`
}
