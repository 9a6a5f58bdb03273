package docstore

// User is an enrolled identity. ClassLabel is the classifier-side tag name
// joining the user to the classification service.
type User struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	Roll           string `json:"roll"`
	ClassLabel     string `json:"classLabel"`
	CreatedAt      string `json:"createdAt"`
	LastEnrollBlob string `json:"lastEnrollBlob"`
}

// AttendanceRecord is a single recognition event. Records are written once
// and never mutated. Created is the store's numeric creation timestamp
// (epoch seconds), set server-side.
type AttendanceRecord struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	Name          string  `json:"name"`
	Timestamp     string  `json:"timestamp"`
	Confidence    float64 `json:"confidence"`
	ImageBlobPath string  `json:"imageBlobPath"`
	Device        string  `json:"device"`
	Status        string  `json:"status"`
	Created       int64   `json:"created,omitempty"`
}
