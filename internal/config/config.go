package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Vision     VisionConfig
	BlobStore  BlobStoreConfig
	DocStore   DocStoreConfig
	Attendance AttendanceConfig
}

type VisionConfig struct {
	PredictionEndpoint string
	PredictionKey      string
	TrainingEndpoint   string
	TrainingKey        string
	ProjectID          string
	PublishedName      string
}

type BlobStoreConfig struct {
	URL       string
	Container string
	SASToken  string
}

type DocStoreConfig struct {
	URL                  string
	Token                string
	UsersCollection      string
	AttendanceCollection string
}

type AttendanceConfig struct {
	Threshold float64 `yaml:"threshold"`
	UTCOffset string  `yaml:"utc_offset"` // e.g. "+05:30"
	TZName    string  `yaml:"tz_name"`
	Device    string  `yaml:"device"`
}

// defaults mirrors the structure of the embedded defaults.yaml file.
type defaults struct {
	Attendance AttendanceConfig `yaml:"attendance"`
}

// Location builds a fixed-offset time.Location from UTCOffset ("+HH:MM" or
// "-HH:MM") named after TZName.
func (c *AttendanceConfig) Location() (*time.Location, error) {
	offset, err := parseUTCOffset(c.UTCOffset)
	if err != nil {
		return nil, err
	}
	return time.FixedZone(c.TZName, offset), nil
}

// parseUTCOffset parses a "+HH:MM" / "-HH:MM" offset into seconds east of UTC.
func parseUTCOffset(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty UTC offset")
	}
	sign := 1
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	}
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid UTC offset %q, expected +HH:MM", s)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 14 {
		return 0, fmt.Errorf("invalid UTC offset hours %q", hh)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid UTC offset minutes %q", mm)
	}
	return sign * (hours*3600 + minutes*60), nil
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return defaultVal
}

func Load() *Config {
	var def defaults
	if err := yaml.Unmarshal(defaultsYAML, &def); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}

	return &Config{
		Vision: VisionConfig{
			PredictionEndpoint: os.Getenv("CV_PREDICTION_ENDPOINT"),
			PredictionKey:      os.Getenv("CV_PREDICTION_KEY"),
			TrainingEndpoint:   os.Getenv("CV_TRAINING_ENDPOINT"),
			TrainingKey:        os.Getenv("CV_TRAINING_KEY"),
			ProjectID:          os.Getenv("CV_PROJECT_ID"),
			PublishedName:      os.Getenv("CV_PUBLISHED_NAME"),
		},
		BlobStore: BlobStoreConfig{
			URL:       os.Getenv("BLOB_URL"),
			Container: envString("BLOB_CONTAINER", "attendance-images"),
			SASToken:  os.Getenv("BLOB_SAS_TOKEN"),
		},
		DocStore: DocStoreConfig{
			URL:                  os.Getenv("DOCSTORE_URL"),
			Token:                os.Getenv("DOCSTORE_TOKEN"),
			UsersCollection:      envString("DOCSTORE_USERS_COLLECTION", "users"),
			AttendanceCollection: envString("DOCSTORE_ATTENDANCE_COLLECTION", "attendance"),
		},
		Attendance: AttendanceConfig{
			Threshold: envFloat("CONF_THRESHOLD", def.Attendance.Threshold),
			UTCOffset: envString("ATTENDANCE_UTC_OFFSET", def.Attendance.UTCOffset),
			TZName:    envString("ATTENDANCE_TZ_NAME", def.Attendance.TZName),
			Device:    envString("ATTENDANCE_DEVICE", def.Attendance.Device),
		},
	}
}
