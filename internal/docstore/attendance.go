package docstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// AttendanceRepo is the REST implementation of AttendanceRepository.
type AttendanceRepo struct {
	client     *Client
	collection string
}

// NewAttendanceRepository creates an attendance repository backed by the
// given collection.
func NewAttendanceRepository(client *Client, collection string) *AttendanceRepo {
	return &AttendanceRepo{client: client, collection: collection}
}

func (r *AttendanceRepo) Create(ctx context.Context, record *AttendanceRecord) error {
	endpoint := fmt.Sprintf("collections/%s/records", r.collection)
	if _, err := doJSON[AttendanceRecord](r.client, ctx, http.MethodPost, endpoint, record); err != nil {
		return fmt.Errorf("could not create attendance record: %w", err)
	}
	return nil
}

// list runs a filtered, sorted query over the attendance collection.
func (r *AttendanceRepo) list(ctx context.Context, filter, sort string, limit int) ([]AttendanceRecord, error) {
	params := url.Values{}
	if filter != "" {
		params.Set("filter", filter)
	}
	params.Set("sort", sort)
	params.Set("perPage", strconv.Itoa(limit))

	result, err := queryRecords[AttendanceRecord](r.client, ctx, r.collection, params)
	if err != nil {
		return nil, fmt.Errorf("could not query attendance records: %w", err)
	}
	return result.Items, nil
}

func (r *AttendanceRepo) ListByCreatedRange(ctx context.Context, from, to int64) ([]AttendanceRecord, error) {
	filter := fmt.Sprintf("created >= %d && created < %d", from, to)
	return r.list(ctx, filter, "-created", 500)
}

func (r *AttendanceRepo) ListByTimestampRange(ctx context.Context, from, to string) ([]AttendanceRecord, error) {
	filter := fmt.Sprintf("timestamp >= %s && timestamp < %s", quoteFilterValue(from), quoteFilterValue(to))
	return r.list(ctx, filter, "-timestamp", 500)
}

func (r *AttendanceRepo) ListRecent(ctx context.Context, limit int) ([]AttendanceRecord, error) {
	return r.list(ctx, "", "-created", limit)
}
