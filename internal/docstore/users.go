package docstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// UserRepo is the REST implementation of UserRepository.
type UserRepo struct {
	client     *Client
	collection string
}

// NewUserRepository creates a user repository backed by the given collection.
func NewUserRepository(client *Client, collection string) *UserRepo {
	return &UserRepo{client: client, collection: collection}
}

// quoteFilterValue escapes a value for use inside a single-quoted filter.
func quoteFilterValue(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
}

// Upsert inserts or replaces a user document by id. The store has no native
// upsert, so this updates first and falls back to create on 404.
func (r *UserRepo) Upsert(ctx context.Context, user *User) error {
	endpoint := fmt.Sprintf("collections/%s/records/%s", r.collection, user.ID)
	_, err := doJSON[User](r.client, ctx, http.MethodPatch, endpoint, user)
	if IsNotFoundError(err) {
		endpoint = fmt.Sprintf("collections/%s/records", r.collection)
		_, err = doJSON[User](r.client, ctx, http.MethodPost, endpoint, user)
	}
	if err != nil {
		return fmt.Errorf("could not upsert user %s: %w", user.ID, err)
	}
	return nil
}

// getOne runs a single-result filter query.
func (r *UserRepo) getOne(ctx context.Context, filter string) (*User, error) {
	params := url.Values{}
	params.Set("filter", filter)
	params.Set("perPage", "1")

	result, err := queryRecords[User](r.client, ctx, r.collection, params)
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, nil
	}
	return &result.Items[0], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, "id="+quoteFilterValue(id))
}

func (r *UserRepo) GetByClassLabel(ctx context.Context, label string) (*User, error) {
	return r.getOne(ctx, "classLabel="+quoteFilterValue(label))
}

func (r *UserRepo) List(ctx context.Context) ([]User, error) {
	params := url.Values{}
	params.Set("perPage", "500")
	params.Set("sort", "name")

	result, err := queryRecords[User](r.client, ctx, r.collection, params)
	if err != nil {
		return nil, fmt.Errorf("could not list users: %w", err)
	}
	return result.Items, nil
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	params := url.Values{}
	params.Set("perPage", "1")

	result, err := queryRecords[User](r.client, ctx, r.collection, params)
	if err != nil {
		return 0, fmt.Errorf("could not count users: %w", err)
	}
	return result.TotalItems, nil
}
