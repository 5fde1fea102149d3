package ckan

import (
	"context"
	"fmt"
	"net/url"
	"sort"
)

// Packages returns the names of every dataset in the catalogue, in
// provider order. Like the organization directory, the listing is fetched
// once and reused for the lifetime of the client; use
// [Client.RefreshPackages] to force a refetch.
//
// Note: on data.gov.uk this is a large listing (tens of thousands of
// names), so the first call is noticeably slower than the rest.
func (c *Client) Packages(ctx context.Context) ([]string, error) {
	return c.pkgs.load(func() ([]string, error) {
		return c.fetchList(ctx, "package_list")
	})
}

// RefreshPackages refetches the dataset directory, replacing the cached
// listing, and returns the fresh contents.
func (c *Client) RefreshPackages(ctx context.Context) ([]string, error) {
	return c.pkgs.refresh(func() ([]string, error) {
		return c.fetchList(ctx, "package_list")
	})
}

// SearchPackages returns the dataset names containing query,
// case-insensitively, preserving directory order. An empty query returns
// the full directory.
func (c *Client) SearchPackages(ctx context.Context, query string) ([]string, error) {
	names, err := c.Packages(ctx)
	if err != nil {
		return nil, err
	}
	return FilterNames(names, query), nil
}

// Dataset fetches the full record for one dataset by name or UUID.
// Unknown datasets fail with [ErrNotFound].
func (c *Client) Dataset(ctx context.Context, id string) (*Dataset, error) {
	slug := NormalizeSlug(id)
	var ds Dataset
	if err := c.action(ctx, "package_show", url.Values{"id": {slug}}, &ds); err != nil {
		return nil, fmt.Errorf("dataset %q: %w", slug, err)
	}
	return &ds, nil
}

// DatasetResources fetches the downloadable resources of one dataset,
// most recently created first. Unknown datasets fail with [ErrNotFound].
func (c *Client) DatasetResources(ctx context.Context, id string) ([]Resource, error) {
	ds, err := c.Dataset(ctx, id)
	if err != nil {
		return nil, err
	}
	resources := make([]Resource, len(ds.Resources))
	copy(resources, ds.Resources)
	// CKAN timestamps are zone-less ISO 8601, so lexicographic order is
	// chronological order.
	sort.SliceStable(resources, func(i, j int) bool {
		return resources[i].Created > resources[j].Created
	})
	return resources, nil
}
