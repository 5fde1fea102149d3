package ckan

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// maxSearchRows is the provider's row cap for a single package_search
// request. Organizations with more datasets than this are truncated to
// the first page; see DatasetsForOrganization.
const maxSearchRows = 1000

// Organizations returns the slugs of every organization registered in the
// catalogue, in provider order. The listing is fetched on first call and
// reused for the lifetime of the client; use [Client.RefreshOrganizations]
// to force a refetch. The returned slice is a copy and safe to modify.
func (c *Client) Organizations(ctx context.Context) ([]string, error) {
	return c.orgs.load(func() ([]string, error) {
		return c.fetchList(ctx, "organization_list")
	})
}

// RefreshOrganizations refetches the organization directory, replacing the
// cached listing, and returns the fresh contents.
func (c *Client) RefreshOrganizations(ctx context.Context) ([]string, error) {
	return c.orgs.refresh(func() ([]string, error) {
		return c.fetchList(ctx, "organization_list")
	})
}

// SearchOrganizations returns the organizations whose slug contains query,
// case-insensitively, preserving directory order. Each match appears once.
// An empty query applies no filter and returns the full directory.
func (c *Client) SearchOrganizations(ctx context.Context, query string) ([]string, error) {
	names, err := c.Organizations(ctx)
	if err != nil {
		return nil, err
	}
	return FilterNames(names, query), nil
}

// OrganizationInfo fetches the metadata record for one organization.
// The org argument may be a slug or a display name; it is normalized
// before lookup. Unknown organizations fail with [ErrNotFound].
func (c *Client) OrganizationInfo(ctx context.Context, org string) (*Organization, error) {
	return c.organizationShow(ctx, org, false)
}

// OrganizationWithDatasets fetches an organization record with its
// datasets populated. Unknown organizations fail with [ErrNotFound].
func (c *Client) OrganizationWithDatasets(ctx context.Context, org string) (*Organization, error) {
	return c.organizationShow(ctx, org, true)
}

func (c *Client) organizationShow(ctx context.Context, org string, includeDatasets bool) (*Organization, error) {
	slug := NormalizeSlug(org)
	q := url.Values{
		"id":               {slug},
		"include_datasets": {strconv.FormatBool(includeDatasets)},
	}
	var info Organization
	if err := c.action(ctx, "organization_show", q, &info); err != nil {
		return nil, fmt.Errorf("organization %q: %w", slug, err)
	}
	return &info, nil
}

// DatasetsForOrganization returns the datasets published by the given
// organization. The org argument may be a slug or a display name. An
// unknown organization yields an empty slice, never an error, so the
// operation is total over arbitrary input strings.
//
// The provider caps a single search at 1000 rows; larger catalogues are
// truncated to the first 1000 datasets and a warning is logged.
func (c *Client) DatasetsForOrganization(ctx context.Context, org string) ([]Dataset, error) {
	slug := NormalizeSlug(org)
	fq := "organization:" + slug

	// Probe the match count first so the follow-up request asks for
	// exactly as many rows as exist.
	probe, err := c.packageSearch(ctx, fq, 0)
	if err != nil {
		return nil, fmt.Errorf("datasets for %q: %w", slug, err)
	}
	if probe.Count == 0 {
		return []Dataset{}, nil
	}

	rows := probe.Count
	if rows > maxSearchRows {
		if c.logger != nil {
			c.logger.Warn("organization exceeds search row cap, truncating",
				"organization", slug, "datasets", probe.Count, "cap", maxSearchRows)
		}
		rows = maxSearchRows
	}

	res, err := c.packageSearch(ctx, fq, rows)
	if err != nil {
		return nil, fmt.Errorf("datasets for %q: %w", slug, err)
	}
	return res.Results, nil
}

// searchResult is the result payload of the package_search action.
type searchResult struct {
	Count   int       `json:"count"`
	Results []Dataset `json:"results"`
}

func (c *Client) packageSearch(ctx context.Context, fq string, rows int) (*searchResult, error) {
	q := url.Values{
		"fq":   {fq},
		"rows": {strconv.Itoa(rows)},
	}
	var res searchResult
	if err := c.action(ctx, "package_search", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// fetchList runs a bare listing action (organization_list, package_list)
// and returns the name slice. A null result is normalized to empty so the
// directory cache records the fetch.
func (c *Client) fetchList(ctx context.Context, name string) ([]string, error) {
	var names []string
	if err := c.action(ctx, name, nil, &names); err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
