// Package ckan provides a typed client for the data.gov.uk CKAN action
// API, with convenience accessors for organizations and datasets.
//
// # Overview
//
// data.gov.uk (and most other government open-data portals) run CKAN,
// which exposes a GET-only "action" API. Every response is wrapped in a
// success envelope; this package unwraps the envelope, maps the loosely
// typed JSON onto explicit records ([Organization], [Dataset], [Resource])
// at the boundary, and converts provider error classes to Go errors.
//
// # Client Pattern
//
//	client := ckan.New(ckan.Config{})
//
//	orgs, err := client.Organizations(ctx)                              // full directory
//	hits, err := client.SearchOrganizations(ctx, "transport")           // substring match
//	dss, err := client.DatasetsForOrganization(ctx, "home-office")      // scoped listing
//	info, err := client.OrganizationInfo(ctx, "department-for-transport")
//
// Search and filter operations are total over their string inputs: an
// unknown organization yields an empty result, not an error. Only the
// single-record lookups (OrganizationInfo, Dataset) distinguish missing
// records, via [ErrNotFound].
//
// The organization and dataset directories are fetched once per client
// and reused; RefreshOrganizations and RefreshPackages force a refetch.
// Everything else is a stateless round trip. Transient failures (network
// errors, 5xx) are retried once and otherwise surface as [ErrNetwork].
//
// All methods are safe for concurrent use.
package ckan
