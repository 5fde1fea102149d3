// Package pkg provides the core libraries for the data.gov.uk client.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. [ckan] - The client for the data.gov.uk CKAN action API: typed
//     records (Organization, Dataset, Resource), directory accessors,
//     search, and dataset lookups.
//  2. [httputil] - Retry with exponential backoff for transient HTTP
//     failures.
//  3. [observability] - Optional hooks for instrumenting outbound HTTP
//     requests without coupling the library to a metrics backend.
//  4. [buildinfo] - Build-time version information injected via ldflags.
//
// # Quick Start
//
// List organizations and fetch one organization's datasets:
//
//	import "github.com/ukopendata/datagovuk/pkg/ckan"
//
//	client := ckan.New(ckan.Config{})
//	orgs, err := client.Organizations(ctx)
//	datasets, err := client.DatasetsForOrganization(ctx, "department-for-transport")
//	info, err := client.OrganizationInfo(ctx, "home-office")
//
// # Testing
//
//	go test ./pkg/...
//
// [ckan]: https://pkg.go.dev/github.com/ukopendata/datagovuk/pkg/ckan
// [httputil]: https://pkg.go.dev/github.com/ukopendata/datagovuk/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/ukopendata/datagovuk/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/ukopendata/datagovuk/pkg/buildinfo
package pkg
