package ckan

// Organization holds metadata for a publishing body registered on
// data.gov.uk (a government department, agency, or local authority).
//
// The Name field is the canonical slug (e.g. "department-for-transport")
// and is the identifier accepted by all organization-scoped operations.
// Timestamps are kept verbatim as returned by the provider; CKAN emits
// zone-less ISO 8601 strings that are not valid RFC 3339.
//
// Zero values: all string fields are empty, PackageCount is 0, Datasets is
// nil. A nil Datasets slice is valid and means datasets were not requested.
type Organization struct {
	Name         string    `json:"name"`          // Canonical slug, never empty in a valid record
	Title        string    `json:"title"`         // Display name (e.g. "Department for Transport")
	Description  string    `json:"description"`   // Free-form description (may be empty)
	Created      string    `json:"created"`       // Creation timestamp as returned by the API
	PackageCount int       `json:"package_count"` // Number of datasets published by this organization
	Datasets     []Dataset `json:"packages"`      // Populated only when datasets are requested
}

// Dataset is a single published data resource (a CKAN "package").
// Every dataset belongs to exactly one organization.
type Dataset struct {
	ID               string              `json:"id"`                // Provider-assigned UUID
	Name             string              `json:"name"`              // URL slug, unique across the catalogue
	Title            string              `json:"title"`             // Display title
	Notes            string              `json:"notes"`             // Free-form description (may be empty)
	LicenseTitle     string              `json:"license_title"`     // License display name (may be empty)
	MetadataCreated  string              `json:"metadata_created"`  // Catalogue registration timestamp
	MetadataModified string              `json:"metadata_modified"` // Last metadata change timestamp
	Organization     DatasetOrganization `json:"organization"`      // Owning organization
	Resources        []Resource          `json:"resources"`         // Downloadable files (nil or empty if none)
}

// DatasetOrganization identifies the organization a dataset belongs to.
// It is a reduced view of [Organization] as embedded in package records.
type DatasetOrganization struct {
	Name  string `json:"name"`  // Organization slug
	Title string `json:"title"` // Organization display name
}

// Resource is a single downloadable file attached to a dataset.
type Resource struct {
	ID           string `json:"id"`            // Provider-assigned UUID
	Name         string `json:"name"`          // Display name (may be empty)
	Description  string `json:"description"`   // Free-form description (may be empty)
	Format       string `json:"format"`        // File format label (e.g. "CSV", may be empty)
	MimeType     string `json:"mimetype"`      // MIME type (may be empty)
	PackageID    string `json:"package_id"`    // Owning dataset UUID
	ResourceType string `json:"resource_type"` // CKAN resource type (may be empty)
	Created      string `json:"created"`       // Upload timestamp as returned by the API
	URL          string `json:"url"`           // Download URL
}
