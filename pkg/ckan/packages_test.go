package ckan

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func spendCatalogue() *fakeCatalogue {
	return &fakeCatalogue{
		packages: []string{"spend-over-25k-2023", "spend-over-25k-2024", "road-safety-data"},
		shows: map[string]Dataset{
			"spend-over-25k-2024": {
				ID:    "f3a1",
				Name:  "spend-over-25k-2024",
				Title: "Spend over £25,000, 2024",
				Organization: DatasetOrganization{
					Name: "cabinet-office",
				},
				Resources: []Resource{
					{ID: "r1", Name: "january.csv", Format: "CSV", Created: "2024-02-03T09:00:00.000000", PackageID: "f3a1"},
					{ID: "r3", Name: "march.csv", Format: "CSV", Created: "2024-04-02T09:00:00.000000", PackageID: "f3a1"},
					{ID: "r2", Name: "february.csv", Format: "CSV", Created: "2024-03-01T09:00:00.000000", PackageID: "f3a1"},
				},
			},
		},
	}
}

func TestPackagesCached(t *testing.T) {
	cat := spendCatalogue()
	c := newTestClient(cat.server(t).URL)
	ctx := context.Background()

	first, err := c.Packages(ctx)
	if err != nil {
		t.Fatalf("Packages() error: %v", err)
	}
	if _, err := c.Packages(ctx); err != nil {
		t.Fatalf("Packages() second call error: %v", err)
	}
	if cat.packageListHits != 1 {
		t.Errorf("upstream hits = %d, want 1", cat.packageListHits)
	}
	if len(first) != 3 {
		t.Errorf("Packages() = %v", first)
	}
}

func TestSearchPackages(t *testing.T) {
	c := newTestClient(spendCatalogue().server(t).URL)

	got, err := c.SearchPackages(context.Background(), "spend")
	if err != nil {
		t.Fatalf("SearchPackages() error: %v", err)
	}
	want := []string{"spend-over-25k-2023", "spend-over-25k-2024"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SearchPackages() = %v, want %v", got, want)
	}
}

func TestDataset(t *testing.T) {
	c := newTestClient(spendCatalogue().server(t).URL)

	ds, err := c.Dataset(context.Background(), "spend-over-25k-2024")
	if err != nil {
		t.Fatalf("Dataset() error: %v", err)
	}
	if ds.Title != "Spend over £25,000, 2024" {
		t.Errorf("Title = %q", ds.Title)
	}
	if ds.Organization.Name != "cabinet-office" {
		t.Errorf("Organization.Name = %q", ds.Organization.Name)
	}
}

func TestDatasetNotFound(t *testing.T) {
	c := newTestClient(spendCatalogue().server(t).URL)

	if _, err := c.Dataset(context.Background(), "no-such-dataset"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Dataset() error = %v, want ErrNotFound", err)
	}
}

func TestDatasetResourcesSortedNewestFirst(t *testing.T) {
	c := newTestClient(spendCatalogue().server(t).URL)

	resources, err := c.DatasetResources(context.Background(), "spend-over-25k-2024")
	if err != nil {
		t.Fatalf("DatasetResources() error: %v", err)
	}

	want := []string{"march.csv", "february.csv", "january.csv"}
	if len(resources) != len(want) {
		t.Fatalf("got %d resources, want %d", len(resources), len(want))
	}
	for i, name := range want {
		if resources[i].Name != name {
			t.Errorf("resources[%d] = %q, want %q", i, resources[i].Name, name)
		}
	}
}

func TestDatasetResourcesNotFound(t *testing.T) {
	c := newTestClient(spendCatalogue().server(t).URL)

	if _, err := c.DatasetResources(context.Background(), "no-such-dataset"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DatasetResources() error = %v, want ErrNotFound", err)
	}
}
