package ckan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

// fakeCatalogue serves a minimal CKAN action API for tests.
type fakeCatalogue struct {
	orgs     []string
	orgInfo  map[string]Organization
	datasets map[string][]Dataset // keyed by organization slug
	packages []string
	shows    map[string]Dataset // keyed by dataset name

	listHits        int
	packageListHits int
}

func (f *fakeCatalogue) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/organization_list", func(w http.ResponseWriter, r *http.Request) {
		f.listHits++
		writeResult(w, f.orgs)
	})

	mux.HandleFunc("/package_list", func(w http.ResponseWriter, r *http.Request) {
		f.packageListHits++
		writeResult(w, f.packages)
	})

	mux.HandleFunc("/organization_show", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		info, ok := f.orgInfo[id]
		if !ok {
			writeAPIError(w, http.StatusNotFound, "Not Found Error", "Not found: Group")
			return
		}
		if r.URL.Query().Get("include_datasets") == "true" {
			info.Datasets = f.datasets[id]
		}
		writeResult(w, info)
	})

	mux.HandleFunc("/package_search", func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimPrefix(r.URL.Query().Get("fq"), "organization:")
		rows, _ := strconv.Atoi(r.URL.Query().Get("rows"))
		list := f.datasets[slug]
		if rows > len(list) {
			rows = len(list)
		}
		writeResult(w, map[string]any{"count": len(list), "results": list[:rows]})
	})

	mux.HandleFunc("/package_show", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		ds, ok := f.shows[id]
		if !ok {
			writeAPIError(w, http.StatusNotFound, "Not Found Error", "Not found: Dataset")
			return
		}
		writeResult(w, ds)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// whitehall is a small fixture catalogue shared by directory tests.
func whitehall() *fakeCatalogue {
	dft := make([]Dataset, 12)
	for i := range dft {
		dft[i] = Dataset{
			ID:           fmt.Sprintf("dft-%02d", i),
			Name:         fmt.Sprintf("road-accidents-%d", 2014+i),
			Title:        fmt.Sprintf("Road accidents %d", 2014+i),
			Organization: DatasetOrganization{Name: "department-for-transport"},
		}
	}
	return &fakeCatalogue{
		orgs: []string{"department-for-transport", "home-office"},
		orgInfo: map[string]Organization{
			"department-for-transport": {
				Name:         "department-for-transport",
				Title:        "Department for Transport",
				Description:  "Roads, rail, aviation and maritime.",
				Created:      "2012-06-27T14:48:40.244951",
				PackageCount: 12,
			},
			"home-office": {
				Name:         "home-office",
				Title:        "Home Office",
				PackageCount: 1,
			},
		},
		datasets: map[string][]Dataset{
			"department-for-transport": dft,
			"home-office": {
				{ID: "ho-01", Name: "police-workforce", Organization: DatasetOrganization{Name: "home-office"}},
			},
		},
	}
}

func TestOrganizationsIdempotent(t *testing.T) {
	cat := whitehall()
	c := newTestClient(cat.server(t).URL)
	ctx := context.Background()

	first, err := c.Organizations(ctx)
	if err != nil {
		t.Fatalf("Organizations() error: %v", err)
	}
	second, err := c.Organizations(ctx)
	if err != nil {
		t.Fatalf("Organizations() second call error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
	if cat.listHits != 1 {
		t.Errorf("upstream hits = %d, want 1 (directory must be cached)", cat.listHits)
	}
}

func TestOrganizationsReturnsCopy(t *testing.T) {
	cat := whitehall()
	c := newTestClient(cat.server(t).URL)
	ctx := context.Background()

	first, _ := c.Organizations(ctx)
	first[0] = "mangled"

	second, _ := c.Organizations(ctx)
	if second[0] != "department-for-transport" {
		t.Error("caller mutation leaked into the cached directory")
	}
}

func TestRefreshOrganizations(t *testing.T) {
	cat := whitehall()
	c := newTestClient(cat.server(t).URL)
	ctx := context.Background()

	if _, err := c.Organizations(ctx); err != nil {
		t.Fatalf("Organizations() error: %v", err)
	}

	cat.orgs = append(cat.orgs, "environment-agency")
	fresh, err := c.RefreshOrganizations(ctx)
	if err != nil {
		t.Fatalf("RefreshOrganizations() error: %v", err)
	}
	if len(fresh) != 3 {
		t.Errorf("RefreshOrganizations() = %v, want 3 entries", fresh)
	}
	if cat.listHits != 2 {
		t.Errorf("upstream hits = %d, want 2", cat.listHits)
	}

	cached, _ := c.Organizations(ctx)
	if len(cached) != 3 {
		t.Errorf("Organizations() after refresh = %v, want refreshed directory", cached)
	}
}

func TestSearchOrganizations(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"substring match", "transport", []string{"department-for-transport"}},
		{"case insensitive", "TRANSPORT", []string{"department-for-transport"}},
		{"different org", "office", []string{"home-office"}},
		{"shared substring preserves order", "o", []string{"department-for-transport", "home-office"}},
		{"empty query returns all", "", []string{"department-for-transport", "home-office"}},
		{"blank query returns all", "   ", []string{"department-for-transport", "home-office"}},
		{"no match", "not-a-real-dept", nil},
	}

	c := newTestClient(whitehall().server(t).URL)
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.SearchOrganizations(ctx, tt.query)
			if err != nil {
				t.Fatalf("SearchOrganizations(%q) error: %v", tt.query, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SearchOrganizations(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchOrganizationsMatchesAppearOnce(t *testing.T) {
	c := newTestClient(whitehall().server(t).URL)

	got, err := c.SearchOrganizations(context.Background(), "o")
	if err != nil {
		t.Fatalf("SearchOrganizations() error: %v", err)
	}
	seen := make(map[string]int)
	for _, name := range got {
		seen[name]++
	}
	for name, n := range seen {
		if n != 1 {
			t.Errorf("organization %q appears %d times, want 1", name, n)
		}
	}
}

func TestOrganizationInfo(t *testing.T) {
	c := newTestClient(whitehall().server(t).URL)

	info, err := c.OrganizationInfo(context.Background(), "department-for-transport")
	if err != nil {
		t.Fatalf("OrganizationInfo() error: %v", err)
	}
	if info.Title != "Department for Transport" {
		t.Errorf("Title = %q", info.Title)
	}
	if info.PackageCount != 12 {
		t.Errorf("PackageCount = %d, want 12", info.PackageCount)
	}
	if info.Datasets != nil {
		t.Errorf("Datasets should not be populated without the datasets flag")
	}
}

func TestOrganizationInfoNormalizesDisplayName(t *testing.T) {
	c := newTestClient(whitehall().server(t).URL)

	info, err := c.OrganizationInfo(context.Background(), "Department for Transport")
	if err != nil {
		t.Fatalf("OrganizationInfo() error: %v", err)
	}
	if info.Name != "department-for-transport" {
		t.Errorf("Name = %q", info.Name)
	}
}

func TestOrganizationInfoNotFound(t *testing.T) {
	c := newTestClient(whitehall().server(t).URL)

	info, err := c.OrganizationInfo(context.Background(), "not-a-real-dept")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("OrganizationInfo() error = %v, want ErrNotFound", err)
	}
	if info != nil {
		t.Errorf("OrganizationInfo() = %+v, want nil record on error", info)
	}
}

func TestOrganizationWithDatasets(t *testing.T) {
	c := newTestClient(whitehall().server(t).URL)

	info, err := c.OrganizationWithDatasets(context.Background(), "home-office")
	if err != nil {
		t.Fatalf("OrganizationWithDatasets() error: %v", err)
	}
	if len(info.Datasets) != 1 || info.Datasets[0].Name != "police-workforce" {
		t.Errorf("Datasets = %+v", info.Datasets)
	}
}

func TestDatasetsForOrganization(t *testing.T) {
	c := newTestClient(whitehall().server(t).URL)

	datasets, err := c.DatasetsForOrganization(context.Background(), "department-for-transport")
	if err != nil {
		t.Fatalf("DatasetsForOrganization() error: %v", err)
	}
	if len(datasets) != 12 {
		t.Fatalf("got %d datasets, want 12", len(datasets))
	}
	for _, ds := range datasets {
		if ds.Organization.Name != "department-for-transport" {
			t.Errorf("dataset %q tagged with %q", ds.Name, ds.Organization.Name)
		}
	}
}

func TestDatasetsForOrganizationAcceptsDisplayName(t *testing.T) {
	c := newTestClient(whitehall().server(t).URL)

	datasets, err := c.DatasetsForOrganization(context.Background(), "Department for Transport")
	if err != nil {
		t.Fatalf("DatasetsForOrganization() error: %v", err)
	}
	if len(datasets) != 12 {
		t.Errorf("got %d datasets, want 12", len(datasets))
	}
}

func TestDatasetsForOrganizationUnknownIsEmpty(t *testing.T) {
	c := newTestClient(whitehall().server(t).URL)

	datasets, err := c.DatasetsForOrganization(context.Background(), "not-a-real-dept")
	if err != nil {
		t.Fatalf("DatasetsForOrganization() must be total, got error: %v", err)
	}
	if len(datasets) != 0 {
		t.Errorf("got %d datasets for unknown organization, want 0", len(datasets))
	}
}

func TestDatasetsForOrganizationTruncatesAtRowCap(t *testing.T) {
	big := make([]Dataset, maxSearchRows+500)
	for i := range big {
		big[i] = Dataset{
			Name:         fmt.Sprintf("stats-%04d", i),
			Organization: DatasetOrganization{Name: "office-for-national-statistics"},
		}
	}
	cat := &fakeCatalogue{
		orgs:     []string{"office-for-national-statistics"},
		datasets: map[string][]Dataset{"office-for-national-statistics": big},
	}
	c := newTestClient(cat.server(t).URL)

	datasets, err := c.DatasetsForOrganization(context.Background(), "office-for-national-statistics")
	if err != nil {
		t.Fatalf("DatasetsForOrganization() error: %v", err)
	}
	if len(datasets) != maxSearchRows {
		t.Errorf("got %d datasets, want row cap %d", len(datasets), maxSearchRows)
	}
}
