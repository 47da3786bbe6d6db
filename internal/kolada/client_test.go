package kolada

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient points a client at a stub API with rate limiting disabled.
func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Config{BaseURL: srv.URL, RequestsPerSecond: 0})
}

const metadataBody = `{"count":1,"values":[{"id":"N01900","title":"Folkmängd","has_municipality_data":true,"operating_area":"Befolkning"}]}`

func TestClient_MunicipalityData_NestedSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/kpi/N01900":
			fmt.Fprint(w, metadataBody)
		case "/data/v1/kpi":
			if got := r.URL.Query().Get("municipality"); got != "1715" {
				t.Errorf("municipality param = %q, want 1715", got)
			}
			fmt.Fprint(w, `{"count":1,"values":[{"period":2023,"values":[{"value":95000}]}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	point, err := c.MunicipalityData(context.Background(), "N01900", "1715", 2023)
	if err != nil {
		t.Fatalf("MunicipalityData() error = %v", err)
	}

	if point.Value != 95000 {
		t.Errorf("Value = %g, want 95000", point.Value)
	}
	if point.Year != 2023 || point.MunicipalityID != "1715" || point.KPIID != "N01900" {
		t.Errorf("unexpected data point: %+v", point)
	}
}

func TestClient_MunicipalityData_FlatSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/kpi/N01900":
			fmt.Fprint(w, metadataBody)
		case "/data/v1/kpi":
			// Older schema: flat value, year as a string.
			fmt.Fprint(w, `{"count":1,"values":[{"year":"2023","value":93000}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	point, err := c.MunicipalityData(context.Background(), "N01900", "1715", 2023)
	if err != nil {
		t.Fatalf("MunicipalityData() error = %v", err)
	}
	if point.Value != 93000 {
		t.Errorf("Value = %g, want 93000", point.Value)
	}
}

func TestClient_MunicipalityData_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/kpi/N01900":
			fmt.Fprint(w, metadataBody)
		default:
			fmt.Fprint(w, `{"count":0,"values":[]}`)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.MunicipalityData(context.Background(), "N01900", "1715", 2030)

	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("expected *NoDataError, got %v", err)
	}
	if noData.Year != 2030 {
		t.Errorf("NoDataError.Year = %d, want 2030", noData.Year)
	}
}

func TestClient_MunicipalityData_NullValueIsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/kpi/N01900":
			fmt.Fprint(w, metadataBody)
		default:
			fmt.Fprint(w, `{"count":1,"values":[{"period":2023,"values":[{"value":null}]}]}`)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.MunicipalityData(context.Background(), "N01900", "1715", 2023)

	var noData *NoDataError
	if !errors.As(err, &noData) {
		t.Fatalf("expected *NoDataError for null value, got %v", err)
	}
}

func TestClient_MunicipalityData_ValidationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/kpi/N01900":
			fmt.Fprint(w, metadataBody)
		default:
			fmt.Fprint(w, `{"count":1,"values":[{"period":2023,"values":[{"value":10000}]}]}`)
		}
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.MunicipalityData(context.Background(), "N01900", "1715", 2023)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Value != 10000 {
		t.Errorf("ValidationError.Value = %g, want 10000", verr.Value)
	}
}

func TestClient_MunicipalityData_UnknownKPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count":0,"values":[]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.MunicipalityData(context.Background(), "X00000", "1715", 2023)

	var invalid *InvalidKPIError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidKPIError, got %v", err)
	}
}

func TestClient_MunicipalityData_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	_, err := c.MunicipalityData(context.Background(), "N01900", "1715", 2023)

	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestClient_Metadata_Cached(t *testing.T) {
	var metadataHits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/kpi/N01900" {
			metadataHits++
			fmt.Fprint(w, metadataBody)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	ctx := context.Background()

	first, err := c.Metadata(ctx, "N01900")
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	second, err := c.Metadata(ctx, "N01900")
	if err != nil {
		t.Fatalf("Metadata() second call error = %v", err)
	}

	if metadataHits != 1 {
		t.Errorf("metadata endpoint hit %d times, want 1", metadataHits)
	}
	if first.Title != "Folkmängd" || second.Title != "Folkmängd" {
		t.Errorf("Title = %q / %q, want Folkmängd", first.Title, second.Title)
	}
}

func TestClient_AvailableYears(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count":4,"values":[
			{"period":2021,"values":[{"value":1}]},
			{"period":2023,"values":[{"value":2}]},
			{"period":2021,"values":[{"value":3}]},
			{"year":"2022","value":4}
		]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	years, err := c.AvailableYears(context.Background(), "N01900", "1715")
	if err != nil {
		t.Fatalf("AvailableYears() error = %v", err)
	}

	want := []int{2023, 2022, 2021}
	if len(years) != len(want) {
		t.Fatalf("years = %v, want %v", years, want)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Errorf("years[%d] = %d, want %d", i, years[i], want[i])
		}
	}
}
