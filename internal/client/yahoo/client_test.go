package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const chartBody = `{
  "chart": {
    "result": [
      {
        "meta": {
          "symbol": "AAPL",
          "longName": "Apple Inc.",
          "currency": "USD",
          "regularMarketPrice": 190.5
        },
        "timestamp": [1740990600, 1741077000],
        "indicators": {
          "quote": [
            {
              "open": [188.0, 189.5],
              "high": [191.0, 192.0],
              "low": [187.0, 188.5],
              "close": [189.5, 190.5],
              "volume": [1000000, null]
            }
          ]
        }
      }
    ],
    "error": null
  }
}`

func TestGetChart(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)
	result, raw, err := client.GetChart(context.Background(), " aapl ", "100d")
	if err != nil {
		t.Fatalf("GetChart failed: %v", err)
	}
	if gotPath != "/v8/finance/chart/AAPL" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if !strings.Contains(gotQuery, "range=100d") || !strings.Contains(gotQuery, "interval=1d") {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if !strings.Contains(gotUA, "Mozilla") {
		t.Fatalf("expected a browser user agent, got %q", gotUA)
	}
	if result.Meta.Symbol != "AAPL" || result.Meta.CompanyName("AAPL") != "Apple Inc." {
		t.Fatalf("unexpected meta: %+v", result.Meta)
	}
	if len(result.Timestamp) != 2 || len(result.Indicators.Quote) != 1 {
		t.Fatalf("unexpected arrays: %d timestamps, %d quote blocks", len(result.Timestamp), len(result.Indicators.Quote))
	}
	if result.Indicators.Quote[0].Volume[1] != nil {
		t.Fatal("expected null volume to parse as nil")
	}
	if len(raw) == 0 {
		t.Fatal("raw body must be returned for archiving")
	}
}

func TestGetChartErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "MISSING"):
			_, _ = w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
		case strings.Contains(r.URL.Path, "BROKEN"):
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
		default:
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("rate limited"))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL)

	if _, _, err := client.GetChart(context.Background(), "", "100d"); err == nil {
		t.Fatal("expected error for empty symbol")
	}
	if _, _, err := client.GetChart(context.Background(), "MISSING", "100d"); err == nil || !strings.Contains(err.Error(), "no chart data") {
		t.Fatalf("expected no-chart-data error, got %v", err)
	}
	if _, _, err := client.GetChart(context.Background(), "BROKEN", "100d"); err == nil || !strings.Contains(err.Error(), "Not Found") {
		t.Fatalf("expected upstream error to surface, got %v", err)
	}

	_, _, err := client.GetChart(context.Background(), "LIMITED", "100d")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusTooManyRequests {
		t.Fatalf("expected APIError with 429, got %v", err)
	}
}
