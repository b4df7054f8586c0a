package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/JonMunkholm/ipoadmin/internal/core"
)

const listingBody = `{
	"success": true,
	"data": [
		{"id": 7, "name": "Acme IPO", "open": "Mar 1, 2025", "close": "Mar 5, 2025",
		 "min_price": "100", "max_price": "120", "lot_size": 50, "current_status": "open"},
		{"id": 8, "name": "Beta Ltd", "min_price": "90", "current_status": "closed"}
	],
	"pagination": {"total": 32, "page": 2, "limit": 2, "totalPages": 16, "hasNextPage": true, "hasPrevPage": true}
}`

func newListingServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(listingBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ----------------------------------------------------------------------------
// ipos
// ----------------------------------------------------------------------------

func TestIPOsTable(t *testing.T) {
	srv := newListingServer(t, http.StatusOK)

	out, err := run(t, "ipos", "--base-url", srv.URL, "--page", "2", "--limit", "2")
	if err != nil {
		t.Fatalf("ipos error = %v", err)
	}
	for _, want := range []string{"IPO NAME", "COMPANY NAME", "GMP", "Acme IPO", "Beta Ltd", "live", "1 Mar 2025", "₹100.00 - ₹120.00", "Page 2 of 16, 32 IPOs"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestIPOsSearchAndSort(t *testing.T) {
	srv := newListingServer(t, http.StatusOK)

	out, err := run(t, "ipos", "--base-url", srv.URL, "--search", "acme")
	if err != nil {
		t.Fatalf("ipos error = %v", err)
	}
	if !strings.Contains(out, "Acme IPO") || strings.Contains(out, "Beta Ltd") {
		t.Errorf("search output = %s", out)
	}

	out, err = run(t, "ipos", "--base-url", srv.URL, "--sort", "priceBand")
	if err != nil {
		t.Fatalf("ipos error = %v", err)
	}
	if strings.Index(out, "Beta Ltd") > strings.Index(out, "Acme IPO") {
		t.Errorf("ascending price band should list Beta first:\n%s", out)
	}

	out, err = run(t, "ipos", "--base-url", srv.URL, "--sort", "name", "--desc")
	if err != nil {
		t.Fatalf("ipos error = %v", err)
	}
	if strings.Index(out, "Beta Ltd") > strings.Index(out, "Acme IPO") {
		t.Errorf("descending name should list Beta first:\n%s", out)
	}
}

func TestIPOsNoMatch(t *testing.T) {
	srv := newListingServer(t, http.StatusOK)

	out, err := run(t, "ipos", "--base-url", srv.URL, "--search", "zzz")
	if err != nil {
		t.Fatalf("ipos error = %v", err)
	}
	if !strings.Contains(out, "No IPOs found") {
		t.Errorf("output = %s, want empty message", out)
	}
}

func TestIPOsJSON(t *testing.T) {
	srv := newListingServer(t, http.StatusOK)

	out, err := run(t, "ipos", "--base-url", srv.URL, "-o", "json")
	if err != nil {
		t.Fatalf("ipos error = %v", err)
	}

	var got struct {
		IPOs       []core.IPO `json:"ipos"`
		Pagination struct {
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(got.IPOs) != 2 || got.IPOs[0].ID != "7" || got.IPOs[0].OpenDate != "2025-03-01" {
		t.Errorf("IPOs = %+v", got.IPOs)
	}
	if got.Pagination.TotalPages != 16 {
		t.Errorf("TotalPages = %d, want 16", got.Pagination.TotalPages)
	}
}

func TestIPOsEnvOutput(t *testing.T) {
	srv := newListingServer(t, http.StatusOK)
	t.Setenv("IPOCTL_OUTPUT", "json")
	t.Setenv("IPOCTL_BASE_URL", srv.URL)

	out, err := run(t, "ipos")
	if err != nil {
		t.Fatalf("ipos error = %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("output = %s, want JSON", out)
	}
}

func TestIPOsErrors(t *testing.T) {
	srv := newListingServer(t, http.StatusInternalServerError)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"upstream failure", []string{"ipos", "--base-url", srv.URL}, "fetch ipos"},
		{"unknown sort", []string{"ipos", "--base-url", srv.URL, "--sort", "bogus"}, `unknown sort column "bogus"`},
		{"bad output", []string{"ipos", "--base-url", srv.URL, "-o", "xml"}, `unknown output format "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// normalize
// ----------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.json")
	raw := `[{"id": 3, "name": "Gamma", "open": "2025-04-01T00:00:00Z", "current_status": "upcoming"}]`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "normalize", path)
	if err != nil {
		t.Fatalf("normalize error = %v", err)
	}

	var got []core.IPO
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != "3" || got[0].OpenDate != "2025-04-01" || got[0].Status != core.IPOUpcoming {
		t.Errorf("normalized = %+v", got[0])
	}
}

func TestNormalizeOffTypeFields(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader(`[{"name":"Good"},{"name":12345,"issue_size":1500}]`))
	cmd.SetArgs([]string{"normalize", "-"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("normalize error = %v", err)
	}

	var got []core.IPO
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Good" || got[1].Name != "12345" || got[1].IssueSize != "1500" {
		t.Errorf("normalized = %+v", got)
	}
}

func TestNormalizeStdin(t *testing.T) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader(listingBody))
	cmd.SetArgs([]string{"normalize", "-"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("normalize error = %v", err)
	}

	var got []core.IPO
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got) != 2 || got[1].Name != "Beta Ltd" {
		t.Errorf("normalized = %+v", got)
	}
}

func TestNormalizeMissingFile(t *testing.T) {
	_, err := run(t, "normalize", filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("normalize error = nil, want read error")
	}
}

// ----------------------------------------------------------------------------
// seed
// ----------------------------------------------------------------------------

func TestSeedSummary(t *testing.T) {
	out, err := run(t, "seed")
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}
	for _, want := range []string{"products", "ipos", "notifications"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSeedResource(t *testing.T) {
	out, err := run(t, "seed", "products")
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}
	if !strings.Contains(out, "Premium IPO Analysis Package") || !strings.Contains(out, "₹2,999.00") {
		t.Errorf("output = %s", out)
	}

	out, err = run(t, "seed", "users", "-o", "json")
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}
	var users []core.User
	if err := json.Unmarshal([]byte(out), &users); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(users) == 0 {
		t.Error("users = empty, want sample users")
	}
}

func TestSeedUnknownResource(t *testing.T) {
	_, err := run(t, "seed", "widgets")
	if err == nil || !strings.Contains(err.Error(), `unknown resource "widgets"`) {
		t.Errorf("error = %v", err)
	}
}
