package view

import (
	"testing"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/table"
)

func TestStatusTone(t *testing.T) {
	tests := []struct {
		status string
		want   table.Tone
	}{
		{string(core.IPOLive), table.ToneSuccess},
		{string(core.IPOUpcoming), table.ToneWarning},
		{string(core.IPOClosed), table.ToneMuted},
		{"active", table.ToneSuccess},
		{"blocked", table.ToneDanger},
		{"something else", table.ToneInfo},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := StatusTone(tt.status); got != tt.want {
				t.Errorf("StatusTone(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestIPOColumns(t *testing.T) {
	ipos := []core.IPO{
		{Name: "Zeta", OpenDate: "2025-03-01", PriceBand: core.PriceBand{Min: 90, Max: 95}, Status: core.IPOLive},
		{Name: "Alpha", OpenDate: "2025-01-10", PriceBand: core.PriceBand{Min: 100, Max: 120}, Status: core.IPOClosed},
	}
	state := table.DefaultState().WithSort("priceBand")
	v := table.Apply(ipos, IPOColumns(), table.Options[core.IPO]{}, state)

	var ids []string
	for _, h := range v.Headers {
		ids = append(ids, h.ID)
	}
	want := []string{"name", "companyName", "openDate", "closeDate", "priceBand", "lotSize", "status"}
	if len(ids) != len(want) {
		t.Fatalf("headers = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("headers[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if v.Records[0].Name != "Zeta" {
		t.Errorf("first by price band = %q, want Zeta", v.Records[0].Name)
	}
	first := v.Rows[0].Cells
	if first[2].Text != "1 Mar 2025" {
		t.Errorf("open date = %q, want 1 Mar 2025", first[2].Text)
	}
	if first[4].Text != "₹90.00 - ₹95.00" {
		t.Errorf("price band = %q", first[4].Text)
	}
	if first[6].Tone != table.ToneSuccess || v.Rows[1].Cells[6].Tone != table.ToneMuted {
		t.Errorf("status tones = %q, %q", first[6].Tone, v.Rows[1].Cells[6].Tone)
	}
}
