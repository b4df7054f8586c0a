package seed

import (
	"context"
	"testing"

	"github.com/JonMunkholm/ipoadmin/internal/core"
)

func TestLoad(t *testing.T) {
	d, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(d.Products) != 3 || len(d.IPOs) != 3 || len(d.Users) != 3 {
		t.Errorf("counts = %d products, %d ipos, %d users", len(d.Products), len(d.IPOs), len(d.Users))
	}
	if got := d.IPOs[1].PriceBand; got != (core.PriceBand{Min: 150, Max: 160}) {
		t.Errorf("IPOs[1].PriceBand = %+v", got)
	}
	if d.IPOs[1].Status != core.IPOLive {
		t.Errorf("IPOs[1].Status = %q, want live", d.IPOs[1].Status)
	}
	if len(d.Plans[2].Features) != 4 {
		t.Errorf("Enterprise features = %v", d.Plans[2].Features)
	}
	if d.Content[0].Body == "" {
		t.Error("Content[0].Body is empty")
	}
	if d.Settings != core.DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults", d.Settings)
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	repos := core.MemoryRepositories()

	d, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	counts, err := Apply(ctx, repos, d)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if counts["ipos"] != 3 || counts["orders"] != 3 || counts["settings"] != 1 {
		t.Errorf("counts = %v", counts)
	}

	// A second run leaves populated repositories alone.
	counts, err = Apply(ctx, repos, d)
	if err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}
	for key, n := range counts {
		if n != 0 {
			t.Errorf("second Apply() seeded %d %s", n, key)
		}
	}

	svc := core.NewService(repos)
	stats, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if stats.Revenue != 2999 || stats.ActiveIPOs != 1 || stats.SubscriptionCount != 3 {
		t.Errorf("Dashboard() = %+v", stats)
	}

	log, _ := svc.AuditLog(ctx)
	if len(log) != 0 {
		t.Errorf("seeding wrote %d audit entries, want 0", len(log))
	}
}
