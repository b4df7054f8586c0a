package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/ipoadmin/internal/store"
)

func newTestService() *Service {
	return NewService(MemoryRepositories())
}

// ----------------------------------------------------------------------------
// Resource CRUD
// ----------------------------------------------------------------------------

func TestResourceCreateFillsDefaults(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Products.Create(ctx, Product{Name: "  IPO Research Pack  ", Price: 499})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID == "" {
		t.Error("Create() should assign an id")
	}
	if p.Name != "IPO Research Pack" {
		t.Errorf("Name = %q, want trimmed", p.Name)
	}
	if p.Status != StatusActive {
		t.Errorf("Status = %q, want %q", p.Status, StatusActive)
	}
	if p.CreatedAt != Today() {
		t.Errorf("CreatedAt = %q, want today", p.CreatedAt)
	}
	if p.PublishDate != p.CreatedAt {
		t.Errorf("PublishDate = %q, want %q", p.PublishDate, p.CreatedAt)
	}
}

func TestResourceCreateRejectsInvalid(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		code string
	}{
		{
			name: "product without name",
			call: func() error { _, err := svc.Products.Create(ctx, Product{Name: " "}); return err },
			code: "REC002",
		},
		{
			name: "negative price",
			call: func() error { _, err := svc.Products.Create(ctx, Product{Name: "X", Price: -1}); return err },
			code: "REC002",
		},
		{
			name: "user email without at sign",
			call: func() error { _, err := svc.Users.Create(ctx, User{Name: "A", Email: "nope"}); return err },
			code: "REC002",
		},
		{
			name: "ipo with inverted price band",
			call: func() error {
				_, err := svc.IPOs.Create(ctx, IPO{Name: "X", PriceBand: PriceBand{Min: 200, Max: 100}})
				return err
			},
			code: "REC002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := MapError(err).Code; got != tt.code {
				t.Errorf("code = %q, want %q", got, tt.code)
			}
		})
	}

	if recs, _ := svc.Products.List(ctx); len(recs) != 0 {
		t.Errorf("rejected creates stored %d products", len(recs))
	}
}

func TestResourceUpdateKeepsCreatedAt(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	c, err := svc.Categories.Create(ctx, Category{Name: "Main Board", CreatedAt: "2024-01-05"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.Slug != "main-board" {
		t.Errorf("Slug = %q, want main-board", c.Slug)
	}

	updated, err := svc.Categories.Update(ctx, c.ID, Category{Name: "SME", CreatedAt: "2030-01-01"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.CreatedAt != "2024-01-05" {
		t.Errorf("CreatedAt = %q, want original", updated.CreatedAt)
	}
	if updated.ID != c.ID {
		t.Errorf("ID = %q, want %q", updated.ID, c.ID)
	}
	if updated.Slug != "sme" {
		t.Errorf("Slug = %q, want sme", updated.Slug)
	}
}

func TestResourceUpdateMissing(t *testing.T) {
	svc := newTestService()

	_, err := svc.Products.Update(context.Background(), "nope", Product{Name: "X"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestResourceDeleteIsAudited(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, _ := svc.Products.Create(ctx, Product{Name: "Pack"})
	if err := svc.Products.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Products.Get(ctx, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	log, err := svc.AuditLog(ctx)
	if err != nil {
		t.Fatalf("AuditLog() error = %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("len(AuditLog) = %d, want 2", len(log))
	}

	var deleted *AuditEntry
	for i := range log {
		if log[i].Action == ActionDelete {
			deleted = &log[i]
		}
	}
	if deleted == nil {
		t.Fatal("no delete entry recorded")
	}
	if deleted.Severity != SeverityHigh {
		t.Errorf("Severity = %q, want high", deleted.Severity)
	}
	if deleted.Summary != `Deleted product "Pack"` {
		t.Errorf("Summary = %q", deleted.Summary)
	}
	if deleted.Target != p.ID {
		t.Errorf("Target = %q, want %q", deleted.Target, p.ID)
	}
}

func TestAuditCarriesRequestMeta(t *testing.T) {
	svc := newTestService()
	ctx := WithRequestMeta(context.Background(), RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"})

	if _, err := svc.Categories.Create(ctx, Category{Name: "Blog"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	log, _ := svc.AuditLog(ctx)
	if len(log) != 1 {
		t.Fatalf("len(AuditLog) = %d, want 1", len(log))
	}
	if log[0].IPAddress != "10.0.0.1" || log[0].UserAgent != "test" {
		t.Errorf("entry meta = %q/%q", log[0].IPAddress, log[0].UserAgent)
	}
}

// ----------------------------------------------------------------------------
// Record specific behaviour
// ----------------------------------------------------------------------------

func TestIPOCreatedAtFallback(t *testing.T) {
	tests := []struct {
		name string
		in   IPO
		want string
	}{
		{"explicit", IPO{Name: "A", CreatedAt: "2024-01-01", OpenDate: "2024-02-01"}, "2024-01-01"},
		{"open date", IPO{Name: "A", OpenDate: "2024-02-01", CloseDate: "2024-02-05"}, "2024-02-01"},
		{"close date", IPO{Name: "A", CloseDate: "2024-02-05"}, "2024-02-05"},
		{"today", IPO{Name: "A"}, Today()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prepareIPO(tt.in, nil)
			if err != nil {
				t.Fatalf("prepareIPO() error = %v", err)
			}
			if got.CreatedAt != tt.want {
				t.Errorf("CreatedAt = %q, want %q", got.CreatedAt, tt.want)
			}
			if got.CompanyName != "A" {
				t.Errorf("CompanyName = %q, want name fallback", got.CompanyName)
			}
			if got.Status != IPOUpcoming {
				t.Errorf("Status = %q, want upcoming", got.Status)
			}
		})
	}
}

func TestNotificationStatusOwnedBySender(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n, err := svc.Notifications.Create(ctx, Notification{Title: "Hi", Message: "m", Status: NotificationSent})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if n.Status != NotificationPending {
		t.Errorf("Status = %q, want pending", n.Status)
	}
	if n.Type != "push" {
		t.Errorf("Type = %q, want push", n.Type)
	}

	n, err = svc.Notifications.Update(ctx, n.ID, Notification{Title: "Hi", Message: "m2", Status: NotificationFailed})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if n.Status != NotificationPending {
		t.Errorf("Status after update = %q, want pending", n.Status)
	}
}

func TestToggleUserStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, _ := svc.Users.Create(ctx, User{Name: "Ravi", Email: "ravi@example.com"})
	if u.Role != RoleViewer {
		t.Errorf("Role = %q, want viewer", u.Role)
	}

	u, err := svc.ToggleUserStatus(ctx, u.ID)
	if err != nil {
		t.Fatalf("ToggleUserStatus() error = %v", err)
	}
	if u.Status != StatusBlocked {
		t.Errorf("Status = %q, want blocked", u.Status)
	}

	u, _ = svc.ToggleUserStatus(ctx, u.ID)
	if u.Status != StatusActive {
		t.Errorf("Status = %q, want active", u.Status)
	}

	if _, err := svc.ToggleUserStatus(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("ToggleUserStatus(missing) error = %v, want ErrNotFound", err)
	}
}

func TestImportRemoteIPO(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	remote := IPO{ID: "42", Name: "Acme Ltd", OpenDate: "2024-03-10", Status: IPOLive}

	first, err := svc.ImportRemoteIPO(ctx, remote)
	if err != nil {
		t.Fatalf("ImportRemoteIPO() error = %v", err)
	}
	if first.ID != "remote-42" {
		t.Errorf("ID = %q, want remote-42", first.ID)
	}
	if first.CreatedAt != "2024-03-10" {
		t.Errorf("CreatedAt = %q, want open date", first.CreatedAt)
	}

	remote.Status = IPOClosed
	second, err := svc.ImportRemoteIPO(ctx, remote)
	if err != nil {
		t.Fatalf("second ImportRemoteIPO() error = %v", err)
	}
	if second.Status != IPOClosed {
		t.Errorf("Status = %q, want closed", second.Status)
	}

	ipos, _ := svc.IPOs.List(ctx)
	if len(ipos) != 1 {
		t.Errorf("len(IPOs) = %d, want 1", len(ipos))
	}

	log, _ := svc.AuditLog(ctx)
	var summaries []string
	for _, e := range log {
		summaries = append(summaries, e.Summary)
	}
	joined := strings.Join(summaries, "|")
	if !strings.Contains(joined, "Imported IPO") || !strings.Contains(joined, "Refreshed IPO") {
		t.Errorf("audit summaries = %v", summaries)
	}

	if _, err := svc.ImportRemoteIPO(ctx, IPO{Name: "No id"}); err == nil {
		t.Error("ImportRemoteIPO() without id should fail")
	}
}

// ----------------------------------------------------------------------------
// Settings
// ----------------------------------------------------------------------------

func TestSettingsDefaults(t *testing.T) {
	svc := newTestService()

	got, err := svc.Settings(context.Background())
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("Settings() = %+v, want defaults", got)
	}
}

func TestSaveSettingsKeepsSecret(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	s := DefaultSettings()
	s.RazorpaySecret = "shh"
	if _, err := svc.SaveSettings(ctx, s); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{"empty keeps", "", "shh"},
		{"masked keeps", "********", "shh"},
		{"new replaces", "fresh", "fresh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := DefaultSettings()
			next.SiteName = "IPOG Admin"
			next.RazorpaySecret = tt.secret
			if _, err := svc.SaveSettings(ctx, next); err != nil {
				t.Fatalf("SaveSettings() error = %v", err)
			}
			got, _ := svc.Settings(ctx)
			if got.RazorpaySecret != tt.want {
				t.Errorf("RazorpaySecret = %q, want %q", got.RazorpaySecret, tt.want)
			}
			if got.SiteName != "IPOG Admin" {
				t.Errorf("SiteName = %q", got.SiteName)
			}
		})
	}

	bad := DefaultSettings()
	bad.SiteName = " "
	if _, err := svc.SaveSettings(ctx, bad); MapError(err).Code != "REC002" {
		t.Errorf("SaveSettings(blank name) error = %v, want REC002", err)
	}
}

func TestSettingsRedacted(t *testing.T) {
	s := Settings{RazorpaySecret: "abc"}
	if got := s.Redacted().RazorpaySecret; got != "********" {
		t.Errorf("Redacted() secret = %q", got)
	}
	if s.RazorpaySecret != "abc" {
		t.Error("Redacted() modified the receiver")
	}
	if got := (Settings{}).Redacted().RazorpaySecret; got != "" {
		t.Errorf("Redacted() of empty secret = %q, want empty", got)
	}
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Main Board", "main-board"},
		{"  IPO   News\tToday ", "ipo-news-today"},
		{"already-slug", "already-slug"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStoredSlicesNotShared(t *testing.T) {
	ctx := context.Background()
	repos := MemoryRepositories()

	plan, err := repos.Plans.Create(ctx, SubscriptionPlan{Name: "Pro", Features: []string{"Alerts", "Research"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	plan.Features[0] = "mutated"
	got, _ := repos.Plans.Get(ctx, plan.ID)
	got.Features[1] = "mutated"

	if again, _ := repos.Plans.Get(ctx, plan.ID); again.Features[0] != "Alerts" || again.Features[1] != "Research" {
		t.Errorf("Features = %v, want [Alerts Research]", again.Features)
	}

	ipo, err := repos.IPOs.Create(ctx, IPO{ID: "x", Name: "Acme", LeadManagers: []string{"Axis Capital"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	listed, _ := repos.IPOs.List(ctx)
	listed[0].LeadManagers[0] = "mutated"
	ipo.LeadManagers[0] = "mutated"

	if again, _ := repos.IPOs.Get(ctx, "x"); again.LeadManagers[0] != "Axis Capital" {
		t.Errorf("LeadManagers = %v, want [Axis Capital]", again.LeadManagers)
	}
}

func TestSplitFeatures(t *testing.T) {
	got := SplitFeatures("Alerts\r\n\n  Research  \nSupport\n")
	want := []string{"Alerts", "Research", "Support"}
	if len(got) != len(want) {
		t.Fatalf("SplitFeatures() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitFeatures()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
