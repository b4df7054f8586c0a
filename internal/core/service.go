package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/JonMunkholm/ipoadmin/internal/logging"
	"github.com/JonMunkholm/ipoadmin/internal/store"
)

// Resource is the audited CRUD surface for one record type.
type Resource[T store.Record[T]] struct {
	key   string
	label string
	repo  store.Repository[T]
	audit *AuditTrail

	// prepare fills defaults and rejects invalid input. prev is nil on
	// create.
	prepare func(rec T, prev *T) (T, error)

	// describe names a record in audit summaries.
	describe func(T) string
}

// Key returns the section key of the resource, e.g. "products".
func (r *Resource[T]) Key() string { return r.key }

// Label returns the singular display name, e.g. "Product".
func (r *Resource[T]) Label() string { return r.label }

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	recs, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.key, err)
	}
	return recs, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	rec, err := r.repo.Get(ctx, id)
	if err != nil {
		return rec, fmt.Errorf("get %s: %w", r.key, err)
	}
	return rec, nil
}

// Create validates rec, stores it and audits the creation.
func (r *Resource[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T

	rec, err := r.prepare(rec, nil)
	if err != nil {
		return zero, err
	}

	saved, err := r.repo.Create(ctx, rec)
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", r.key, err)
	}

	r.record(ctx, ActionCreate, saved, "Created %s %s")
	return saved, nil
}

// Update validates rec against the stored record with id and replaces it.
func (r *Resource[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	var zero T

	prev, err := r.repo.Get(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", r.key, err)
	}

	rec, err = r.prepare(rec, &prev)
	if err != nil {
		return zero, err
	}

	saved, err := r.repo.Update(ctx, id, rec)
	if err != nil {
		return zero, fmt.Errorf("update %s: %w", r.key, err)
	}

	r.record(ctx, ActionUpdate, saved, "Updated %s %s")
	return saved, nil
}

// Delete removes the record with id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	prev, err := r.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.key, err)
	}
	if err := r.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", r.key, err)
	}

	r.record(ctx, ActionDelete, prev, "Deleted %s %s")
	return nil
}

// put stores rec without running prepare. It creates when id is unknown.
func (r *Resource[T]) put(ctx context.Context, rec T) (T, bool, error) {
	if _, err := r.repo.Get(ctx, rec.RecordID()); err == nil {
		saved, err := r.repo.Update(ctx, rec.RecordID(), rec)
		return saved, false, err
	}
	saved, err := r.repo.Create(ctx, rec)
	return saved, true, err
}

func (r *Resource[T]) record(ctx context.Context, action AuditAction, rec T, format string) {
	if r.audit == nil {
		return
	}
	summary := fmt.Sprintf(format, strings.ToLower(r.label), quoted(r.describe(rec)))
	// The mutation already happened; the audit failure is logged by Record.
	_, _ = r.audit.Record(ctx, action, r.key, rec.RecordID(), summary)
}

func quoted(s string) string {
	if s == "" {
		return ""
	}
	return fmt.Sprintf("%q", s)
}

// Service provides every operation of the admin dashboard.
type Service struct {
	Products      *Resource[Product]
	IPOs          *Resource[IPO]
	Categories    *Resource[Category]
	Users         *Resource[User]
	Plans         *Resource[SubscriptionPlan]
	Transactions  *Resource[Transaction]
	Content       *Resource[Content]
	Notifications *Resource[Notification]

	settings   store.Repository[SettingsRecord]
	settingsMu sync.Mutex
	audit      *AuditTrail
}

// NewService wires a resource around each repository.
func NewService(repos Repositories) *Service {
	audit := NewAuditTrail(repos.Audit)

	return &Service{
		Products: &Resource[Product]{
			key: "products", label: "Product", repo: repos.Products, audit: audit,
			prepare: prepareProduct, describe: func(p Product) string { return p.Name },
		},
		IPOs: &Resource[IPO]{
			key: "ipos", label: "IPO", repo: repos.IPOs, audit: audit,
			prepare: prepareIPO, describe: func(i IPO) string { return i.Name },
		},
		Categories: &Resource[Category]{
			key: "categories", label: "Category", repo: repos.Categories, audit: audit,
			prepare: prepareCategory, describe: func(c Category) string { return c.Name },
		},
		Users: &Resource[User]{
			key: "users", label: "User", repo: repos.Users, audit: audit,
			prepare: prepareUser, describe: func(u User) string { return u.Email },
		},
		Plans: &Resource[SubscriptionPlan]{
			key: "subscriptions", label: "Plan", repo: repos.Plans, audit: audit,
			prepare: preparePlan, describe: func(p SubscriptionPlan) string { return p.Name },
		},
		Transactions: &Resource[Transaction]{
			key: "orders", label: "Transaction", repo: repos.Transactions, audit: audit,
			prepare: prepareTransaction, describe: func(t Transaction) string { return t.ID },
		},
		Content: &Resource[Content]{
			key: "content", label: "Content", repo: repos.Content, audit: audit,
			prepare: prepareContent, describe: func(c Content) string { return c.Title },
		},
		Notifications: &Resource[Notification]{
			key: "notifications", label: "Notification", repo: repos.Notifications, audit: audit,
			prepare: prepareNotification, describe: func(n Notification) string { return n.Title },
		},
		settings: repos.Settings,
		audit:    audit,
	}
}

// ToggleUserStatus flips a user between active and blocked.
func (s *Service) ToggleUserStatus(ctx context.Context, id string) (User, error) {
	u, err := s.Users.repo.Get(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("toggle user status: %w", err)
	}

	if u.Status == StatusActive {
		u.Status = StatusBlocked
	} else {
		u.Status = StatusActive
	}

	saved, err := s.Users.repo.Update(ctx, id, u)
	if err != nil {
		return User{}, fmt.Errorf("toggle user status: %w", err)
	}

	summary := fmt.Sprintf("Set user %q to %s", saved.Email, saved.Status)
	_, _ = s.audit.Record(ctx, ActionToggleStatus, s.Users.key, saved.ID, summary)
	return saved, nil
}

// ImportRemoteIPO copies a normalized remote IPO into the local store under
// the id "remote-<id>". Importing the same IPO again refreshes the copy.
func (s *Service) ImportRemoteIPO(ctx context.Context, ipo IPO) (IPO, error) {
	if strings.TrimSpace(ipo.ID) == "" {
		return IPO{}, NewValidationError("id", "Remote IPO has no id")
	}
	if !strings.HasPrefix(ipo.ID, "remote-") {
		ipo.ID = "remote-" + ipo.ID
	}

	ipo, err := prepareIPO(ipo, nil)
	if err != nil {
		return IPO{}, err
	}

	saved, created, err := s.IPOs.put(ctx, ipo)
	if err != nil {
		return IPO{}, fmt.Errorf("import ipo: %w", err)
	}

	verb := "Refreshed"
	if created {
		verb = "Imported"
	}
	summary := fmt.Sprintf("%s IPO %q from the remote listing", verb, saved.Name)
	_, _ = s.audit.Record(ctx, ActionImport, s.IPOs.key, saved.ID, summary)

	logging.FromContext(ctx).Info("remote ipo imported", "id", saved.ID, "created", created)
	return saved, nil
}

// Settings returns the stored settings, or the defaults when none are saved.
func (s *Service) Settings(ctx context.Context) (Settings, error) {
	rec, err := s.settings.Get(ctx, SettingsID)
	if err != nil {
		if isNotFound(err) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return rec.Settings, nil
}

// SaveSettings replaces the stored settings. An empty payment secret keeps
// the current one so the masked form field does not erase it.
func (s *Service) SaveSettings(ctx context.Context, next Settings) (Settings, error) {
	if strings.TrimSpace(next.SiteName) == "" {
		return Settings{}, NewValidationError("siteName", "Site name is required")
	}

	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	current, err := s.Settings(ctx)
	if err != nil {
		return Settings{}, err
	}
	if next.RazorpaySecret == "" || next.RazorpaySecret == current.Redacted().RazorpaySecret {
		next.RazorpaySecret = current.RazorpaySecret
	}

	rec := SettingsRecord{ID: SettingsID, Settings: next}
	if _, _, err := putSettings(ctx, s.settings, rec); err != nil {
		return Settings{}, fmt.Errorf("save settings: %w", err)
	}

	_, _ = s.audit.Record(ctx, ActionSettingsUpdate, "settings", SettingsID, "Updated site settings")
	return next, nil
}

func putSettings(ctx context.Context, repo store.Repository[SettingsRecord], rec SettingsRecord) (SettingsRecord, bool, error) {
	r := &Resource[SettingsRecord]{key: "settings", repo: repo}
	return r.put(ctx, rec)
}

// AuditLog returns every audit entry, newest first.
func (s *Service) AuditLog(ctx context.Context) ([]AuditEntry, error) {
	return s.audit.List(ctx)
}

// Audit exposes the trail for background maintenance.
func (s *Service) Audit() *AuditTrail {
	return s.audit
}
