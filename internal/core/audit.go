package core

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/ipoadmin/internal/logging"
	"github.com/JonMunkholm/ipoadmin/internal/store"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionCreate         AuditAction = "create"
	ActionUpdate         AuditAction = "update"
	ActionDelete         AuditAction = "delete"
	ActionToggleStatus   AuditAction = "toggle_status"
	ActionImport         AuditAction = "import"
	ActionSettingsUpdate AuditAction = "settings_update"
	ActionPrune          AuditAction = "prune"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow      AuditSeverity = "low"
	SeverityMedium   AuditSeverity = "medium"
	SeverityHigh     AuditSeverity = "high"
	SeverityCritical AuditSeverity = "critical"
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID        string        `json:"id"`
	Action    AuditAction   `json:"action"`
	Severity  AuditSeverity `json:"severity"`
	Resource  string        `json:"resource"`
	Target    string        `json:"recordId,omitempty"`
	Summary   string        `json:"summary"`
	IPAddress string        `json:"ipAddress,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

func (e AuditEntry) RecordID() string { return e.ID }

func (e AuditEntry) WithID(id string) AuditEntry {
	e.ID = id
	return e
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionDelete:
		return SeverityHigh
	case ActionPrune:
		return SeverityCritical
	case ActionCreate, ActionImport:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// AuditTrail records and reads audit entries.
type AuditTrail struct {
	repo store.Repository[AuditEntry]
	now  func() time.Time
}

// NewAuditTrail returns a trail stored in repo.
func NewAuditTrail(repo store.Repository[AuditEntry]) *AuditTrail {
	return &AuditTrail{repo: repo, now: time.Now}
}

// Record stores one entry. Request metadata is taken from ctx. A failure is
// logged and returned but never undoes the audited mutation.
func (a *AuditTrail) Record(ctx context.Context, action AuditAction, resource, recordID, summary string) (AuditEntry, error) {
	meta := RequestMetaFrom(ctx)
	entry := AuditEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Severity:  determineSeverity(action),
		Resource:  resource,
		Target:    recordID,
		Summary:   summary,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		CreatedAt: a.now().UTC(),
	}

	saved, err := a.repo.Create(ctx, entry)
	if err != nil {
		logging.FromContext(ctx).Error("audit write failed",
			slog.String("action", string(action)),
			slog.String("resource", resource),
			slog.String("error", err.Error()),
		)
		return AuditEntry{}, fmt.Errorf("record audit entry: %w", err)
	}
	return saved, nil
}

// List returns every entry, newest first.
func (a *AuditTrail) List(ctx context.Context) ([]AuditEntry, error) {
	entries, err := a.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// Prune deletes entries older than cutoff and returns how many went.
func (a *AuditTrail) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := a.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list audit log: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if !e.CreatedAt.Before(cutoff) {
			continue
		}
		if err := a.repo.Delete(ctx, e.ID); err != nil {
			return removed, fmt.Errorf("delete audit entry %s: %w", e.ID, err)
		}
		removed++
	}
	return removed, nil
}
