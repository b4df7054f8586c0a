package core

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/JonMunkholm/ipoadmin/internal/store"
)

// Repositories bundles the storage of every resource.
type Repositories struct {
	Products      store.Repository[Product]
	IPOs          store.Repository[IPO]
	Categories    store.Repository[Category]
	Users         store.Repository[User]
	Plans         store.Repository[SubscriptionPlan]
	Transactions  store.Repository[Transaction]
	Content       store.Repository[Content]
	Notifications store.Repository[Notification]
	Settings      store.Repository[SettingsRecord]
	Audit         store.Repository[AuditEntry]
}

// MemoryRepositories returns empty in-memory repositories for every
// resource.
func MemoryRepositories() Repositories {
	return Repositories{
		Products:      store.NewMemory[Product](),
		IPOs:          store.NewMemory[IPO](),
		Categories:    store.NewMemory[Category](),
		Users:         store.NewMemory[User](),
		Plans:         store.NewMemory[SubscriptionPlan](),
		Transactions:  store.NewMemory[Transaction](),
		Content:       store.NewMemory[Content](),
		Notifications: store.NewMemory[Notification](),
		Settings:      store.NewMemory[SettingsRecord](),
		Audit:         store.NewMemory[AuditEntry](),
	}
}

// PostgresRepositories returns repositories sharing the records table of
// db. Each resource is stored under its section key.
func PostgresRepositories(db store.DBTX) Repositories {
	return Repositories{
		Products:      store.NewPostgres[Product](db, "products"),
		IPOs:          store.NewPostgres[IPO](db, "ipos"),
		Categories:    store.NewPostgres[Category](db, "categories"),
		Users:         store.NewPostgres[User](db, "users"),
		Plans:         store.NewPostgres[SubscriptionPlan](db, "subscriptions"),
		Transactions:  store.NewPostgres[Transaction](db, "orders"),
		Content:       store.NewPostgres[Content](db, "content"),
		Notifications: store.NewPostgres[Notification](db, "notifications"),
		Settings:      store.NewPostgres[SettingsRecord](db, "settings"),
		Audit:         store.NewPostgres[AuditEntry](db, "audit"),
	}
}

// Instrument wraps every repository of r so mutations are counted on meter.
func (r Repositories) Instrument(meter metric.Meter) Repositories {
	return Repositories{
		Products:      store.NewInstrumented(r.Products, "products", meter),
		IPOs:          store.NewInstrumented(r.IPOs, "ipos", meter),
		Categories:    store.NewInstrumented(r.Categories, "categories", meter),
		Users:         store.NewInstrumented(r.Users, "users", meter),
		Plans:         store.NewInstrumented(r.Plans, "subscriptions", meter),
		Transactions:  store.NewInstrumented(r.Transactions, "orders", meter),
		Content:       store.NewInstrumented(r.Content, "content", meter),
		Notifications: store.NewInstrumented(r.Notifications, "notifications", meter),
		Settings:      store.NewInstrumented(r.Settings, "settings", meter),
		Audit:         store.NewInstrumented(r.Audit, "audit", meter),
	}
}
