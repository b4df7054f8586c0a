// Package seed holds the sample records a fresh dashboard starts with.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/store"
)

//go:embed data.yaml
var raw []byte

// Data is the content of data.yaml.
type Data struct {
	Products      []core.Product          `yaml:"products"`
	IPOs          []core.IPO              `yaml:"ipos"`
	Categories    []core.Category         `yaml:"categories"`
	Users         []core.User             `yaml:"users"`
	Plans         []core.SubscriptionPlan `yaml:"plans"`
	Transactions  []core.Transaction      `yaml:"transactions"`
	Content       []core.Content          `yaml:"content"`
	Notifications []core.Notification     `yaml:"notifications"`
	Settings      core.Settings           `yaml:"settings"`
}

// Load decodes the embedded sample data. Unknown keys are rejected so a
// typo in data.yaml fails loudly.
func Load() (*Data, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var d Data
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	return &d, nil
}

// Apply stores d into every repository that is still empty and returns how
// many records went into each resource. Seeding bypasses the audit log.
func Apply(ctx context.Context, repos core.Repositories, d *Data) (map[string]int, error) {
	counts := make(map[string]int)

	steps := []struct {
		key string
		run func() (int, error)
	}{
		{"products", func() (int, error) { return store.SeedIfEmpty(ctx, repos.Products, d.Products) }},
		{"ipos", func() (int, error) { return store.SeedIfEmpty(ctx, repos.IPOs, d.IPOs) }},
		{"categories", func() (int, error) { return store.SeedIfEmpty(ctx, repos.Categories, d.Categories) }},
		{"users", func() (int, error) { return store.SeedIfEmpty(ctx, repos.Users, d.Users) }},
		{"subscriptions", func() (int, error) { return store.SeedIfEmpty(ctx, repos.Plans, d.Plans) }},
		{"orders", func() (int, error) { return store.SeedIfEmpty(ctx, repos.Transactions, d.Transactions) }},
		{"content", func() (int, error) { return store.SeedIfEmpty(ctx, repos.Content, d.Content) }},
		{"notifications", func() (int, error) { return store.SeedIfEmpty(ctx, repos.Notifications, d.Notifications) }},
		{"settings", func() (int, error) {
			rec := core.SettingsRecord{ID: core.SettingsID, Settings: d.Settings}
			return store.SeedIfEmpty(ctx, repos.Settings, []core.SettingsRecord{rec})
		}},
	}

	for _, step := range steps {
		n, err := step.run()
		if err != nil {
			return counts, fmt.Errorf("seed %s: %w", step.key, err)
		}
		counts[step.key] = n
	}

	slog.Info("seed data applied", "counts", counts)
	return counts, nil
}
