package core

import (
	"fmt"
	"sort"
	"sync"
)

// Section is one screen of the admin sidebar.
type Section struct {
	Key         string // URL segment and lookup key: "ipos"
	Label       string // Sidebar label: "IPOs"
	Path        string // Route: "/ipos"
	Description string // Page subtitle
	Order       int    // Sidebar position, ascending
}

var (
	registry   = make(map[string]Section)
	registryMu sync.RWMutex
)

// Register adds a section to the registry.
// Panics if a section with the same key is already registered.
func Register(s Section) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[s.Key]; exists {
		panic(fmt.Sprintf("section already registered: %s", s.Key))
	}
	if s.Path == "" {
		s.Path = "/" + s.Key
	}

	registry[s.Key] = s
}

// Get returns a section by key.
// Returns false if not found.
func Get(key string) (Section, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	s, ok := registry[key]
	return s, ok
}

// All returns every registered section in sidebar order.
func All() []Section {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Section, 0, len(registry))
	for _, s := range registry {
		result = append(result, s)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Key < result[j].Key
	})

	return result
}

// Sections is All with the built-in sections registered first.
func Sections() []Section {
	registerDefaults()
	return All()
}

// Clear removes all registered sections.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Section)
	defaultsOnce = sync.Once{}
}

var defaultsOnce sync.Once

var defaultSections = []Section{
	{Key: "dashboard", Label: "Dashboard", Path: "/", Description: "Overview of products, IPOs, users and revenue"},
	{Key: "products", Label: "Products", Description: "Manage research products and reports"},
	{Key: "ipos", Label: "IPOs", Description: "Manage IPO listings"},
	{Key: "categories", Label: "Categories", Description: "Organise products and content"},
	{Key: "users", Label: "Users", Description: "Manage platform users and their access"},
	{Key: "subscriptions", Label: "Subscriptions", Description: "Manage subscription plans"},
	{Key: "orders", Label: "Orders & Transactions", Description: "Payments made by users"},
	{Key: "content", Label: "Content", Description: "Blogs, pages and banners"},
	{Key: "notifications", Label: "Notifications", Description: "Push, email and in-app messages"},
	{Key: "reports", Label: "Reports", Description: "Sales, IPO performance and user activity"},
	{Key: "settings", Label: "Settings", Description: "Site, payment and SEO configuration"},
	{Key: "audit-log", Label: "Audit Log", Description: "Every change made through the dashboard"},
}

func registerDefaults() {
	defaultsOnce.Do(func() {
		for i, s := range defaultSections {
			if _, exists := Get(s.Key); exists {
				continue
			}
			s.Order = (i + 1) * 10
			Register(s)
		}
	})
}
