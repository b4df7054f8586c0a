package core

import (
	"regexp"
	"slices"
	"strings"
	"time"
)

// Status values shared by several records.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBlocked  = "blocked"
)

// IPOStatus is the lifecycle state of an IPO.
type IPOStatus string

const (
	IPOUpcoming IPOStatus = "upcoming"
	IPOLive     IPOStatus = "live"
	IPOClosed   IPOStatus = "closed"
)

// Product is a paid research product.
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Category    string  `json:"category" yaml:"category"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description" yaml:"description"`
	Image       string  `json:"image,omitempty" yaml:"image,omitempty"`
	Status      string  `json:"status" yaml:"status"`
	PublishDate string  `json:"publishDate" yaml:"publishDate"`
	CreatedAt   string  `json:"createdAt" yaml:"createdAt"`
}

func (p Product) RecordID() string { return p.ID }

func (p Product) WithID(id string) Product {
	p.ID = id
	return p
}

// PriceBand is the issue price range of an IPO.
type PriceBand struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// IPO is the canonical IPO record used by every screen, whether it was
// entered locally or normalized from the remote listing.
type IPO struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	CompanyName  string    `json:"companyName" yaml:"companyName"`
	OpenDate     string    `json:"openDate" yaml:"openDate"`
	CloseDate    string    `json:"closeDate" yaml:"closeDate"`
	PriceBand    PriceBand `json:"priceBand" yaml:"priceBand"`
	LotSize      float64   `json:"lotSize" yaml:"lotSize"`
	Status       IPOStatus `json:"status" yaml:"status"`
	CreatedAt    string    `json:"createdAt" yaml:"createdAt"`
	IconURL      string    `json:"iconUrl,omitempty" yaml:"iconUrl,omitempty"`
	IPOType      string    `json:"ipoType,omitempty" yaml:"ipoType,omitempty"`
	Premium      string    `json:"premium,omitempty" yaml:"premium,omitempty"`
	IssueSize    string    `json:"issueSize,omitempty" yaml:"issueSize,omitempty"`
	LeadManagers []string  `json:"leadManagers,omitempty" yaml:"leadManagers,omitempty"`
}

func (i IPO) RecordID() string { return i.ID }

func (i IPO) WithID(id string) IPO {
	i.ID = id
	i.LeadManagers = slices.Clone(i.LeadManagers)
	return i
}

// Category groups content and products.
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
}

func (c Category) RecordID() string { return c.ID }

func (c Category) WithID(id string) Category {
	c.ID = id
	return c
}

// User roles.
const (
	RoleAdmin    = "admin"
	RoleSubAdmin = "sub-admin"
	RoleViewer   = "viewer"
)

// User is a platform account.
type User struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Role      string `json:"role" yaml:"role"`
	Status    string `json:"status" yaml:"status"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
	LastLogin string `json:"lastLogin,omitempty" yaml:"lastLogin,omitempty"`
}

func (u User) RecordID() string { return u.ID }

func (u User) WithID(id string) User {
	u.ID = id
	return u
}

// SubscriptionPlan is a recurring plan. Duration is in months.
type SubscriptionPlan struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Price     float64  `json:"price" yaml:"price"`
	Duration  int      `json:"duration" yaml:"duration"`
	Features  []string `json:"features" yaml:"features"`
	Status    string   `json:"status" yaml:"status"`
	CreatedAt string   `json:"createdAt" yaml:"createdAt"`
}

func (s SubscriptionPlan) RecordID() string { return s.ID }

func (s SubscriptionPlan) WithID(id string) SubscriptionPlan {
	s.ID = id
	s.Features = slices.Clone(s.Features)
	return s
}

// Transaction statuses.
const (
	TxPending   = "pending"
	TxCompleted = "completed"
	TxFailed    = "failed"
	TxRefunded  = "refunded"
)

// Transaction is a payment made by a user.
type Transaction struct {
	ID            string  `json:"id" yaml:"id"`
	UserID        string  `json:"userId" yaml:"userId"`
	UserName      string  `json:"userName" yaml:"userName"`
	ProductID     string  `json:"productId,omitempty" yaml:"productId,omitempty"`
	ProductName   string  `json:"productName,omitempty" yaml:"productName,omitempty"`
	Amount        float64 `json:"amount" yaml:"amount"`
	Status        string  `json:"status" yaml:"status"`
	PaymentMethod string  `json:"paymentMethod" yaml:"paymentMethod"`
	CreatedAt     string  `json:"createdAt" yaml:"createdAt"`
}

func (t Transaction) RecordID() string { return t.ID }

func (t Transaction) WithID(id string) Transaction {
	t.ID = id
	return t
}

// Content publication states.
const (
	ContentPublished = "published"
	ContentDraft     = "draft"
)

// Content is a blog post, static page or banner.
type Content struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Type      string `json:"type" yaml:"type"`
	Slug      string `json:"slug" yaml:"slug"`
	Body      string `json:"content" yaml:"content"`
	Status    string `json:"status" yaml:"status"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt string `json:"updatedAt" yaml:"updatedAt"`
}

func (c Content) RecordID() string { return c.ID }

func (c Content) WithID(id string) Content {
	c.ID = id
	return c
}

// Notification delivery states.
const (
	NotificationSent    = "sent"
	NotificationPending = "pending"
	NotificationFailed  = "failed"
)

// Notification is a message broadcast to users.
type Notification struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Message   string `json:"message" yaml:"message"`
	Type      string `json:"type" yaml:"type"`
	Status    string `json:"status" yaml:"status"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

func (n Notification) RecordID() string { return n.ID }

func (n Notification) WithID(id string) Notification {
	n.ID = id
	return n
}

// Settings are the site-wide configuration values edited on the settings
// screen.
type Settings struct {
	SiteName       string `json:"siteName" yaml:"siteName"`
	SiteURL        string `json:"siteUrl" yaml:"siteUrl"`
	Email          string `json:"email" yaml:"email"`
	Phone          string `json:"phone" yaml:"phone"`
	Currency       string `json:"currency" yaml:"currency"`
	Timezone       string `json:"timezone" yaml:"timezone"`
	PaymentGateway string `json:"paymentGateway" yaml:"paymentGateway"`
	RazorpayKey    string `json:"razorpayKey" yaml:"razorpayKey"`
	RazorpaySecret string `json:"razorpaySecret,omitempty" yaml:"razorpaySecret"`
	SEOTitle       string `json:"seoTitle" yaml:"seoTitle"`
	SEODescription string `json:"seoDescription" yaml:"seoDescription"`
	SEOKeywords    string `json:"seoKeywords" yaml:"seoKeywords"`
}

// DefaultSettings returns the values a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		SiteName:       "IPOG",
		SiteURL:        "https://www.ipog.com",
		Email:          "admin@ipog.com",
		Phone:          "+91 1234567890",
		Currency:       "INR",
		Timezone:       "Asia/Kolkata",
		PaymentGateway: "razorpay",
		SEOTitle:       "IPOG - IPO Management Platform",
		SEODescription: "Manage and invest in IPOs with IPOG",
		SEOKeywords:    "IPO, investment, stocks",
	}
}

// Redacted returns s with the payment secret masked.
func (s Settings) Redacted() Settings {
	if s.RazorpaySecret != "" {
		s.RazorpaySecret = "********"
	}
	return s
}

// SettingsRecord stores Settings in a repository under a fixed id.
type SettingsRecord struct {
	ID       string   `json:"id" yaml:"id"`
	Settings Settings `json:"settings" yaml:"settings"`
}

// SettingsID is the id of the single SettingsRecord.
const SettingsID = "site"

func (s SettingsRecord) RecordID() string { return s.ID }

func (s SettingsRecord) WithID(id string) SettingsRecord {
	s.ID = id
	return s
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slugify lower-cases s and replaces each whitespace run with "-".
func Slugify(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
}

// SplitFeatures splits newline-separated plan features, dropping blank
// lines.
func SplitFeatures(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Today returns the current date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format("2006-01-02")
}
