package core

import (
	"errors"
	"strings"

	"github.com/JonMunkholm/ipoadmin/internal/store"
)

func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}

func required(field, label, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, label+" is required")
	}
	return nil
}

func oneOf(value, fallback string, allowed ...string) string {
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return fallback
}

// keepCreated carries the creation date of prev, or stamps today on create.
func keepCreated(current string, prevCreated func() string, isCreate bool) string {
	if !isCreate {
		return prevCreated()
	}
	if current == "" {
		return Today()
	}
	return current
}

func prepareProduct(p Product, prev *Product) (Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := required("name", "Name", p.Name); err != nil {
		return p, err
	}
	if p.Price < 0 {
		return p, NewValidationError("price", "Price cannot be negative")
	}
	p.Status = oneOf(p.Status, StatusActive, StatusActive, StatusInactive)
	p.CreatedAt = keepCreated(p.CreatedAt, func() string { return prev.CreatedAt }, prev == nil)
	if p.PublishDate == "" {
		p.PublishDate = p.CreatedAt
	}
	return p, nil
}

func prepareIPO(i IPO, prev *IPO) (IPO, error) {
	i.Name = strings.TrimSpace(i.Name)
	if err := required("name", "Name", i.Name); err != nil {
		return i, err
	}
	if i.CompanyName == "" {
		i.CompanyName = i.Name
	}
	if i.PriceBand.Min > i.PriceBand.Max && i.PriceBand.Max != 0 {
		return i, NewValidationError("priceBand", "Minimum price cannot exceed maximum price")
	}
	i.Status = IPOStatus(oneOf(string(i.Status), string(IPOUpcoming),
		string(IPOUpcoming), string(IPOLive), string(IPOClosed)))

	if prev != nil {
		i.CreatedAt = prev.CreatedAt
	} else if i.CreatedAt == "" {
		switch {
		case i.OpenDate != "":
			i.CreatedAt = i.OpenDate
		case i.CloseDate != "":
			i.CreatedAt = i.CloseDate
		default:
			i.CreatedAt = Today()
		}
	}
	return i, nil
}

func prepareCategory(c Category, prev *Category) (Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := required("name", "Name", c.Name); err != nil {
		return c, err
	}
	if strings.TrimSpace(c.Slug) == "" {
		c.Slug = Slugify(c.Name)
	} else {
		c.Slug = Slugify(c.Slug)
	}
	c.CreatedAt = keepCreated(c.CreatedAt, func() string { return prev.CreatedAt }, prev == nil)
	return c, nil
}

func prepareUser(u User, prev *User) (User, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	if err := required("name", "Name", u.Name); err != nil {
		return u, err
	}
	if err := required("email", "Email", u.Email); err != nil {
		return u, err
	}
	if !strings.Contains(u.Email, "@") {
		return u, NewValidationError("email", "Email address is not valid")
	}
	u.Role = oneOf(u.Role, RoleViewer, RoleAdmin, RoleSubAdmin, RoleViewer)
	u.Status = oneOf(u.Status, StatusActive, StatusActive, StatusBlocked)
	u.CreatedAt = keepCreated(u.CreatedAt, func() string { return prev.CreatedAt }, prev == nil)
	if prev != nil && u.LastLogin == "" {
		u.LastLogin = prev.LastLogin
	}
	return u, nil
}

func preparePlan(p SubscriptionPlan, prev *SubscriptionPlan) (SubscriptionPlan, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := required("name", "Name", p.Name); err != nil {
		return p, err
	}
	if p.Duration < 0 {
		return p, NewValidationError("duration", "Duration cannot be negative")
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	p.Status = oneOf(p.Status, StatusActive, StatusActive, StatusInactive)
	p.CreatedAt = keepCreated(p.CreatedAt, func() string { return prev.CreatedAt }, prev == nil)
	return p, nil
}

func prepareTransaction(t Transaction, prev *Transaction) (Transaction, error) {
	if err := required("userName", "User", t.UserName); err != nil {
		return t, err
	}
	t.Status = oneOf(t.Status, TxPending, TxPending, TxCompleted, TxFailed, TxRefunded)
	t.CreatedAt = keepCreated(t.CreatedAt, func() string { return prev.CreatedAt }, prev == nil)
	return t, nil
}

func prepareContent(c Content, prev *Content) (Content, error) {
	c.Title = strings.TrimSpace(c.Title)
	if err := required("title", "Title", c.Title); err != nil {
		return c, err
	}
	if strings.TrimSpace(c.Slug) == "" {
		c.Slug = Slugify(c.Title)
	} else {
		c.Slug = Slugify(c.Slug)
	}
	c.Type = oneOf(c.Type, "blog", "blog", "page", "banner")
	c.Status = oneOf(c.Status, ContentDraft, ContentPublished, ContentDraft)
	c.CreatedAt = keepCreated(c.CreatedAt, func() string { return prev.CreatedAt }, prev == nil)
	c.UpdatedAt = Today()
	return c, nil
}

// prepareNotification queues new notifications as pending. Delivery status
// is owned by the sender, so updates keep the stored status.
func prepareNotification(n Notification, prev *Notification) (Notification, error) {
	n.Title = strings.TrimSpace(n.Title)
	if err := required("title", "Title", n.Title); err != nil {
		return n, err
	}
	if err := required("message", "Message", n.Message); err != nil {
		return n, err
	}
	n.Type = oneOf(n.Type, "push", "push", "email", "in-app")
	if prev == nil {
		n.Status = NotificationPending
	} else {
		n.Status = prev.Status
	}
	n.CreatedAt = keepCreated(n.CreatedAt, func() string { return prev.CreatedAt }, prev == nil)
	return n, nil
}
