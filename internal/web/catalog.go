package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/format"
	"github.com/JonMunkholm/ipoadmin/internal/table"
	"github.com/JonMunkholm/ipoadmin/internal/view"
	tpl "github.com/JonMunkholm/ipoadmin/internal/web/templates"
)

var (
	activeStatuses  = []string{core.StatusActive, core.StatusInactive}
	ipoStatuses     = []string{string(core.IPOUpcoming), string(core.IPOLive), string(core.IPOClosed)}
	contentTypes    = []string{"blog", "page", "banner"}
	contentStatuses = []string{core.ContentDraft, core.ContentPublished}
	channelTypes    = []string{"push", "email", "in-app"}
)

// resources lists the CRUD screens in sidebar order.
func (s *Server) resources() []resourceRoutes {
	return []resourceRoutes{
		s.productResource(),
		s.ipoResource(),
		s.categoryResource(),
		s.userResource(),
		s.planResource(),
		s.transactionResource(),
		s.contentResource(),
		s.notificationResource(),
	}
}

func (s *Server) productResource() *resource[core.Product] {
	return newResource(s, s.service.Products, resourceConfig[core.Product]{
		caps: canAll,
		columns: []table.Column[core.Product]{
			table.Accessor("name", "Product Name", func(p core.Product) any { return p.Name }),
			table.Accessor("category", "Category", func(p core.Product) any { return p.Category }),
			money("price", "Price", func(p core.Product) float64 { return p.Price }),
			view.Status("status", "Status", func(p core.Product) string { return p.Status }),
			view.Date("publishDate", "Publish Date", func(p core.Product) string { return p.PublishDate }),
		},
		options: table.Options[core.Product]{SearchKey: "name", SearchPlaceholder: "Search products..."},
		fields: func(p core.Product) []tpl.Field {
			return []tpl.Field{
				{Name: "name", Label: "Product Name", Value: p.Name, Required: true},
				{Name: "category", Label: "Category", Value: p.Category},
				{Name: "price", Label: "Price (INR)", Type: tpl.InputNumber, Value: numberValue(p.Price)},
				{Name: "description", Label: "Description", Type: tpl.InputTextarea, Value: p.Description},
				{Name: "image", Label: "Image URL", Type: tpl.InputURL, Value: p.Image},
				{Name: "status", Label: "Status", Type: tpl.InputSelect, Value: p.Status, Options: activeStatuses},
				{Name: "publishDate", Label: "Publish Date", Type: tpl.InputDate, Value: p.PublishDate},
			}
		},
		parse: func(f url.Values) core.Product {
			return core.Product{
				Name:        formText(f, "name"),
				Category:    formText(f, "category"),
				Price:       formFloat(f, "price"),
				Description: formText(f, "description"),
				Image:       formText(f, "image"),
				Status:      formText(f, "status"),
				PublishDate: formText(f, "publishDate"),
			}
		},
		detail: func(p core.Product) []tpl.DetailRow {
			return []tpl.DetailRow{
				{Label: "Name", Value: p.Name},
				{Label: "Category", Value: orNA(p.Category)},
				{Label: "Price", Value: format.Currency(p.Price)},
				{Label: "Status", Value: p.Status},
				{Label: "Description", Value: orNA(p.Description)},
				{Label: "Publish Date", Value: format.Date(p.PublishDate)},
				{Label: "Created", Value: format.Date(p.CreatedAt)},
			}
		},
	})
}

func (s *Server) ipoResource() *resource[core.IPO] {
	return newResource(s, s.service.IPOs, resourceConfig[core.IPO]{
		caps:    canAll,
		columns: view.IPOColumns(),
		options: table.Options[core.IPO]{SearchKey: "name", SearchPlaceholder: "Search IPOs..."},
		fields: func(i core.IPO) []tpl.Field {
			return []tpl.Field{
				{Name: "name", Label: "IPO Name", Value: i.Name, Required: true},
				{Name: "companyName", Label: "Company Name", Value: i.CompanyName},
				{Name: "openDate", Label: "Open Date", Type: tpl.InputDate, Value: i.OpenDate},
				{Name: "closeDate", Label: "Close Date", Type: tpl.InputDate, Value: i.CloseDate},
				{Name: "minPrice", Label: "Minimum Price", Type: tpl.InputNumber, Value: numberValue(i.PriceBand.Min)},
				{Name: "maxPrice", Label: "Maximum Price", Type: tpl.InputNumber, Value: numberValue(i.PriceBand.Max)},
				{Name: "lotSize", Label: "Lot Size", Type: tpl.InputNumber, Value: numberValue(i.LotSize), Step: "1"},
				{Name: "status", Label: "Status", Type: tpl.InputSelect, Value: string(i.Status), Options: ipoStatuses},
				{Name: "ipoType", Label: "IPO Type", Value: i.IPOType},
				{Name: "issueSize", Label: "Issue Size", Value: i.IssueSize},
				{Name: "premium", Label: "Grey Market Premium", Value: i.Premium},
			}
		},
		parse: func(f url.Values) core.IPO {
			return core.IPO{
				Name:        formText(f, "name"),
				CompanyName: formText(f, "companyName"),
				OpenDate:    formText(f, "openDate"),
				CloseDate:   formText(f, "closeDate"),
				PriceBand:   core.PriceBand{Min: formFloat(f, "minPrice"), Max: formFloat(f, "maxPrice")},
				LotSize:     formFloat(f, "lotSize"),
				Status:      core.IPOStatus(formText(f, "status")),
				IPOType:     formText(f, "ipoType"),
				IssueSize:   formText(f, "issueSize"),
				Premium:     formText(f, "premium"),
			}
		},
		detail: ipoDetail,
	})
}

func ipoDetail(i core.IPO) []tpl.DetailRow {
	rows := []tpl.DetailRow{
		{Label: "Name", Value: i.Name},
		{Label: "Company", Value: orNA(i.CompanyName)},
		{Label: "Open Date", Value: format.Date(i.OpenDate)},
		{Label: "Close Date", Value: format.Date(i.CloseDate)},
		{Label: "Price Band", Value: view.PriceBand(i)},
		{Label: "Lot Size", Value: strconv.FormatFloat(i.LotSize, 'f', -1, 64)},
		{Label: "Status", Value: string(i.Status)},
		{Label: "IPO Type", Value: orNA(i.IPOType)},
		{Label: "Issue Size", Value: orNA(i.IssueSize)},
		{Label: "Premium", Value: orNA(i.Premium)},
	}
	if len(i.LeadManagers) > 0 {
		rows = append(rows, tpl.DetailRow{Label: "Lead Managers", Value: strings.Join(i.LeadManagers, ", ")})
	}
	return append(rows, tpl.DetailRow{Label: "Created", Value: format.Date(i.CreatedAt)})
}

func (s *Server) categoryResource() *resource[core.Category] {
	return newResource(s, s.service.Categories, resourceConfig[core.Category]{
		caps: canAll,
		columns: []table.Column[core.Category]{
			table.Accessor("name", "Name", func(c core.Category) any { return c.Name }),
			table.Accessor("slug", "Slug", func(c core.Category) any { return c.Slug }),
			table.Accessor("description", "Description", func(c core.Category) any { return c.Description }).NoSort(),
			view.Date("createdAt", "Created Date", func(c core.Category) string { return c.CreatedAt }),
		},
		options: table.Options[core.Category]{SearchKey: "name", SearchPlaceholder: "Search categories..."},
		fields: func(c core.Category) []tpl.Field {
			return []tpl.Field{
				{Name: "name", Label: "Name", Value: c.Name, Required: true},
				{Name: "slug", Label: "Slug", Value: c.Slug, Help: "Generated from the name when empty"},
				{Name: "description", Label: "Description", Type: tpl.InputTextarea, Value: c.Description},
			}
		},
		parse: func(f url.Values) core.Category {
			return core.Category{
				Name:        formText(f, "name"),
				Slug:        formText(f, "slug"),
				Description: formText(f, "description"),
			}
		},
		detail: func(c core.Category) []tpl.DetailRow {
			return []tpl.DetailRow{
				{Label: "Name", Value: c.Name},
				{Label: "Slug", Value: c.Slug},
				{Label: "Description", Value: orNA(c.Description)},
				{Label: "Created", Value: format.Date(c.CreatedAt)},
			}
		},
	})
}

// userResource has no forms: accounts are created by sign-up, and admins
// only block, unblock or delete them.
func (s *Server) userResource() *resource[core.User] {
	return newResource(s, s.service.Users, resourceConfig[core.User]{
		caps: canDelete,
		columns: []table.Column[core.User]{
			table.Accessor("name", "Name", func(u core.User) any { return u.Name }),
			table.Accessor("email", "Email", func(u core.User) any { return u.Email }),
			table.Accessor("role", "Role", func(u core.User) any { return u.Role }).
				WithRender(func(u core.User) table.Cell {
					tone := table.ToneMuted
					if u.Role == core.RoleAdmin {
						tone = table.ToneInfo
					}
					return table.Cell{Text: u.Role, Tone: tone}
				}),
			view.Status("status", "Status", func(u core.User) string { return u.Status }),
			view.Date("createdAt", "Created Date", func(u core.User) string { return u.CreatedAt }),
			view.Date("lastLogin", "Last Login", func(u core.User) string { return u.LastLogin }),
		},
		extra: []table.Action[core.User]{
			{
				Label:  "Block",
				Href:   func(u core.User) string { return "/users/" + url.PathEscape(u.ID) + "/toggle" },
				Method: http.MethodPost,
				Hidden: func(u core.User) bool { return u.Status != core.StatusActive },
			},
			{
				Label:  "Unblock",
				Href:   func(u core.User) string { return "/users/" + url.PathEscape(u.ID) + "/toggle" },
				Method: http.MethodPost,
				Hidden: func(u core.User) bool { return u.Status == core.StatusActive },
			},
		},
		options: table.Options[core.User]{SearchKey: "name", SearchPlaceholder: "Search users..."},
		detail: func(u core.User) []tpl.DetailRow {
			return []tpl.DetailRow{
				{Label: "Name", Value: u.Name},
				{Label: "Email", Value: u.Email},
				{Label: "Role", Value: u.Role},
				{Label: "Status", Value: u.Status},
				{Label: "Created", Value: format.Date(u.CreatedAt)},
				{Label: "Last Login", Value: format.Date(u.LastLogin)},
			}
		},
	})
}

func (s *Server) planResource() *resource[core.SubscriptionPlan] {
	return newResource(s, s.service.Plans, resourceConfig[core.SubscriptionPlan]{
		caps: canAll,
		columns: []table.Column[core.SubscriptionPlan]{
			table.Accessor("name", "Plan Name", func(p core.SubscriptionPlan) any { return p.Name }),
			money("price", "Price", func(p core.SubscriptionPlan) float64 { return p.Price }),
			table.Accessor("duration", "Duration", func(p core.SubscriptionPlan) any { return p.Duration }).
				WithRender(func(p core.SubscriptionPlan) table.Cell {
					return table.Cell{Text: plural(p.Duration, "month")}
				}),
			table.Computed("features", "Features", func(p core.SubscriptionPlan) table.Cell {
				return table.Cell{Text: plural(len(p.Features), "feature")}
			}),
			view.Status("status", "Status", func(p core.SubscriptionPlan) string { return p.Status }),
			view.Date("createdAt", "Created Date", func(p core.SubscriptionPlan) string { return p.CreatedAt }),
		},
		options: table.Options[core.SubscriptionPlan]{SearchKey: "name", SearchPlaceholder: "Search plans..."},
		fields: func(p core.SubscriptionPlan) []tpl.Field {
			duration := ""
			if p.Duration != 0 {
				duration = strconv.Itoa(p.Duration)
			}
			return []tpl.Field{
				{Name: "name", Label: "Plan Name", Value: p.Name, Required: true},
				{Name: "price", Label: "Price (INR)", Type: tpl.InputNumber, Value: numberValue(p.Price)},
				{Name: "duration", Label: "Duration (months)", Type: tpl.InputNumber, Value: duration, Step: "1"},
				{Name: "features", Label: "Features", Type: tpl.InputTextarea, Value: strings.Join(p.Features, "\n"), Help: "One feature per line"},
				{Name: "status", Label: "Status", Type: tpl.InputSelect, Value: p.Status, Options: activeStatuses},
			}
		},
		parse: func(f url.Values) core.SubscriptionPlan {
			return core.SubscriptionPlan{
				Name:     formText(f, "name"),
				Price:    formFloat(f, "price"),
				Duration: formInt(f, "duration"),
				Features: core.SplitFeatures(f.Get("features")),
				Status:   formText(f, "status"),
			}
		},
		detail: func(p core.SubscriptionPlan) []tpl.DetailRow {
			return []tpl.DetailRow{
				{Label: "Name", Value: p.Name},
				{Label: "Price", Value: format.Currency(p.Price)},
				{Label: "Duration", Value: plural(p.Duration, "month")},
				{Label: "Features", Value: strings.Join(p.Features, "; ")},
				{Label: "Status", Value: p.Status},
				{Label: "Created", Value: format.Date(p.CreatedAt)},
			}
		},
	})
}

// transactionResource is view-only: payments come from the gateway.
func (s *Server) transactionResource() *resource[core.Transaction] {
	return newResource(s, s.service.Transactions, resourceConfig[core.Transaction]{
		columns: transactionColumns(),
		options: table.Options[core.Transaction]{SearchKey: "userName", SearchPlaceholder: "Search transactions..."},
		detail: func(tx core.Transaction) []tpl.DetailRow {
			return []tpl.DetailRow{
				{Label: "Transaction ID", Value: tx.ID},
				{Label: "User", Value: fmt.Sprintf("%s (%s)", tx.UserName, orNA(tx.UserID))},
				{Label: "Product", Value: orNA(tx.ProductName)},
				{Label: "Amount", Value: format.Currency(tx.Amount)},
				{Label: "Status", Value: tx.Status},
				{Label: "Payment Method", Value: orNA(tx.PaymentMethod)},
				{Label: "Date", Value: format.Date(tx.CreatedAt)},
			}
		},
	})
}

func (s *Server) contentResource() *resource[core.Content] {
	return newResource(s, s.service.Content, resourceConfig[core.Content]{
		caps: canAll,
		columns: []table.Column[core.Content]{
			table.Accessor("title", "Title", func(c core.Content) any { return c.Title }),
			table.Accessor("type", "Type", func(c core.Content) any { return c.Type }).
				WithRender(func(c core.Content) table.Cell { return table.Cell{Text: c.Type, Tone: table.ToneInfo} }),
			table.Accessor("slug", "Slug", func(c core.Content) any { return c.Slug }),
			view.Status("status", "Status", func(c core.Content) string { return c.Status }),
			view.Date("createdAt", "Created Date", func(c core.Content) string { return c.CreatedAt }),
		},
		options: table.Options[core.Content]{SearchKey: "title", SearchPlaceholder: "Search content..."},
		fields: func(c core.Content) []tpl.Field {
			return []tpl.Field{
				{Name: "title", Label: "Title", Value: c.Title, Required: true},
				{Name: "type", Label: "Type", Type: tpl.InputSelect, Value: c.Type, Options: contentTypes},
				{Name: "slug", Label: "Slug", Value: c.Slug, Help: "Generated from the title when empty"},
				{Name: "content", Label: "Content", Type: tpl.InputTextarea, Value: c.Body},
				{Name: "status", Label: "Status", Type: tpl.InputSelect, Value: c.Status, Options: contentStatuses},
			}
		},
		parse: func(f url.Values) core.Content {
			return core.Content{
				Title:  formText(f, "title"),
				Type:   formText(f, "type"),
				Slug:   formText(f, "slug"),
				Body:   f.Get("content"),
				Status: formText(f, "status"),
			}
		},
		detail: func(c core.Content) []tpl.DetailRow {
			return []tpl.DetailRow{
				{Label: "Title", Value: c.Title},
				{Label: "Type", Value: c.Type},
				{Label: "Slug", Value: c.Slug},
				{Label: "Status", Value: c.Status},
				{Label: "Content", Value: orNA(c.Body)},
				{Label: "Created", Value: format.Date(c.CreatedAt)},
				{Label: "Updated", Value: format.Date(c.UpdatedAt)},
			}
		},
	})
}

// notificationResource can create and delete. Sent messages are not
// edited; delivery status is set by the sender.
func (s *Server) notificationResource() *resource[core.Notification] {
	return newResource(s, s.service.Notifications, resourceConfig[core.Notification]{
		caps: canCreate | canDelete,
		columns: []table.Column[core.Notification]{
			table.Accessor("title", "Title", func(n core.Notification) any { return n.Title }),
			table.Accessor("message", "Message", func(n core.Notification) any { return n.Message }).
				WithRender(func(n core.Notification) table.Cell { return table.Cell{Text: truncate(n.Message, 50)} }).
				NoSort(),
			table.Accessor("type", "Type", func(n core.Notification) any { return n.Type }).
				WithRender(func(n core.Notification) table.Cell { return table.Cell{Text: n.Type, Tone: table.ToneInfo} }),
			view.Status("status", "Status", func(n core.Notification) string { return n.Status }),
			view.Date("createdAt", "Created Date", func(n core.Notification) string { return n.CreatedAt }),
		},
		options: table.Options[core.Notification]{SearchKey: "title", SearchPlaceholder: "Search notifications..."},
		fields: func(n core.Notification) []tpl.Field {
			return []tpl.Field{
				{Name: "title", Label: "Title", Value: n.Title, Required: true},
				{Name: "message", Label: "Message", Type: tpl.InputTextarea, Value: n.Message, Required: true},
				{Name: "type", Label: "Channel", Type: tpl.InputSelect, Value: n.Type, Options: channelTypes},
			}
		},
		parse: func(f url.Values) core.Notification {
			return core.Notification{
				Title:   formText(f, "title"),
				Message: formText(f, "message"),
				Type:    formText(f, "type"),
			}
		},
		detail: func(n core.Notification) []tpl.DetailRow {
			return []tpl.DetailRow{
				{Label: "Title", Value: n.Title},
				{Label: "Message", Value: n.Message},
				{Label: "Channel", Value: n.Type},
				{Label: "Status", Value: n.Status},
				{Label: "Created", Value: format.Date(n.CreatedAt)},
			}
		},
	})
}

func transactionColumns() []table.Column[core.Transaction] {
	return []table.Column[core.Transaction]{
		table.Accessor("id", "Transaction ID", func(tx core.Transaction) any { return tx.ID }),
		table.Accessor("userName", "User", func(tx core.Transaction) any { return tx.UserName }),
		table.Accessor("productName", "Product", func(tx core.Transaction) any { return orNA(tx.ProductName) }),
		money("amount", "Amount", func(tx core.Transaction) float64 { return tx.Amount }),
		view.Status("status", "Status", func(tx core.Transaction) string { return tx.Status }),
		table.Accessor("paymentMethod", "Payment Method", func(tx core.Transaction) any { return tx.PaymentMethod }),
		view.Date("createdAt", "Date", func(tx core.Transaction) string { return tx.CreatedAt }),
	}
}
