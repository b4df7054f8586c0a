package templates

import (
	"fmt"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/format"
)

// Stat is one headline number.
type Stat struct {
	Label string
	Value string
	Href  string
}

// DashboardStats renders the headline cards.
func DashboardStats(s core.DashboardStats) templ.Component {
	return Stats([]Stat{
		{Label: "Total Products", Value: format.Number(s.TotalProducts), Href: "/products"},
		{Label: "Active IPOs", Value: format.Number(s.ActiveIPOs), Href: "/ipos"},
		{Label: "Total Users", Value: format.Number(s.TotalUsers), Href: "/users"},
		{Label: "Revenue", Value: format.Currency(s.Revenue), Href: "/orders"},
		{Label: "Subscriptions", Value: format.Number(s.SubscriptionCount), Href: "/subscriptions"},
	})
}

// Stats renders a row of stat cards.
func Stats(stats []Stat) templ.Component {
	return component(func(h *html) {
		h.raw("<div class=\"stats\">")
		for _, s := range stats {
			h.raw("<div class=\"card\"><div>")
			if s.Href != "" {
				h.raw("<a")
				h.href(s.Href)
				h.raw(">")
				h.text(s.Label)
				h.raw("</a>")
			} else {
				h.text(s.Label)
			}
			h.raw("</div><div class=\"value\">")
			h.text(s.Value)
			h.raw("</div></div>")
		}
		h.raw("</div>")
	})
}

// Report renders the reports screen.
func Report(r core.Report) templ.Component {
	return component(func(h *html) {
		h.render(Stats([]Stat{
			{Label: "Total Revenue", Value: format.Currency(r.TotalRevenue)},
			{Label: "Active Users", Value: format.Number(r.UserActivity.Active)},
			{Label: "Blocked Users", Value: format.Number(r.UserActivity.Blocked)},
		}))

		sales := make([][]string, 0, len(r.MonthlySales))
		for _, m := range r.MonthlySales {
			sales = append(sales, []string{m.Label, format.Number(m.Orders), format.Currency(m.Revenue)})
		}
		h.render(Card("Sales by Month", simpleTable([]string{"Month", "Orders", "Revenue"}, sales)))

		statuses := make([][]string, 0, len(r.IPOStatus))
		for _, s := range r.IPOStatus {
			statuses = append(statuses, []string{string(s.Status), format.Number(s.Count)})
		}
		h.render(Card("IPO Status", simpleTable([]string{"Status", "IPOs"}, statuses)))

		top := make([][]string, 0, len(r.TopProducts))
		for i, p := range r.TopProducts {
			top = append(top, []string{fmt.Sprint(i + 1), p.Name, format.Number(p.Orders), format.Currency(p.Revenue)})
		}
		h.render(Card("Top Products", simpleTable([]string{"#", "Product", "Orders", "Revenue"}, top)))
	})
}

// simpleTable renders static rows without search, sort or paging.
func simpleTable(headers []string, rows [][]string) templ.Component {
	return component(func(h *html) {
		h.raw("<table><thead><tr>")
		for _, hd := range headers {
			h.raw("<th>")
			h.text(hd)
			h.raw("</th>")
		}
		h.raw("</tr></thead><tbody>")
		if len(rows) == 0 {
			h.raw("<tr><td class=\"empty\"")
			h.attr("colspan", fmt.Sprint(len(headers)))
			h.raw(">No data available</td></tr>")
		}
		for _, row := range rows {
			h.raw("<tr>")
			for _, c := range row {
				h.raw("<td>")
				h.text(c)
				h.raw("</td>")
			}
			h.raw("</tr>")
		}
		h.raw("</tbody></table>")
	})
}

// Query keys of the remote listing's page and limit. They differ from the
// keys table.ParseState reads, so the grid's own state survives alongside.
const (
	RemotePageParam  = "rpage"
	RemoteLimitParam = "rlimit"
)

// RemotePager links the pages of the remote IPO listing.
type RemotePager struct {
	Base       string
	Page       int
	Limit      int
	TotalPages int
	Total      int
	HasPrev    bool
	HasNext    bool
}

func (p RemotePager) href(page int) string {
	return fmt.Sprintf("%s?%s=%d&%s=%d", p.Base, RemotePageParam, page, RemoteLimitParam, p.Limit)
}

// Pager renders the remote listing's page links.
func Pager(p RemotePager) templ.Component {
	return component(func(h *html) {
		h.raw("<div class=\"pager\"><span>")
		h.text(fmt.Sprintf("%d IPOs in the remote listing", p.Total))
		h.raw("</span><span>")
		pageLink(h, "Previous", p.href(p.Page-1), p.HasPrev)
		h.text(fmt.Sprintf(" Page %d of %d ", p.Page, max(p.TotalPages, 1)))
		pageLink(h, "Next", p.href(p.Page+1), p.HasNext)
		h.raw("</span></div>")
	})
}
