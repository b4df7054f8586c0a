// Package view holds the column definitions shared by the dashboard and
// the ipoctl command line.
package view

import (
	"cmp"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/format"
	"github.com/JonMunkholm/ipoadmin/internal/table"
)

// StatusTone maps a record status to its badge tone. Unknown statuses are
// informational.
func StatusTone(status string) table.Tone {
	switch status {
	case "active", "published", "completed", "sent", string(core.IPOLive):
		return table.ToneSuccess
	case "pending", string(core.IPOUpcoming), "draft":
		return table.ToneWarning
	case "blocked", "failed", "inactive":
		return table.ToneDanger
	case "refunded", string(core.IPOClosed):
		return table.ToneMuted
	default:
		return table.ToneInfo
	}
}

// Badge renders status as a toned cell.
func Badge(status string) table.Cell {
	return table.Cell{Text: status, Tone: StatusTone(status)}
}

// Date sorts by the stored ISO string and renders for display.
func Date[T any](key, header string, get func(T) string) table.Column[T] {
	return table.Accessor(key, header, func(rec T) any { return get(rec) }).
		WithRender(func(rec T) table.Cell { return table.Cell{Text: format.Date(get(rec))} })
}

// Status sorts by the raw status and renders a badge.
func Status[T any](key, header string, get func(T) string) table.Column[T] {
	return table.Accessor(key, header, func(rec T) any { return get(rec) }).
		WithRender(func(rec T) table.Cell { return Badge(get(rec)) })
}

// PriceBand renders an IPO's band as "₹min - ₹max".
func PriceBand(i core.IPO) string {
	return format.Currency(i.PriceBand.Min) + " - " + format.Currency(i.PriceBand.Max)
}

// IPOColumns are the columns of every IPO listing: the local list, the live
// remote page and the command line table.
func IPOColumns() []table.Column[core.IPO] {
	return []table.Column[core.IPO]{
		table.Accessor("name", "IPO Name", func(i core.IPO) any { return i.Name }),
		table.Accessor("companyName", "Company Name", func(i core.IPO) any { return i.CompanyName }),
		Date("openDate", "Open Date", func(i core.IPO) string { return i.OpenDate }),
		Date("closeDate", "Close Date", func(i core.IPO) string { return i.CloseDate }),
		table.Computed("priceBand", "Price Band", func(i core.IPO) table.Cell {
			return table.Cell{Text: PriceBand(i)}
		}).WithCompare(func(a, b core.IPO) int {
			return cmp.Compare(a.PriceBand.Min, b.PriceBand.Min)
		}),
		table.Accessor("lotSize", "Lot Size", func(i core.IPO) any { return i.LotSize }),
		Status("status", "Status", func(i core.IPO) string { return string(i.Status) }),
	}
}
