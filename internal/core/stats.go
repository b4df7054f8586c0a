package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"

	"github.com/JonMunkholm/ipoadmin/internal/format"
)

// DashboardStats are the headline numbers of the dashboard.
type DashboardStats struct {
	TotalProducts     int     `json:"totalProducts"`
	ActiveIPOs        int     `json:"activeIPOs"`
	TotalUsers        int     `json:"totalUsers"`
	Revenue           float64 `json:"revenue"`
	SubscriptionCount int     `json:"subscriptionCount"`
}

// MonthlySales aggregates completed transactions of one calendar month.
type MonthlySales struct {
	Month   string  `json:"month"` // YYYY-MM
	Label   string  `json:"label"` // "Jan 2024"
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// StatusCount counts IPOs in one status.
type StatusCount struct {
	Status IPOStatus `json:"status"`
	Count  int       `json:"count"`
}

// UserActivity splits users by account status.
type UserActivity struct {
	Active  int `json:"active"`
	Blocked int `json:"blocked"`
	Total   int `json:"total"`
}

// ProductSales is the completed revenue of one product.
type ProductSales struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// Report is the content of the reports screen.
type Report struct {
	MonthlySales []MonthlySales `json:"monthlySales"`
	IPOStatus    []StatusCount  `json:"ipoStatus"`
	UserActivity UserActivity   `json:"userActivity"`
	TopProducts  []ProductSales `json:"topProducts"`
	TotalRevenue float64        `json:"totalRevenue"`
}

// snapshot holds one consistent read of the resources the dashboard and
// reports aggregate.
type snapshot struct {
	products     []Product
	ipos         []IPO
	users        []User
	plans        []SubscriptionPlan
	transactions []Transaction
}

// load reads every resource concurrently. The first error cancels the
// remaining reads.
func (s *Service) load(ctx context.Context) (snapshot, error) {
	var snap snapshot

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) (err error) {
		snap.products, err = s.Products.List(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		snap.ipos, err = s.IPOs.List(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		snap.users, err = s.Users.List(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		snap.plans, err = s.Plans.List(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		snap.transactions, err = s.Transactions.List(ctx)
		return err
	})

	if err := p.Wait(); err != nil {
		return snapshot{}, fmt.Errorf("load dashboard data: %w", err)
	}
	return snap, nil
}

// completedRevenue sums completed transactions exactly.
func completedRevenue(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Status == TxCompleted {
			total = total.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	return total
}

// Dashboard computes the headline numbers.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		TotalProducts: len(snap.products),
		TotalUsers:    len(snap.users),
		Revenue:       completedRevenue(snap.transactions).Round(2).InexactFloat64(),
	}
	for _, i := range snap.ipos {
		if i.Status == IPOLive {
			stats.ActiveIPOs++
		}
	}
	for _, p := range snap.plans {
		if p.Status == StatusActive {
			stats.SubscriptionCount++
		}
	}
	return stats, nil
}

// Report computes the reports screen.
func (s *Service) Report(ctx context.Context) (Report, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return Report{}, err
	}

	return Report{
		MonthlySales: monthlySales(snap.transactions),
		IPOStatus:    ipoStatusBreakdown(snap.ipos),
		UserActivity: userActivity(snap.users),
		TopProducts:  topProducts(snap.transactions, 5),
		TotalRevenue: completedRevenue(snap.transactions).Round(2).InexactFloat64(),
	}, nil
}

func monthlySales(txs []Transaction) []MonthlySales {
	type agg struct {
		revenue decimal.Decimal
		orders  int
		label   string
	}
	byMonth := map[string]*agg{}

	for _, t := range txs {
		if t.Status != TxCompleted {
			continue
		}
		d, ok := format.ParseDate(t.CreatedAt)
		if !ok {
			continue
		}
		key := d.Format("2006-01")
		a, ok := byMonth[key]
		if !ok {
			a = &agg{label: d.Format("Jan 2006")}
			byMonth[key] = a
		}
		a.revenue = a.revenue.Add(decimal.NewFromFloat(t.Amount))
		a.orders++
	}

	out := make([]MonthlySales, 0, len(byMonth))
	for key, a := range byMonth {
		out = append(out, MonthlySales{
			Month:   key,
			Label:   a.label,
			Revenue: a.revenue.Round(2).InexactFloat64(),
			Orders:  a.orders,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

func ipoStatusBreakdown(ipos []IPO) []StatusCount {
	counts := map[IPOStatus]int{}
	for _, i := range ipos {
		counts[i.Status]++
	}
	return []StatusCount{
		{Status: IPOUpcoming, Count: counts[IPOUpcoming]},
		{Status: IPOLive, Count: counts[IPOLive]},
		{Status: IPOClosed, Count: counts[IPOClosed]},
	}
}

func userActivity(users []User) UserActivity {
	var ua UserActivity
	for _, u := range users {
		if u.Status == StatusBlocked {
			ua.Blocked++
		} else {
			ua.Active++
		}
	}
	ua.Total = len(users)
	return ua
}

func topProducts(txs []Transaction, limit int) []ProductSales {
	byName := map[string]*ProductSales{}
	totals := map[string]decimal.Decimal{}

	for _, t := range txs {
		if t.Status != TxCompleted || t.ProductName == "" {
			continue
		}
		ps, ok := byName[t.ProductName]
		if !ok {
			ps = &ProductSales{Name: t.ProductName}
			byName[t.ProductName] = ps
		}
		ps.Orders++
		totals[t.ProductName] = totals[t.ProductName].Add(decimal.NewFromFloat(t.Amount))
	}

	out := make([]ProductSales, 0, len(byName))
	for name, ps := range byName {
		ps.Revenue = totals[name].Round(2).InexactFloat64()
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
