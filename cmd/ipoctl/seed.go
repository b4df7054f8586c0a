package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/format"
	"github.com/JonMunkholm/ipoadmin/internal/seed"
	"github.com/JonMunkholm/ipoadmin/internal/table"
)

// seedSet is one resource of the embedded sample data.
type seedSet struct {
	key     string
	count   int
	records any
	grid    func() table.Grid
}

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [resource]",
		Short: "Show the sample data loaded into empty stores",
		Long: "Without arguments prints how many sample records each resource has.\n" +
			"With a resource name prints its records.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := seed.Load()
			if err != nil {
				return err
			}
			sets := seedSets(data)

			if len(args) == 0 {
				return a.seedSummary(sets)
			}

			i := slices.IndexFunc(sets, func(s seedSet) bool { return s.key == args[0] })
			if i < 0 {
				keys := make([]string, len(sets))
				for j, s := range sets {
					keys[j] = s.key
				}
				return fmt.Errorf("unknown resource %q (want one of %s)", args[0], strings.Join(keys, ", "))
			}

			set := sets[i]
			if a.output() == outputJSON {
				return a.writeJSON(set.records)
			}
			a.renderGrid(set.grid())
			return nil
		},
	}
}

func (a *app) seedSummary(sets []seedSet) error {
	type count struct {
		Resource string `json:"resource"`
		Records  int    `json:"records"`
	}
	counts := make([]count, len(sets))
	for i, s := range sets {
		counts[i] = count{Resource: s.key, Records: s.count}
	}

	if a.output() == outputJSON {
		return a.writeJSON(counts)
	}
	a.renderGrid(gridOf(counts, []table.Column[count]{
		table.Accessor("resource", "Resource", func(c count) any { return c.Resource }),
		table.Accessor("records", "Records", func(c count) any { return c.Records }),
	}))
	return nil
}

func gridOf[T any](recs []T, cols []table.Column[T]) table.Grid {
	return table.Apply(recs, cols, table.Options[T]{HidePagination: true}, table.DefaultState()).Grid
}

func seedSets(d *seed.Data) []seedSet {
	money := func(f float64) table.Cell { return table.Cell{Text: format.Currency(f)} }

	return []seedSet{
		{"products", len(d.Products), d.Products, func() table.Grid {
			return gridOf(d.Products, []table.Column[core.Product]{
				table.Accessor("id", "ID", func(p core.Product) any { return p.ID }),
				table.Accessor("name", "Name", func(p core.Product) any { return p.Name }),
				table.Accessor("category", "Category", func(p core.Product) any { return p.Category }),
				table.Accessor("price", "Price", func(p core.Product) any { return p.Price }).
					WithRender(func(p core.Product) table.Cell { return money(p.Price) }),
				table.Accessor("status", "Status", func(p core.Product) any { return p.Status }),
			})
		}},
		{"ipos", len(d.IPOs), d.IPOs, func() table.Grid {
			return gridOf(d.IPOs, ipoColumns())
		}},
		{"categories", len(d.Categories), d.Categories, func() table.Grid {
			return gridOf(d.Categories, []table.Column[core.Category]{
				table.Accessor("id", "ID", func(c core.Category) any { return c.ID }),
				table.Accessor("name", "Name", func(c core.Category) any { return c.Name }),
				table.Accessor("slug", "Slug", func(c core.Category) any { return c.Slug }),
			})
		}},
		{"users", len(d.Users), d.Users, func() table.Grid {
			return gridOf(d.Users, []table.Column[core.User]{
				table.Accessor("id", "ID", func(u core.User) any { return u.ID }),
				table.Accessor("name", "Name", func(u core.User) any { return u.Name }),
				table.Accessor("email", "Email", func(u core.User) any { return u.Email }),
				table.Accessor("role", "Role", func(u core.User) any { return u.Role }),
				table.Accessor("status", "Status", func(u core.User) any { return u.Status }),
			})
		}},
		{"subscriptions", len(d.Plans), d.Plans, func() table.Grid {
			return gridOf(d.Plans, []table.Column[core.SubscriptionPlan]{
				table.Accessor("id", "ID", func(p core.SubscriptionPlan) any { return p.ID }),
				table.Accessor("name", "Name", func(p core.SubscriptionPlan) any { return p.Name }),
				table.Accessor("price", "Price", func(p core.SubscriptionPlan) any { return p.Price }).
					WithRender(func(p core.SubscriptionPlan) table.Cell { return money(p.Price) }),
				table.Accessor("duration", "Months", func(p core.SubscriptionPlan) any { return p.Duration }),
				table.Computed("features", "Features", func(p core.SubscriptionPlan) table.Cell {
					return table.Cell{Text: strconv.Itoa(len(p.Features))}
				}),
			})
		}},
		{"orders", len(d.Transactions), d.Transactions, func() table.Grid {
			return gridOf(d.Transactions, []table.Column[core.Transaction]{
				table.Accessor("id", "ID", func(t core.Transaction) any { return t.ID }),
				table.Accessor("userName", "User", func(t core.Transaction) any { return t.UserName }),
				table.Accessor("productName", "Product", func(t core.Transaction) any { return t.ProductName }),
				table.Accessor("amount", "Amount", func(t core.Transaction) any { return t.Amount }).
					WithRender(func(t core.Transaction) table.Cell { return money(t.Amount) }),
				table.Accessor("status", "Status", func(t core.Transaction) any { return t.Status }),
			})
		}},
		{"content", len(d.Content), d.Content, func() table.Grid {
			return gridOf(d.Content, []table.Column[core.Content]{
				table.Accessor("id", "ID", func(c core.Content) any { return c.ID }),
				table.Accessor("title", "Title", func(c core.Content) any { return c.Title }),
				table.Accessor("type", "Type", func(c core.Content) any { return c.Type }),
				table.Accessor("status", "Status", func(c core.Content) any { return c.Status }),
			})
		}},
		{"notifications", len(d.Notifications), d.Notifications, func() table.Grid {
			return gridOf(d.Notifications, []table.Column[core.Notification]{
				table.Accessor("id", "ID", func(n core.Notification) any { return n.ID }),
				table.Accessor("title", "Title", func(n core.Notification) any { return n.Title }),
				table.Accessor("type", "Type", func(n core.Notification) any { return n.Type }),
				table.Accessor("status", "Status", func(n core.Notification) any { return n.Status }),
			})
		}},
	}
}
