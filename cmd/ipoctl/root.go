package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JonMunkholm/ipoadmin/internal/ipo"
	"github.com/JonMunkholm/ipoadmin/internal/logging"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// app carries the settings shared by every subcommand. Flags, IPOCTL_*
// environment variables and an optional config file all resolve through v.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "ipoctl",
		Short:         "Inspect the remote IPO listing and the bundled sample data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.StringP("output", "o", outputTable, "output format: table or json")
	flags.Bool("color", false, "colour status cells in table output")
	flags.String("base-url", ipo.DefaultBaseURL, "base URL of the remote IPO listing")
	flags.Duration("timeout", ipo.DefaultTimeout, "timeout of one listing request")
	_ = a.v.BindPFlags(flags)

	a.v.SetEnvPrefix("IPOCTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(a.iposCmd(), a.normalizeCmd(), a.seedCmd())
	return root
}

func (a *app) init() error {
	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
	}

	slog.SetDefault(logging.New(a.errOut, a.v.GetString("log-level"), "text"))

	switch a.output() {
	case outputTable, outputJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table or json)", a.v.GetString("output"))
	}
}

func (a *app) output() string {
	return strings.ToLower(strings.TrimSpace(a.v.GetString("output")))
}

func (a *app) client() *ipo.Client {
	return ipo.NewClient(ipo.Options{
		BaseURL: a.v.GetString("base-url"),
		Timeout: a.v.GetDuration("timeout"),
	})
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
