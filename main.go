package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/subscription-tracker/internal"
)

type Params struct {
	Action    string   `descr:"What to do" positional:"true" alts:"list,upcoming,estimate,add,remove,import,import-example,export,init-config" strict:"true"`
	Config    string   `descr:"Path to config file (default: ~/.subscription-tracker/config.yaml)" optional:"true"`
	Store     string   `descr:"Path to the subscriptions file (overrides config)" optional:"true"`
	Output    string   `descr:"Output format" alts:"table,json" default:"table" strict:"true"`
	Currency  string   `descr:"Currency code for display (e.g. USD, SEK, EUR). Defaults to config, then system locale" optional:"true"`
	Days      int      `descr:"Days ahead for upcoming and export (default: projection_days from config, 30)" optional:"true"`
	Frequency string   `descr:"Only show one frequency: all, weekly, monthly, quarterly, yearly" optional:"true"`
	Search    string   `descr:"Only show subscriptions whose name contains this text" optional:"true"`
	Tags      []string `descr:"Only show subscriptions with any of these tags (from config)" optional:"true"`
	SubID     string   `descr:"Subscription ID (remove; add updates it instead of creating)" name:"id" optional:"true"`
	Name      string   `descr:"Subscription name (add)" optional:"true"`
	Amount    string   `descr:"Amount per charge (add)" optional:"true"`
	Start     string   `descr:"Start date YYYY-MM-DD (add, default: today)" optional:"true"`
	Every     string   `descr:"Charge frequency (add): weekly, monthly, quarterly, yearly" default:"monthly"`
	AutoRenew bool     `descr:"Mark the subscription as auto-renewing (add)" optional:"true"`
	Disabled  bool     `descr:"Add the subscription disabled; it will not charge" optional:"true"`
	File      string   `descr:"File to import from (format:path, .json or .xlsx) or export to (.xlsx or .ics)" optional:"true"`
	Verbose   bool     `descr:"Log debug information to stderr" optional:"true"`
}

func main() {
	boa.NewCmdT[Params]("subscription-tracker").
		WithShort("Track recurring subscriptions and project upcoming charges").
		WithLong("Keeps a list of recurring subscriptions (weekly, monthly, quarterly, yearly) and projects upcoming charges and a normalized monthly average. Month-end start dates stay on the last day of each month.").
		WithRunFunc(func(params *Params) {
			if err := run(params, os.Stdout, os.Stderr, internal.SystemClock{}); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(params *Params, stdout, stderr io.Writer, clock internal.Clock) error {
	logger := newLogger(stderr, params.Verbose)

	configPath := params.Config
	if configPath == "" {
		configPath = internal.DefaultConfigPath()
	}
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("config loaded", "path", configPath)

	storePath := params.Store
	if storePath == "" {
		storePath = cfg.StorePath()
	}
	store, err := internal.OpenStore(storePath, logger)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	currencyCode := params.Currency
	if currencyCode == "" {
		currencyCode = cfg.Currency
	}
	opts := internal.OutputOptions{
		Currency: internal.ResolveCurrency(currencyCode),
		Config:   cfg,
	}
	jsonOutput := params.Output == "json"

	filter, err := buildFilter(params, cfg)
	if err != nil {
		return err
	}

	days := params.Days
	if days <= 0 {
		days = cfg.ProjectionDays
	}

	// Subscriptions taking part in views and totals
	visible := func() []internal.Subscription {
		subs := internal.FilterByExclusions(store.List(), cfg)
		return internal.FilterByTags(subs, params.Tags, cfg)
	}

	switch params.Action {
	case "list":
		subs := visible()
		charges := internal.NextCharges(subs, clock, filter)
		monthly := internal.EstimateMonthlyAverage(subs, clock)
		if jsonOutput {
			return internal.PrintSubscriptionsJSON(stdout, charges, monthly, opts)
		}
		if len(charges) == 0 {
			fmt.Fprintln(stdout, "No subscriptions yet. Add one with 'add' or try 'import-example'.")
			return nil
		}
		internal.PrintSubscriptionsTable(stdout, charges, monthly, opts)
		return nil

	case "upcoming":
		p := internal.BuildProjection(visible(), days, clock, filter)
		if jsonOutput {
			return internal.PrintProjectionJSON(stdout, p, opts)
		}
		internal.PrintProjectionTable(stdout, p, filter, opts)
		return nil

	case "estimate":
		subs := visible()
		window := internal.EstimateWindow(clock)
		annual := internal.TotalDue(subs, window)
		monthly := internal.EstimateMonthlyAverage(subs, clock)
		return internal.PrintEstimate(stdout, window, annual, monthly, jsonOutput, opts)

	case "add":
		return addSubscription(params, store, clock, stdout)

	case "remove":
		if params.SubID == "" {
			return errors.New("remove needs --id (see 'list')")
		}
		sub, err := store.Get(params.SubID)
		if err != nil {
			return err
		}
		if err := store.Delete(sub.ID); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Removed %s (%s)\n", sub.Name, sub.ID)
		return nil

	case "import":
		if params.File == "" {
			return fmt.Errorf("import needs --file (formats: %v)", internal.AvailableFormats())
		}
		subs, err := internal.ImportFile(params.File)
		if err != nil {
			return fmt.Errorf("importing %s: %w", params.File, err)
		}
		if err := store.Append(subs...); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Imported %d subscriptions into %s\n", len(subs), store.Path())
		return nil

	case "import-example":
		examples := internal.ExampleSubscriptions(clock)
		if err := store.Append(examples...); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Added %d example subscriptions to %s\n", len(examples), store.Path())
		return nil

	case "export":
		if params.File == "" {
			return errors.New("export needs --file ending in .xlsx or .ics")
		}
		p := internal.BuildProjection(visible(), days, clock, filter)
		if err := internal.ExportProjection(params.File, p, opts.Currency, clock.Today().Time()); err != nil {
			return fmt.Errorf("exporting to %s: %w", params.File, err)
		}
		fmt.Fprintf(stdout, "Exported %d charges (%s to %s) to %s\n", p.Count, p.Window.Start, p.Window.End, params.File)
		return nil

	case "init-config":
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file %s already exists", configPath)
		}
		template := internal.GenerateConfigTemplate(store.List())
		template.Store = params.Store
		if err := template.Save(configPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote config template to %s\n", configPath)
		return nil

	default:
		return fmt.Errorf("unknown action %q", params.Action)
	}
}

func buildFilter(params *Params, cfg *internal.Config) (internal.Filter, error) {
	filter := cfg.Filter()
	switch params.Frequency {
	case "":
	case "all":
		filter.Frequency = ""
	default:
		f, err := internal.ParseFrequency(params.Frequency)
		if err != nil {
			return internal.Filter{}, err
		}
		filter.Frequency = f
	}
	filter.Search = params.Search
	return filter, nil
}

func addSubscription(params *Params, store *internal.Store, clock internal.Clock, stdout io.Writer) error {
	start := params.Start
	if start == "" {
		start = clock.Today().String()
	}

	if params.SubID != "" {
		if _, err := store.Get(params.SubID); err != nil {
			return err
		}
	}

	sub, err := internal.ValidateSubscription(internal.SubscriptionInput{
		ID:        params.SubID,
		Name:      params.Name,
		Amount:    params.Amount,
		StartDate: start,
		Frequency: params.Every,
		AutoRenew: params.AutoRenew,
		Enabled:   !params.Disabled,
	})
	if err != nil {
		return err
	}
	if err := store.Upsert(sub); err != nil {
		return err
	}

	next, err := internal.NextOccurrence(sub.StartDate, sub.Frequency, clock.Today())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Saved %s (%s), next charge %s\n", sub.Name, sub.ID, next)
	return nil
}
