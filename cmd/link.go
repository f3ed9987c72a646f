package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/acoustic-content-samples/sample-delivery-search-api/config"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/examples"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/form"
	"github.com/acoustic-content-samples/sample-delivery-search-api/internal/query"
	"github.com/acoustic-content-samples/sample-delivery-search-api/pkg/format"
)

// LinkOptions holds command options
type LinkOptions struct {
	TenantURL      string
	Classification string
	Filters        []string
	ReturnFields   []string
	Rows           string
	Start          string
	SortBy         string
	SortOrder      string
	Example        string
	File           string
	OutputFormat   string
	Open           bool
}

// LinkResult is the json output of the link command
type LinkResult struct {
	Link  string          `json:"link"`
	Query query.QueryData `json:"query"`
}

var conditionNames = map[string]string{
	"equals":   query.ConditionEquals,
	"contains": query.ConditionContains,
}

var operatorNames = map[string]string{
	"single": query.OperatorSingle,
	"and":    query.OperatorAnd,
	"or":     query.OperatorOr,
}

var rangeNames = map[string]string{
	"future": query.RangeFuture,
	"past":   query.RangePast,
	"within": query.RangeWithin,
}

var orderNames = map[string]string{
	"asc":  query.SortAscending,
	"desc": query.SortDescending,
}

// NewLinkCommand creates the link command
func NewLinkCommand() *cobra.Command {
	opts := &LinkOptions{}

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build a delivery search link",
		Long: `Build a delivery search link from flags, a predefined example or a query file.

Filters use the form field[=value][;option=value]... with the options
  condition=equals|contains        text fields
  operator=single|and|or           text fields, and/or take comma separated values
  range=future|past|within         date fields
  start=YYYY-MM-DD, end=YYYY-MM-DD date fields with range=within`,
		Example: `  dsearch link -c content -f 'name=summer;condition=contains'
  dsearch link -c asset -f 'location=Web Assets' -r name -r path --sort name --order desc
  dsearch link -c content -f 'lastModified;range=within;start=2021-01-01;end=2021-01-31'
  dsearch link --example "All managed assets" --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLink(opts, cmd.Flags().Changed("classification"))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.TenantURL, "tenant-url", "", "Tenant API URL (defaults to the configured tenant.url)")
	flags.StringVarP(&opts.Classification, "classification", "c", query.Classifications[0], "Document classification")
	flags.StringArrayVarP(&opts.Filters, "filter", "f", nil, "Filter field, can be repeated")
	flags.StringArrayVarP(&opts.ReturnFields, "return", "r", nil, "Field to return, can be repeated (default All)")
	flags.StringVar(&opts.Rows, "rows", "", "Number of rows to return (1-1000)")
	flags.StringVar(&opts.Start, "start", "", "Row to start from")
	flags.StringVar(&opts.SortBy, "sort", "", "Field to sort by")
	flags.StringVar(&opts.SortOrder, "order", "asc", "Sort order (asc or desc)")
	flags.StringVar(&opts.Example, "example", "", "Start from a predefined example")
	flags.StringVar(&opts.File, "file", "", "Start from a query file (yaml or json)")
	flags.StringVar(&opts.OutputFormat, "output", "text", "Output format (json or text)")
	flags.BoolVar(&opts.Open, "open", false, "Open the link in the browser")
	cmd.MarkFlagsMutuallyExclusive("example", "file")

	cmd.RegisterFlagCompletionFunc("classification", completeClassifications)
	cmd.RegisterFlagCompletionFunc("example", completeExampleNames)
	cmd.RegisterFlagCompletionFunc("sort", completeFieldNames)
	cmd.RegisterFlagCompletionFunc("return", completeFieldNames)
	cmd.RegisterFlagCompletionFunc("order", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"asc", "desc"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runLink executes the link command logic
func runLink(opts *LinkOptions, classificationSet bool) error {
	if opts.OutputFormat != "json" && opts.OutputFormat != "text" {
		return fmt.Errorf("invalid output format %q, must be 'json' or 'text'", opts.OutputFormat)
	}

	store := form.New()
	tenantURL := opts.TenantURL
	if tenantURL == "" {
		tenantURL = config.GetTenantURL()
	}
	store.SetTenantURL(tenantURL)

	switch {
	case opts.Example != "":
		example, err := examples.Get(opts.Example)
		if err != nil {
			return err
		}
		store.LoadExample(example)
	case opts.File != "":
		q, err := query.LoadFile(opts.File)
		if err != nil {
			return err
		}
		store.Replace(q)
	}

	if classificationSet || (opts.Example == "" && opts.File == "") {
		if err := store.SetClassification(opts.Classification); err != nil {
			return err
		}
	}

	for _, filter := range opts.Filters {
		if err := applyFilter(store, filter); err != nil {
			return err
		}
	}

	if len(opts.ReturnFields) > 0 {
		store.ClearReturnFields()
		for _, field := range opts.ReturnFields {
			store.ToggleReturnField(field)
		}
	}

	if opts.Rows != "" {
		if err := form.ValidateRows(opts.Rows); err != nil {
			log.Warn("%v, expected a whole number from %d to %d", err, form.MinRows, form.MaxRows)
		}
		store.SetRows(opts.Rows)
	}
	if opts.Start != "" {
		if err := form.ValidateStartRow(opts.Start); err != nil {
			log.Warn("%v, expected a whole number from 0", err)
		}
		store.SetStartRow(opts.Start)
	}

	if opts.SortBy != "" {
		order, err := sortOrder(opts.SortOrder)
		if err != nil {
			return err
		}
		if !slices.Contains(store.SortableFields(), opts.SortBy) {
			log.Warn("Field %s is not sortable for %s", opts.SortBy, store.Snapshot().Classification)
		}
		store.SetSort(opts.SortBy, order)
	}

	link, err := store.Link()
	if err != nil {
		return fmt.Errorf("failed to build link: %w", err)
	}

	if err := printLink(os.Stdout, opts.OutputFormat, link, store.Snapshot()); err != nil {
		return err
	}

	if opts.Open {
		if err := browser.OpenURL(link); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
	}
	return nil
}

func printLink(w io.Writer, outputFormat, link string, q query.QueryData) error {
	if outputFormat == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(LinkResult{Link: link, Query: q})
	}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		link = format.FormatLink(link)
	}
	_, err := fmt.Fprintln(w, link)
	return err
}

// applyFilter adds the field of a filter flag to the store and sets its
// option and value.
func applyFilter(store *form.Store, filter string) error {
	head, params, _ := strings.Cut(filter, ";")
	field, text, hasValue := strings.Cut(head, "=")
	field = strings.TrimSpace(field)
	if field == "" {
		return fmt.Errorf("invalid filter %q: missing field name", filter)
	}

	option := query.FieldOption{}
	value := query.FieldValue{Text: text}
	hasOption := false
	for _, param := range strings.Split(params, ";") {
		if strings.TrimSpace(param) == "" {
			continue
		}
		key, val, ok := strings.Cut(param, "=")
		if !ok {
			return fmt.Errorf("invalid filter %q: option %q must be key=value", filter, param)
		}

		var err error
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "condition":
			option.Condition, err = lookupName(conditionNames, "condition", val)
			hasOption = true
		case "operator":
			option.Operator, err = lookupName(operatorNames, "operator", val)
			hasOption = true
		case "range":
			option.DateRange, err = lookupName(rangeNames, "range", val)
			hasOption = true
		case "start":
			value.StartDate, err = parseFilterDate(val)
			hasValue = true
		case "end":
			value.EndDate, err = parseFilterDate(val)
			hasValue = true
		default:
			err = fmt.Errorf("unknown option %q", key)
		}
		if err != nil {
			return fmt.Errorf("invalid filter %q: %w", filter, err)
		}
	}

	if err := includeField(store, field); err != nil {
		return err
	}
	if hasOption {
		if err := store.SetOption(field, option); err != nil {
			return err
		}
	}
	if hasValue {
		if err := store.SetValue(field, value); err != nil {
			return err
		}
	}
	return nil
}

// includeField adds field to the search. Fields missing from the
// classification are added as manual fields; fields already present, e.g.
// from an example, are kept.
func includeField(store *form.Store, field string) error {
	q := store.Snapshot()
	if _, i := q.SearchField(field); i >= 0 {
		return nil
	}
	if slices.Contains(store.AvailableFields(), field) {
		return store.IncludeSearchField(field)
	}
	log.Debug("Adding %s as a manual field", field)
	return store.AddManualField(field)
}

// lookupName accepts either the short name of a choice or its full label.
func lookupName(names map[string]string, kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if full, ok := names[strings.ToLower(name)]; ok {
		return full, nil
	}
	for _, full := range names {
		if strings.EqualFold(full, name) {
			return full, nil
		}
	}
	return "", fmt.Errorf("unknown %s %q", kind, name)
}

func parseFilterDate(s string) (*time.Time, error) {
	t, err := query.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func sortOrder(order string) (string, error) {
	if order == "" {
		return query.SortAscending, nil
	}
	return lookupName(orderNames, "sort order", order)
}
