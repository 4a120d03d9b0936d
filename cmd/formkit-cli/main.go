package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/store"
	"github.com/goliatone/go-formkit/pkg/fieldlist"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/translit"
)

func main() {
	var (
		configFlag   = flag.String("config", "", "YAML config file (overridden by "+config.EnvConfigPath+")")
		catalogsFlag = flag.String("catalogs", "", "Catalog fixtures (overrides fixtures.catalogs)")
		schemaFlag   = flag.String("schema", "", "Attribute schema (overrides fixtures.schema)")
		catalogFlag  = flag.String("catalog", "", "Catalog to pick from")
		productFlag  = flag.String("product", "", "Print the attribute summary of this product instead of picking")
		variantFlag  = flag.String("variant", "checkbox", "Picker variant (radio, checkbox)")
		queryFlag    = flag.String("q", "", "Initial search term")
		localeFlag   = flag.String("locale", "", "Display locale")
		formatFlag   = flag.String("format", "json", "Output format (json, pretty)")
		listFlag     = flag.String("list", "", "Edit a repeatable field at this form path, e.g. barcodes")
		valuesFlag   = flag.String("values", "", "Comma separated initial values for -list")
		labelFlag    = flag.String("label", "", "Prompt label for -list")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *catalogsFlag != "" {
		cfg.Fixtures.Catalogs = *catalogsFlag
	}
	if *schemaFlag != "" {
		cfg.Fixtures.Schema = *schemaFlag
	}
	locale := strings.TrimSpace(*localeFlag)
	if locale == "" {
		locale = cfg.Locales.Default
	}

	renderer, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(*formatFlag)))
	if err != nil {
		log.Fatalf("tui: %v", err)
	}

	ctx := context.Background()
	tr := translit.Default()

	var view render.View
	if path := strings.TrimSpace(*listFlag); path != "" {
		view = fieldListView(path, *labelFlag, *valuesFlag)
	} else {
		catalogs, err := store.LoadCatalogs(cfg.Fixtures.Catalogs, tr)
		if err != nil {
			log.Fatalf("catalogs: %v", err)
		}
		if product := strings.TrimSpace(*productFlag); product != "" {
			view, err = attributesView(ctx, cfg, catalogs, tr, product)
			if err != nil {
				log.Fatalf("attributes: %v", err)
			}
		} else {
			view, err = pickerView(ctx, catalogs, tr, *catalogFlag, *variantFlag, *queryFlag)
			if err != nil {
				log.Fatalf("picker: %v", err)
			}
		}
	}

	out, err := renderer.Render(ctx, view, render.RenderOptions{Locale: locale})
	if errors.Is(err, options.ErrNothingSelected) {
		fmt.Fprintln(os.Stderr, "nothing selected")
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Println(string(out))
}

// fieldListView seeds a field list from a comma separated value string.
func fieldListView(path, label, raw string) render.View {
	var values []string
	for _, value := range strings.Split(raw, ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	if label == "" {
		label = path
	}
	return render.FieldListView{Label: label, List: fieldlist.New(path, values...)}
}

func pickerView(ctx context.Context, catalogs *store.Catalogs, tr *translit.Table, catalog, variant, query string) (render.View, error) {
	catalog = strings.TrimSpace(catalog)
	if catalog == "" {
		return nil, fmt.Errorf("-catalog is required (available: %s)", strings.Join(catalogs.Names(), ", "))
	}
	buckets, err := catalogs.Alphabet(ctx, catalog)
	if err != nil {
		return nil, err
	}
	picker := options.NewPicker(options.Config{
		Alphabet:       buckets,
		Variant:        options.ParseVariant(variant),
		Transliterator: tr,
	})
	picker.Search(query)
	return render.PickerView{Title: catalog, Catalog: catalog, Picker: picker}, nil
}

// attributesView loads product from the configured storage. The default
// memory driver yields the schema with no stored values.
func attributesView(ctx context.Context, cfg config.Config, catalogs *store.Catalogs, tr *translit.Table, product string) (render.View, error) {
	schema, err := store.LoadSchema(cfg.Fixtures.Schema)
	if err != nil {
		return nil, err
	}
	values, closeValues, err := store.OpenValues(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closeValues() }()

	st, err := store.New(catalogs, schema, values, store.WithLocales(cfg.Locales), store.WithTransliterator(tr))
	if err != nil {
		return nil, err
	}
	groups, err := st.Groups(ctx, product)
	if err != nil {
		return nil, err
	}
	return render.AttributesView{ProductID: product, Groups: groups, Locales: cfg.Locales}, nil
}
