// Package routes builds the console's URLs with go-urlkit. Admin pages live in
// the "admin" group and JSON mutation endpoints in the "api" group.
package routes

import (
	"fmt"
	"sort"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

const (
	rootGroup = "console"

	GroupAdmin = "admin"
	GroupAPI   = "api"
)

// Admin page routes.
const (
	Products          = "products"
	Product           = "product"
	ProductAttributes = "product_attributes"
	Rubrics           = "rubrics"
	Rubric            = "rubric"
	Attributes        = "attributes"
	AttributeGroup    = "attribute_group"
	Shops             = "shops"
	Shop              = "shop"
	Orders            = "orders"
	Order             = "order"
	GiftCertificates  = "gift_certificates"
	GiftCertificate   = "gift_certificate"
	Tasks             = "tasks"
	Task              = "task"
	SEO               = "seo"
	SEOContent        = "seo_content"
	Picker            = "picker"
)

// API routes.
const (
	SelectAttribute = "select"
	NumberBatch     = "numbers"
	StringBatch     = "strings"
	ClearAttribute  = "clear"
	OptionSearch    = "option_search"
)

var adminPaths = map[string]string{
	Products:          "/products",
	Product:           "/products/:id",
	ProductAttributes: "/products/:id/attributes",
	Rubrics:           "/rubrics",
	Rubric:            "/rubrics/:id",
	Attributes:        "/attributes",
	AttributeGroup:    "/attributes/groups/:id",
	Shops:             "/shops",
	Shop:              "/shops/:id",
	Orders:            "/orders",
	Order:             "/orders/:id",
	GiftCertificates:  "/gift-certificates",
	GiftCertificate:   "/gift-certificates/:id",
	Tasks:             "/tasks",
	Task:              "/tasks/:id",
	SEO:               "/seo",
	SEOContent:        "/seo/:id",
	Picker:            "/pickers/:catalog",
}

var apiPaths = map[string]string{
	SelectAttribute: "/products/:id/attributes/select",
	NumberBatch:     "/products/:id/attributes/numbers",
	StringBatch:     "/products/:id/attributes/strings",
	ClearAttribute:  "/products/:id/attributes/clear",
	OptionSearch:    "/options/search",
}

var groupPaths = map[string]string{
	GroupAdmin: "/admin",
	GroupAPI:   "/api",
}

// Config sets the absolute origin prepended to every URL. Empty keeps URLs
// host-relative.
type Config struct {
	BaseURL string
}

// Router resolves named routes.
type Router struct {
	manager *urlkit.RouteManager
}

func New(cfg Config) (*Router, error) {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{{
			Name:    rootGroup,
			BaseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Groups: []urlkit.GroupConfig{
				{Name: GroupAdmin, Path: groupPaths[GroupAdmin], Paths: copyPaths(adminPaths)},
				{Name: GroupAPI, Path: groupPaths[GroupAPI], Paths: copyPaths(apiPaths)},
			},
		}},
	})
	if manager == nil {
		return nil, fmt.Errorf("routes: route manager not created")
	}
	return &Router{manager: manager}, nil
}

// URL builds one route. Params fill ":name" segments; query is appended.
func (r *Router) URL(group, route string, params map[string]string, query map[string]string) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out, err = "", fmt.Errorf("routes: %s.%s: %v", group, route, rec)
		}
	}()

	if _, ok := pathsFor(group)[route]; !ok {
		return "", fmt.Errorf("routes: unknown route %s.%s", group, route)
	}

	builder := r.manager.Group(rootGroup).Group(group).Builder(route)
	for key, val := range params {
		builder.WithParam(key, val)
	}
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		builder.WithQuery(key, query[key])
	}
	return builder.Build()
}

// Pattern returns the net/http ServeMux pattern of a route, with ":name"
// segments written as "{name}".
func Pattern(group, route string) (string, error) {
	path, ok := pathsFor(group)[route]
	if !ok {
		return "", fmt.Errorf("routes: unknown route %s.%s", group, route)
	}
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return groupPaths[group] + strings.Join(segments, "/"), nil
}

// Params lists the ":name" parameters a route needs.
func Params(group, route string) []string {
	var out []string
	for _, segment := range strings.Split(pathsFor(group)[route], "/") {
		if strings.HasPrefix(segment, ":") {
			out = append(out, segment[1:])
		}
	}
	return out
}

func pathsFor(group string) map[string]string {
	switch group {
	case GroupAdmin:
		return adminPaths
	case GroupAPI:
		return apiPaths
	default:
		return nil
	}
}

func copyPaths(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
