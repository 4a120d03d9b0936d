package server

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/modal"
	"github.com/goliatone/go-formkit/pkg/mutation"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/routes"
	"github.com/goliatone/go-formkit/pkg/translation"
)

func (s *Server) locale(r *http.Request) string {
	if locale := strings.TrimSpace(r.URL.Query().Get("locale")); locale != "" {
		if slices.Contains(s.locales.Ordered(), locale) {
			return locale
		}
	}
	return s.locales.Default
}

func (s *Server) renderOptions(r *http.Request) render.RenderOptions {
	return render.RenderOptions{
		Locale:           s.locale(r),
		ShowInlineErrors: s.inline,
		Theme:            s.theme,
	}
}

func (s *Server) pageError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := toError(err)
	if mapped.Code >= http.StatusInternalServerError {
		s.logger.WithContext(r.Context()).Error("page failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(mapped.Code), mapped.Code)
		return
	}
	http.Error(w, mapped.Message, mapped.Code)
}

func (s *Server) attributesPage(w http.ResponseWriter, r *http.Request) {
	s.renderAttributes(w, r, r.PathValue("id"), http.StatusOK, nil, nil)
}

// renderAttributes writes the attribute editor of productID. A GET carrying
// open=<group>:<kind>:<attribute> also renders the picker modal of that
// select attribute.
func (s *Server) renderAttributes(w http.ResponseWriter, r *http.Request, productID string, status int, note *mutation.Notification, fieldErrors map[string][]string) {
	ctx := r.Context()
	groups, err := s.store.Groups(ctx, productID)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	links, err := s.router.Map(routes.IDs{ProductID: productID})
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	opts := s.renderOptions(r)
	opts.Errors = fieldErrors
	body, contentType, err := s.registry.Render(ctx, s.renderer, render.AttributesView{
		ProductID:    productID,
		Groups:       groups,
		Locales:      s.locales,
		Links:        links,
		Notification: note,
	}, opts)
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	if open := strings.TrimSpace(r.URL.Query().Get("open")); open != "" && r.Method == http.MethodGet {
		frame, err := s.attributeModal(ctx, r, productID, groups, open, opts, links)
		if err != nil {
			s.pageError(w, r, err)
			return
		}
		body = append(body, frame...)
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) attributeModal(ctx context.Context, r *http.Request, productID string, groups []attributes.Group, open string, opts render.RenderOptions, links map[string]map[string]string) ([]byte, error) {
	parts := strings.SplitN(open, ":", 3)
	if len(parts) != 3 {
		return nil, badInput("open must be <group>:<kind>:<attribute>", "OPEN_INVALID")
	}
	groupID, kind, attributeID := parts[0], attributes.Kind(parts[1]), parts[2]

	idx := slices.IndexFunc(groups, func(g attributes.Group) bool { return g.ID == groupID })
	if idx < 0 {
		return nil, notFound("GROUP_NOT_FOUND", "attribute group "+groupID+" not found")
	}
	group := groups[idx]
	attr, ok := group.FindSelect(kind, attributeID)
	if !ok {
		return nil, notFound("ATTRIBUTE_NOT_FOUND", "select attribute "+attributeID+" not found")
	}

	session, err := s.editor.OpenSelect(ctx, productID, group, kind, attributeID, opts.Locale)
	if err != nil {
		return nil, err
	}
	session.Picker.Search(r.URL.Query().Get("q"))

	searchURL, err := s.router.URL(routes.GroupAdmin, routes.ProductAttributes,
		map[string]string{"id": productID}, map[string]string{"open": open})
	if err != nil {
		return nil, err
	}

	modalOpts := opts
	modalOpts.Hidden = render.MergeHiddenFields(opts.Hidden,
		render.Hidden("groupId", groupID),
		render.Hidden("kind", string(kind)),
		render.Hidden("attributeId", attributeID),
		render.Hidden("productAttributeId", attr.ProductAttributeID),
	)
	host, err := modal.NewHost(s.pages.ModalLoader(modalOpts))
	if err != nil {
		return nil, err
	}
	host.Open(modal.AttributeOptions{
		Title:     attr.Name.Value(s.locales, opts.Locale),
		Session:   session,
		SubmitURL: links["api"]["select"],
		SearchURL: searchURL,
	})
	frame, err := host.Render(ctx)
	if err != nil {
		return nil, err
	}
	return s.pages.Render(ctx, render.ModalView{Frame: frame}, opts)
}

// pickerPage renders a picker over a catalog. variant, q and selected seed
// it; product, group, kind and attribute point its submit at the select API.
func (s *Server) pickerPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	catalog := r.PathValue("catalog")
	query := r.URL.Query()

	buckets, err := s.store.Alphabet(ctx, catalog)
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	tree := options.NewTree(options.FlattenAlphabet(buckets))
	var initial []options.OptionNode
	for _, id := range query["selected"] {
		if idx, ok := tree.Lookup(id); ok {
			node := tree.Node(idx)
			node.Options = nil
			initial = append(initial, node)
		}
	}

	variant := options.ParseVariant(query.Get("variant"))
	picker := options.NewPicker(options.Config{
		Alphabet:             buckets,
		Variant:              variant,
		InitiallySelected:    initial,
		DisableNestedOptions: query.Get("nested") == "false",
		Transliterator:       s.translit,
	})
	picker.Search(query.Get("q"))

	searchQuery := map[string]string{"variant": string(variant)}
	for _, key := range []string{"product", "group", "kind", "attribute", "nested", "locale"} {
		if v := strings.TrimSpace(query.Get(key)); v != "" {
			searchQuery[key] = v
		}
	}
	searchURL, err := s.router.URL(routes.GroupAdmin, routes.Picker, map[string]string{"catalog": catalog}, searchQuery)
	if err != nil {
		s.pageError(w, r, err)
		return
	}

	view := render.PickerView{
		Title:     strings.TrimSpace(query.Get("title")),
		Catalog:   catalog,
		Picker:    picker,
		SearchURL: searchURL,
	}
	opts := s.renderOptions(r)
	if product := strings.TrimSpace(query.Get("product")); product != "" {
		submitURL, err := s.router.URL(routes.GroupAPI, routes.SelectAttribute, map[string]string{"id": product}, nil)
		if err != nil {
			s.pageError(w, r, err)
			return
		}
		view.SubmitURL = submitURL
		opts.Hidden = render.MergeHiddenFields(opts.Hidden,
			render.Hidden("groupId", query.Get("group")),
			render.Hidden("kind", query.Get("kind")),
			render.Hidden("attributeId", query.Get("attribute")),
		)
	}

	body, contentType, err := s.registry.Render(ctx, s.renderer, view, opts)
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// inputNames lists every input the attribute page renders, for mapping
// validation errors onto fields.
func inputNames(groups []attributes.Group, locales translation.Locales) []string {
	var names []string
	for _, g := range groups {
		for _, a := range g.Number {
			names = append(names, attributes.NumberFieldName(a.AttributeID))
		}
		for _, a := range g.String {
			path := attributes.StringFieldPath(a.AttributeID)
			for _, locale := range locales.Ordered() {
				names = append(names, translation.FieldName(path, locale))
			}
		}
	}
	return names
}
