package routes

import "strings"

// IDs carries the optional entity ids a page needs links for.
type IDs struct {
	ProductID         string
	RubricID          string
	AttributeGroupID  string
	ShopID            string
	OrderID           string
	GiftCertificateID string
	TaskID            string
	SEOID             string
	Catalog           string
}

type mapEntry struct {
	section string
	key     string
	group   string
	route   string
	params  map[string]string
}

// Map builds the nested section to link map used by page templates. Links
// whose id is missing are left out.
func (r *Router) Map(ids IDs) (map[string]map[string]string, error) {
	entries := []mapEntry{
		{"products", "list", GroupAdmin, Products, nil},
		{"products", "edit", GroupAdmin, Product, idParam(ids.ProductID)},
		{"products", "attributes", GroupAdmin, ProductAttributes, idParam(ids.ProductID)},
		{"rubrics", "list", GroupAdmin, Rubrics, nil},
		{"rubrics", "edit", GroupAdmin, Rubric, idParam(ids.RubricID)},
		{"attributes", "list", GroupAdmin, Attributes, nil},
		{"attributes", "group", GroupAdmin, AttributeGroup, idParam(ids.AttributeGroupID)},
		{"shops", "list", GroupAdmin, Shops, nil},
		{"shops", "edit", GroupAdmin, Shop, idParam(ids.ShopID)},
		{"orders", "list", GroupAdmin, Orders, nil},
		{"orders", "edit", GroupAdmin, Order, idParam(ids.OrderID)},
		{"giftCertificates", "list", GroupAdmin, GiftCertificates, nil},
		{"giftCertificates", "edit", GroupAdmin, GiftCertificate, idParam(ids.GiftCertificateID)},
		{"tasks", "list", GroupAdmin, Tasks, nil},
		{"tasks", "edit", GroupAdmin, Task, idParam(ids.TaskID)},
		{"seo", "list", GroupAdmin, SEO, nil},
		{"seo", "edit", GroupAdmin, SEOContent, idParam(ids.SEOID)},
		{"pickers", "catalog", GroupAdmin, Picker, param("catalog", ids.Catalog)},
		{"api", "select", GroupAPI, SelectAttribute, idParam(ids.ProductID)},
		{"api", "numbers", GroupAPI, NumberBatch, idParam(ids.ProductID)},
		{"api", "strings", GroupAPI, StringBatch, idParam(ids.ProductID)},
		{"api", "clear", GroupAPI, ClearAttribute, idParam(ids.ProductID)},
		{"api", "optionSearch", GroupAPI, OptionSearch, nil},
	}

	out := make(map[string]map[string]string)
	for _, entry := range entries {
		if !complete(entry) {
			continue
		}
		url, err := r.URL(entry.group, entry.route, entry.params, nil)
		if err != nil {
			return nil, err
		}
		section, ok := out[entry.section]
		if !ok {
			section = make(map[string]string)
			out[entry.section] = section
		}
		section[entry.key] = url
	}
	return out, nil
}

func complete(entry mapEntry) bool {
	for _, name := range Params(entry.group, entry.route) {
		if strings.TrimSpace(entry.params[name]) == "" {
			return false
		}
	}
	return true
}

func idParam(id string) map[string]string {
	return param("id", id)
}

func param(name, value string) map[string]string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return map[string]string{name: value}
}
