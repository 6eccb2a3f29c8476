package manager

import (
	"github.com/user/watchstore/internal/model"
)

// CreateProduct inserts a product with domain defaults: status=active,
// is_featured=false, tags=[].
func (m *Manager) CreateProduct(data model.Record) (model.Record, error) {
	rec := data.Clone()
	if _, ok := rec["status"]; !ok {
		rec["status"] = "active"
	}
	if _, ok := rec["is_featured"]; !ok {
		rec["is_featured"] = false
	}
	if _, ok := rec["tags"]; !ok {
		rec["tags"] = []any{}
	}
	return m.store.Insert(model.TableProducts, rec)
}

// ProductBySKU finds a product by SKU.
func (m *Manager) ProductBySKU(sku string) (model.Record, bool, error) {
	return m.store.FindOne(model.TableProducts, []model.Condition{model.Eq("sku", sku)})
}

// ProductBySlug finds a product by slug.
func (m *Manager) ProductBySlug(slug string) (model.Record, bool, error) {
	return m.store.FindOne(model.TableProducts, []model.Condition{model.Eq("slug", slug)})
}

// ActiveProducts returns active products, newest first.
func (m *Manager) ActiveProducts(limit, offset int) ([]model.Record, error) {
	return m.store.Find(model.TableProducts, model.Query{
		Where:  []model.Condition{model.Eq("status", "active")},
		Order:  []model.Order{model.Desc(model.FieldCreatedAt)},
		Limit:  limit,
		Offset: offset,
	})
}

// ProductsByCategory returns active products in a category.
func (m *Manager) ProductsByCategory(categoryID string) ([]model.Record, error) {
	return m.store.Find(model.TableProducts, model.Query{
		Where: []model.Condition{
			model.Eq("category_id", categoryID),
			model.Eq("status", "active"),
		},
		Order: []model.Order{model.Asc("name")},
	})
}

// FeaturedProducts returns active featured products.
func (m *Manager) FeaturedProducts() ([]model.Record, error) {
	return m.store.Find(model.TableProducts, model.Query{
		Where: []model.Condition{
			model.Eq("is_featured", true),
			model.Eq("status", "active"),
		},
	})
}

// SearchProducts matches a case-insensitive substring against product
// names and returns active matches sorted by name.
func (m *Manager) SearchProducts(term string) ([]model.Record, error) {
	return m.store.Find(model.TableProducts, model.Query{
		Where: []model.Condition{
			model.Like("name", term),
			model.Eq("status", "active"),
		},
		Order: []model.Order{model.Asc("name")},
	})
}
