package manager

import (
	"github.com/user/watchstore/internal/model"
)

// CreateCategory inserts a category. sort_order defaults to 0.
func (m *Manager) CreateCategory(data model.Record) (model.Record, error) {
	rec := data.Clone()
	if _, ok := rec["sort_order"]; !ok {
		rec["sort_order"] = 0
	}
	return m.store.Insert(model.TableCategories, rec)
}

// Categories returns every category in sort order.
func (m *Manager) Categories() ([]model.Record, error) {
	return m.store.Find(model.TableCategories, model.Query{
		Order: []model.Order{model.Asc("sort_order"), model.Asc("name")},
	})
}

// CategoryBySlug finds a category by slug.
func (m *Manager) CategoryBySlug(slug string) (model.Record, bool, error) {
	return m.store.FindOne(model.TableCategories, []model.Condition{model.Eq("slug", slug)})
}

// ChildCategories returns the direct children of a category.
func (m *Manager) ChildCategories(parentID string) ([]model.Record, error) {
	return m.store.Find(model.TableCategories, model.Query{
		Where: []model.Condition{model.Eq("parent_id", parentID)},
		Order: []model.Order{model.Asc("sort_order")},
	})
}
