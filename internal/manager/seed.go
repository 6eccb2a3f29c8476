package manager

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/user/watchstore/internal/model"
)

//go:embed seed.json
var bundledSeed []byte

// SeedDocument is the bundled first-run dataset: category, product, and
// user records minus generated fields.
type SeedDocument struct {
	Categories []model.Record `json:"categories"`
	Products   []model.Record `json:"products"`
	Users      []model.Record `json:"users"`
}

// SeedCounts reports what a seed run inserted. Skipped is true when the
// store already had data and seeding did not run.
type SeedCounts struct {
	Skipped    bool
	Categories int
	Products   int
	Users      int
}

// SeedIfEmpty populates the store on first run. Seeding only happens
// when users, categories, and products are ALL empty; otherwise it is a
// no-op. Within a run each record is skipped when a matching SKU or id
// (products) or email (users) already exists, so re-running against the
// same document inserts nothing. A fetch or parse failure aborts with
// an error; the caller treats that as an initialization failure.
func (m *Manager) SeedIfEmpty() (SeedCounts, error) {
	var counts SeedCounts

	empty, err := m.coreTablesEmpty()
	if err != nil {
		return counts, err
	}
	if !empty {
		counts.Skipped = true
		return counts, nil
	}

	doc, err := m.loadSeed()
	if err != nil {
		return counts, err
	}

	for _, cat := range doc.Categories {
		if _, err := m.CreateCategory(cat); err != nil {
			return counts, fmt.Errorf("failed to seed category: %w", err)
		}
		counts.Categories++
	}

	for _, prod := range doc.Products {
		exists, err := m.productExists(prod)
		if err != nil {
			return counts, err
		}
		if exists {
			continue
		}
		if _, err := m.CreateProduct(prod); err != nil {
			return counts, fmt.Errorf("failed to seed product: %w", err)
		}
		counts.Products++
	}

	for _, user := range doc.Users {
		_, exists, err := m.UserByEmail(user.String("email"))
		if err != nil {
			return counts, err
		}
		if exists {
			continue
		}
		if _, err := m.CreateUser(user); err != nil {
			return counts, fmt.Errorf("failed to seed user: %w", err)
		}
		counts.Users++
	}

	return counts, nil
}

// coreTablesEmpty reports whether users, categories, and products hold
// no records.
func (m *Manager) coreTablesEmpty() (bool, error) {
	for _, table := range []string{model.TableUsers, model.TableCategories, model.TableProducts} {
		n, err := m.store.Count(table, nil)
		if err != nil {
			return false, err
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}

// productExists matches by SKU first, then by explicit id.
func (m *Manager) productExists(prod model.Record) (bool, error) {
	if sku := prod.String("sku"); sku != "" {
		if _, ok, err := m.ProductBySKU(sku); err != nil || ok {
			return ok, err
		}
	}
	if id := prod.ID(); id != "" {
		if _, ok, err := m.store.FindByID(model.TableProducts, id); err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// loadSeed reads the configured seed path, falling back to the bundled
// document.
func (m *Manager) loadSeed() (SeedDocument, error) {
	data := bundledSeed
	if m.cfg.SeedPath != "" {
		var err error
		data, err = os.ReadFile(m.cfg.SeedPath)
		if err != nil {
			return SeedDocument{}, fmt.Errorf("failed to read seed document %s: %w", m.cfg.SeedPath, err)
		}
	}

	var doc SeedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return SeedDocument{}, fmt.Errorf("%w: %v", model.ErrSeedParse, err)
	}
	return doc, nil
}
