package manager

import (
	"github.com/user/watchstore/internal/model"
)

// CartIdentity names the owner of a cart line. An authenticated user id
// is preferred; an anonymous session id is the fallback. A request with
// neither matches and creates lines with no owner, which is how guest
// carts work before a session exists.
type CartIdentity struct {
	UserID    string
	SessionID string
}

// conditions returns the owner-matching conditions for this identity.
// Cart lines always store both fields, empty when unowned, so equality
// against "" matches the no-owner case too.
func (id CartIdentity) conditions() []model.Condition {
	switch {
	case id.UserID != "":
		return []model.Condition{model.Eq("user_id", id.UserID)}
	case id.SessionID != "":
		return []model.Condition{model.Eq("session_id", id.SessionID)}
	}
	return []model.Condition{
		model.Eq("user_id", ""),
		model.Eq("session_id", ""),
	}
}

// AddToCart adds a product to the identity's cart: an existing line for
// the same product is incremented, otherwise a new line is inserted.
// Quantity defaults to 1. Returns the resulting line.
func (m *Manager) AddToCart(ident CartIdentity, productID string, quantity int) (model.Record, error) {
	if quantity <= 0 {
		quantity = 1
	}

	conds := append(ident.conditions(), model.Eq("product_id", productID))
	existing, ok, err := m.store.FindOne(model.TableCartItems, conds)
	if err != nil {
		return nil, err
	}

	if ok {
		newQty := toInt(existing["quantity"]) + quantity
		if _, err := m.store.UpdateByID(model.TableCartItems, existing.ID(), model.Record{
			"quantity": newQty,
		}); err != nil {
			return nil, err
		}
		rec, _, err := m.store.FindByID(model.TableCartItems, existing.ID())
		return rec, err
	}

	return m.store.Insert(model.TableCartItems, model.Record{
		"user_id":    ident.UserID,
		"session_id": ident.SessionID,
		"product_id": productID,
		"quantity":   quantity,
	})
}

// CartItems returns the identity's cart lines, oldest first.
func (m *Manager) CartItems(ident CartIdentity) ([]model.Record, error) {
	return m.store.Find(model.TableCartItems, model.Query{
		Where: ident.conditions(),
		Order: []model.Order{model.Asc(model.FieldAddedAt)},
	})
}

// RemoveCartItem deletes one cart line by id.
func (m *Manager) RemoveCartItem(id string) error {
	_, err := m.store.DeleteByID(model.TableCartItems, id)
	return err
}

// ClearCart removes every line owned by the identity and returns the
// removed count.
func (m *Manager) ClearCart(ident CartIdentity) (int, error) {
	return m.store.Delete(model.TableCartItems, ident.conditions())
}

// MergeGuestCart moves a session's lines onto a user after sign-in.
// Lines for products already in the user's cart have their quantities
// combined.
func (m *Manager) MergeGuestCart(sessionID, userID string) error {
	guestLines, err := m.CartItems(CartIdentity{SessionID: sessionID})
	if err != nil {
		return err
	}

	for _, line := range guestLines {
		_, err := m.AddToCart(CartIdentity{UserID: userID},
			line.String("product_id"), toInt(line["quantity"]))
		if err != nil {
			return err
		}
		if err := m.RemoveCartItem(line.ID()); err != nil {
			return err
		}
	}
	return nil
}

// toInt reads a count that may be an int (in-memory insert) or a
// float64 (decoded from the blob).
func toInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return 0
}
