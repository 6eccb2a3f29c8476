package manager

import (
	"fmt"
	"time"

	"github.com/user/watchstore/internal/model"
)

// Order status values.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// statusStamps maps an order status to the timestamp field stamped when
// the order transitions into it.
var statusStamps = map[string]string{
	OrderPaid:      "paid_at",
	OrderShipped:   "shipped_at",
	OrderDelivered: "delivered_at",
	OrderCancelled: "cancelled_at",
}

// CreateOrder inserts an order with domain defaults: status=pending,
// payment_status=pending, and a generated order_number when absent.
func (m *Manager) CreateOrder(data model.Record) (model.Record, error) {
	rec := data.Clone()
	if _, ok := rec["status"]; !ok {
		rec["status"] = OrderPending
	}
	if _, ok := rec["payment_status"]; !ok {
		rec["payment_status"] = "pending"
	}
	if rec.String("order_number") == "" {
		rec["order_number"] = fmt.Sprintf("WS-%d", time.Now().UnixMilli())
	}
	return m.store.Insert(model.TableOrders, rec)
}

// UpdateOrderStatus sets an order's status and stamps the matching
// status timestamp (paid_at on paid, shipped_at on shipped, and so on).
// The paid transition also flips payment_status to paid. Returns the
// number of orders changed (0 when the id is unknown).
func (m *Manager) UpdateOrderStatus(id, status string) (int, error) {
	patch := model.Record{"status": status}
	if field, ok := statusStamps[status]; ok {
		patch[field] = model.Now()
	}
	if status == OrderPaid {
		patch["payment_status"] = "paid"
	}
	return m.store.UpdateByID(model.TableOrders, id, patch)
}

// OrderByNumber finds an order by its order number.
func (m *Manager) OrderByNumber(number string) (model.Record, bool, error) {
	return m.store.FindOne(model.TableOrders, []model.Condition{model.Eq("order_number", number)})
}

// OrdersByUser returns a user's orders, newest first.
func (m *Manager) OrdersByUser(userID string) ([]model.Record, error) {
	return m.store.Find(model.TableOrders, model.Query{
		Where: []model.Condition{model.Eq("user_id", userID)},
		Order: []model.Order{model.Desc(model.FieldCreatedAt)},
	})
}

// OrderItems returns an order's line items.
func (m *Manager) OrderItems(orderID string) ([]model.Record, error) {
	return m.store.Find(model.TableOrderItems, model.Query{
		Where: []model.Condition{model.Eq("order_id", orderID)},
	})
}

// AddOrderItem appends a line item to an order.
func (m *Manager) AddOrderItem(orderID, productID string, quantity int, unitPrice float64) (model.Record, error) {
	return m.store.Insert(model.TableOrderItems, model.Record{
		"order_id":   orderID,
		"product_id": productID,
		"quantity":   quantity,
		"unit_price": unitPrice,
	})
}
