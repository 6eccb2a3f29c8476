package model

// TimestampMode controls which timestamp fields the store stamps on write.
type TimestampMode int

const (
	// TimestampsStandard stamps created_at on insert and updated_at on
	// insert and update.
	TimestampsStandard TimestampMode = iota
	// TimestampsAddedAt stamps added_at on insert and updated_at on
	// update. Used by cart_items.
	TimestampsAddedAt
	// TimestampsNone stamps nothing.
	TimestampsNone
)

// Column describes one field of a table, for SQL generation and export.
// The in-memory store itself is schemaless; columns document the intended
// shape and drive the sqlgen package.
type Column struct {
	Name string
	Type string // TEXT, REAL, INTEGER, BOOLEAN, JSON
}

// Table describes one named collection of records.
type Table struct {
	Name       string
	Timestamps TimestampMode
	Columns    []Column
}

// IndexDef declares a composite-key index over a table.
// Indexes are advisory: they are rebuilt wholesale when the store loads
// and document intended uniqueness, but the write path does not maintain
// or consult them.
type IndexDef struct {
	Name   string
	Table  string
	Fields []string
	Unique bool
}

// Schema is the ordered set of tables and declared indexes.
type Schema struct {
	Tables  []Table
	Indexes []IndexDef
}

// TableNames returns the table names in declaration order.
func (s *Schema) TableNames() []string {
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.Name
	}
	return names
}

// Table returns the descriptor for a table name.
func (s *Schema) Table(name string) (Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// HasTable reports whether the schema declares the table.
func (s *Schema) HasTable(name string) bool {
	_, ok := s.Table(name)
	return ok
}

// Storefront table names.
const (
	TableUsers         = "users"
	TableProducts      = "products"
	TableCategories    = "categories"
	TableOrders        = "orders"
	TableOrderItems    = "order_items"
	TableCartItems     = "cart_items"
	TableAddresses     = "addresses"
	TablePayments      = "payments"
	TableReviews       = "reviews"
	TableCoupons       = "coupons"
	TableSettings      = "settings"
	TableLogs          = "logs"
	TableCustomDesigns = "custom_designs"
	TableCustomOptions = "custom_options"
)

// DefaultSchema returns the storefront schema: every table the persisted
// blob carries, plus the declared indexes.
func DefaultSchema() *Schema {
	id := Column{Name: "id", Type: "TEXT"}
	createdAt := Column{Name: "created_at", Type: "TEXT"}
	updatedAt := Column{Name: "updated_at", Type: "TEXT"}

	return &Schema{
		Tables: []Table{
			{Name: TableUsers, Columns: []Column{
				id,
				{Name: "email", Type: "TEXT"},
				{Name: "password_hash", Type: "TEXT"},
				{Name: "first_name", Type: "TEXT"},
				{Name: "last_name", Type: "TEXT"},
				{Name: "phone", Type: "TEXT"},
				{Name: "email_verified", Type: "BOOLEAN"},
				{Name: "status", Type: "TEXT"},
				createdAt, updatedAt,
			}},
			{Name: TableProducts, Columns: []Column{
				id,
				{Name: "sku", Type: "TEXT"},
				{Name: "name", Type: "TEXT"},
				{Name: "slug", Type: "TEXT"},
				{Name: "description", Type: "TEXT"},
				{Name: "price", Type: "REAL"},
				{Name: "sale_price", Type: "REAL"},
				{Name: "currency", Type: "TEXT"},
				{Name: "category_id", Type: "TEXT"},
				{Name: "stock", Type: "INTEGER"},
				{Name: "images", Type: "JSON"},
				{Name: "tags", Type: "JSON"},
				{Name: "status", Type: "TEXT"},
				{Name: "is_featured", Type: "BOOLEAN"},
				createdAt, updatedAt,
			}},
			{Name: TableCategories, Columns: []Column{
				id,
				{Name: "name", Type: "TEXT"},
				{Name: "slug", Type: "TEXT"},
				{Name: "description", Type: "TEXT"},
				{Name: "parent_id", Type: "TEXT"},
				{Name: "sort_order", Type: "INTEGER"},
				createdAt, updatedAt,
			}},
			{Name: TableOrders, Columns: []Column{
				id,
				{Name: "order_number", Type: "TEXT"},
				{Name: "user_id", Type: "TEXT"},
				{Name: "status", Type: "TEXT"},
				{Name: "payment_status", Type: "TEXT"},
				{Name: "total", Type: "REAL"},
				{Name: "currency", Type: "TEXT"},
				{Name: "shipping_address_id", Type: "TEXT"},
				{Name: "paid_at", Type: "TEXT"},
				{Name: "shipped_at", Type: "TEXT"},
				{Name: "delivered_at", Type: "TEXT"},
				{Name: "cancelled_at", Type: "TEXT"},
				createdAt, updatedAt,
			}},
			{Name: TableOrderItems, Columns: []Column{
				id,
				{Name: "order_id", Type: "TEXT"},
				{Name: "product_id", Type: "TEXT"},
				{Name: "quantity", Type: "INTEGER"},
				{Name: "unit_price", Type: "REAL"},
				createdAt, updatedAt,
			}},
			{Name: TableCartItems, Timestamps: TimestampsAddedAt, Columns: []Column{
				id,
				{Name: "user_id", Type: "TEXT"},
				{Name: "session_id", Type: "TEXT"},
				{Name: "product_id", Type: "TEXT"},
				{Name: "quantity", Type: "INTEGER"},
				{Name: "customization_id", Type: "TEXT"},
				{Name: "added_at", Type: "TEXT"},
				updatedAt,
			}},
			{Name: TableAddresses, Columns: []Column{
				id,
				{Name: "user_id", Type: "TEXT"},
				{Name: "line1", Type: "TEXT"},
				{Name: "line2", Type: "TEXT"},
				{Name: "city", Type: "TEXT"},
				{Name: "postal_code", Type: "TEXT"},
				{Name: "country", Type: "TEXT"},
				{Name: "is_default", Type: "BOOLEAN"},
				createdAt, updatedAt,
			}},
			{Name: TablePayments, Columns: []Column{
				id,
				{Name: "order_id", Type: "TEXT"},
				{Name: "provider", Type: "TEXT"},
				{Name: "amount", Type: "REAL"},
				{Name: "currency", Type: "TEXT"},
				{Name: "status", Type: "TEXT"},
				{Name: "reference", Type: "TEXT"},
				createdAt, updatedAt,
			}},
			{Name: TableReviews, Columns: []Column{
				id,
				{Name: "product_id", Type: "TEXT"},
				{Name: "user_id", Type: "TEXT"},
				{Name: "rating", Type: "INTEGER"},
				{Name: "title", Type: "TEXT"},
				{Name: "body", Type: "TEXT"},
				{Name: "status", Type: "TEXT"},
				createdAt, updatedAt,
			}},
			{Name: TableCoupons, Columns: []Column{
				id,
				{Name: "code", Type: "TEXT"},
				{Name: "kind", Type: "TEXT"},
				{Name: "value", Type: "REAL"},
				{Name: "expires_at", Type: "TEXT"},
				{Name: "status", Type: "TEXT"},
				createdAt, updatedAt,
			}},
			{Name: TableSettings, Columns: []Column{
				id,
				{Name: "key", Type: "TEXT"},
				{Name: "value", Type: "JSON"},
				createdAt, updatedAt,
			}},
			{Name: TableLogs, Columns: []Column{
				id,
				{Name: "level", Type: "TEXT"},
				{Name: "event", Type: "TEXT"},
				{Name: "trace_id", Type: "TEXT"},
				{Name: "detail", Type: "JSON"},
				createdAt, updatedAt,
			}},
			{Name: TableCustomDesigns, Columns: []Column{
				id,
				{Name: "user_id", Type: "TEXT"},
				{Name: "session_id", Type: "TEXT"},
				{Name: "product_id", Type: "TEXT"},
				{Name: "options", Type: "JSON"},
				{Name: "preview_url", Type: "TEXT"},
				{Name: "status", Type: "TEXT"},
				createdAt, updatedAt,
			}},
			{Name: TableCustomOptions, Columns: []Column{
				id,
				{Name: "product_id", Type: "TEXT"},
				{Name: "group", Type: "TEXT"},
				{Name: "label", Type: "TEXT"},
				{Name: "value", Type: "TEXT"},
				{Name: "price_delta", Type: "REAL"},
				{Name: "sort_order", Type: "INTEGER"},
				createdAt, updatedAt,
			}},
		},
		Indexes: []IndexDef{
			{Name: "idx_users_email", Table: TableUsers, Fields: []string{"email"}, Unique: true},
			{Name: "idx_products_sku", Table: TableProducts, Fields: []string{"sku"}, Unique: true},
			{Name: "idx_products_slug", Table: TableProducts, Fields: []string{"slug"}, Unique: true},
			{Name: "idx_categories_slug", Table: TableCategories, Fields: []string{"slug"}, Unique: true},
			{Name: "idx_orders_number", Table: TableOrders, Fields: []string{"order_number"}, Unique: true},
			{Name: "idx_settings_key", Table: TableSettings, Fields: []string{"key"}, Unique: true},
			{Name: "idx_cart_owner_product", Table: TableCartItems, Fields: []string{"user_id", "session_id", "product_id"}},
			{Name: "idx_reviews_product", Table: TableReviews, Fields: []string{"product_id"}},
		},
	}
}
