package database

// Menu queries
const (
	InsertMenuItemSQL = `
		INSERT INTO menu_items (id, name, description, image, price, category, is_available, is_popular, sizes, extras)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	UpdateMenuItemSQL = `
		UPDATE menu_items
		SET name = $1, description = $2, image = $3, price = $4, category = $5,
			is_available = $6, is_popular = $7, sizes = $8, extras = $9, updated_at = NOW()
		WHERE id = $10`

	SetMenuItemAvailabilitySQL = `
		UPDATE menu_items SET is_available = $1, updated_at = NOW()
		WHERE id = $2`

	GetMenuItemSQL = `
		SELECT id, name, description, image, price, category, is_available, is_popular, sizes, extras, created_at, updated_at
		FROM menu_items WHERE id = $1`

	ListMenuItemsSQL = `
		SELECT id, name, description, image, price, category, is_available, is_popular, sizes, extras, created_at, updated_at
		FROM menu_items
		ORDER BY category, name`

	CountMenuItemsSQL = `SELECT COUNT(*) FROM menu_items`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (id, table_number, status, payment_method, subtotal, tax, total, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (id, order_id, menu_item_id, name, base_price, quantity, size, extras, special_instructions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	InsertOrderStatusLogSQL = `
		INSERT INTO order_status_log (order_id, status, changed_by)
		VALUES ($1, $2, $3)`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at`

	GetOrderSQL = `
		SELECT id, table_number, status, payment_method, subtotal, tax, total, special_instructions, created_at, updated_at
		FROM orders WHERE id = $1`

	ListOrdersSQL = `
		SELECT id, table_number, status, payment_method, subtotal, tax, total, special_instructions, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC`

	GetOrderItemsSQL = `
		SELECT id, menu_item_id, name, base_price, quantity, size, extras, special_instructions
		FROM order_items WHERE order_id = $1
		ORDER BY id`

	GetOrderStatusHistorySQL = `
		SELECT status, changed_by, changed_at
		FROM order_status_log
		WHERE order_id = $1
		ORDER BY changed_at ASC`
)

// Table queries
const (
	InsertTableSQL = `
		INSERT INTO tables (name, seats)
		VALUES ($1, $2)
		RETURNING id, created_at`

	ListTablesSQL = `
		SELECT id, name, seats, is_occupied, COALESCE(current_order_id, ''), created_at
		FROM tables
		ORDER BY id`

	DeleteTableSQL = `DELETE FROM tables WHERE id = $1`

	SetTableOccupiedSQL = `
		UPDATE tables SET is_occupied = $1, current_order_id = $2
		WHERE id = $3`

	FreeTableByOrderSQL = `
		UPDATE tables SET is_occupied = FALSE, current_order_id = NULL
		WHERE current_order_id = $1`
)

// Cart queries
const (
	GetCartSQL = `SELECT items FROM carts WHERE table_number = $1`

	UpsertCartSQL = `
		INSERT INTO carts (table_number, items, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (table_number) DO UPDATE SET items = $2, updated_at = NOW()`

	DeleteCartSQL = `DELETE FROM carts WHERE table_number = $1`
)

// Analytics queries
const (
	DailyStatsSQL = `
		SELECT TO_CHAR(created_at::date, 'YYYY-MM-DD') AS day, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE created_at >= NOW() - INTERVAL '7 days' AND status <> 'cancelled'
		GROUP BY day
		ORDER BY day`

	PopularItemsSQL = `
		SELECT oi.menu_item_id, MAX(oi.name), COUNT(DISTINCT oi.order_id) AS order_count
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status <> 'cancelled'
		GROUP BY oi.menu_item_id
		ORDER BY order_count DESC
		LIMIT $1`

	TableStatsSQL = `
		SELECT table_number, COUNT(*)
		FROM orders
		WHERE status <> 'cancelled'
		GROUP BY table_number
		ORDER BY table_number`

	OrderTotalsSQL = `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE status <> 'cancelled'`
)
