package database

// User queries
const (
	InsertUserSQL = `
		INSERT INTO users (name, email, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	GetUserByEmailSQL = `
		SELECT id, name, email, phone, password_hash, role, created_at, updated_at
		FROM users WHERE email = $1`

	GetUserByIDSQL = `
		SELECT id, name, email, phone, password_hash, role, created_at, updated_at
		FROM users WHERE id = $1`

	InsertCartSQL = `
		INSERT INTO carts (user_id) VALUES ($1) RETURNING id`
)

// Category queries
const (
	InsertCategorySQL = `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	ListCategoriesSQL = `
		SELECT id, name, description, created_at, updated_at
		FROM categories ORDER BY name ASC`

	GetCategoryByIDSQL = `
		SELECT id, name, description, created_at, updated_at
		FROM categories WHERE id = $1`

	UpdateCategorySQL = `
		UPDATE categories
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, created_at, updated_at`

	DeleteCategorySQL = `
		DELETE FROM categories WHERE id = $1`
)

// Menu queries
const (
	InsertMenuSQL = `
		INSERT INTO menus (name, description, price, category_id, is_available, stock, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	GetMenuByIDSQL = `
		SELECT id, name, description, price, category_id, is_available, stock, image_url,
		       created_at, updated_at, deleted_at
		FROM menus WHERE id = $1 AND deleted_at IS NULL`

	UpdateMenuSQL = `
		UPDATE menus
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price),
		    category_id = COALESCE($5, category_id),
		    is_available = COALESCE($6, is_available),
		    stock = COALESCE($7, stock),
		    image_url = COALESCE($8, image_url),
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id, name, description, price, category_id, is_available, stock, image_url,
		          created_at, updated_at, deleted_at`

	SoftDeleteMenuSQL = `
		UPDATE menus SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`
)

// Cart queries
const (
	GetCartByUserSQL = `
		SELECT id, user_id FROM carts WHERE user_id = $1`

	LockCartByUserSQL = `
		SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`

	GetCartLinesSQL = `
		SELECT ci.id, ci.cart_id, ci.menu_id, ci.quantity, m.price, m.name, m.image_url
		FROM cart_items ci
		JOIN menus m ON m.id = ci.menu_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id ASC`

	UpsertCartLineSQL = `
		INSERT INTO cart_items (cart_id, menu_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, menu_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`

	SetCartLineQuantitySQL = `
		UPDATE cart_items SET quantity = $3
		WHERE cart_id = $1 AND menu_id = $2`

	DeleteCartLineSQL = `
		DELETE FROM cart_items WHERE cart_id = $1 AND menu_id = $2`

	ClearCartSQL = `
		DELETE FROM cart_items WHERE cart_id = $1`
)

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (number, user_id, status, total_price, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	InsertOrderLineSQL = `
		INSERT INTO order_items (order_id, menu_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	GetOrderByIDSQL = `
		SELECT id, number, user_id, status, total_price, address, created_at, updated_at
		FROM orders WHERE id = $1`

	GetOrderByNumberSQL = `
		SELECT id, number, user_id, status, total_price, address, created_at, updated_at
		FROM orders WHERE number = $1`

	ListOrdersByUserSQL = `
		SELECT id, number, user_id, status, total_price, address, created_at, updated_at
		FROM orders WHERE user_id = $1
		ORDER BY created_at DESC`

	GetOrderLinesSQL = `
		SELECT oi.id, oi.order_id, oi.menu_id, oi.quantity, oi.unit_price, oi.subtotal,
		       m.name, m.image_url
		FROM order_items oi
		JOIN menus m ON m.id = oi.menu_id
		WHERE oi.order_id = $1
		ORDER BY oi.id ASC`

	LockOrderByNumberSQL = `
		SELECT id, status FROM orders WHERE number = $1 FOR UPDATE`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
)
