package sqlitedb

// schema is executed on every Open; every statement is idempotent.
// Money columns hold integer cents.
const schema = `
CREATE TABLE IF NOT EXISTS products (
    product_id          INTEGER PRIMARY KEY,
    product_name        TEXT    NOT NULL,
    product_category    TEXT    NOT NULL,
    product_image       TEXT    NOT NULL DEFAULT '',
    product_price_cents INTEGER NOT NULL CHECK (product_price_cents >= 0)
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(product_category, product_id);

-- No UNIQUE(username, product_id): adding the same product twice inserts a
-- second line item, and keyed updates/deletes apply to every matching row.
CREATE TABLE IF NOT EXISTS cart (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    username            TEXT    NOT NULL,
    product_id          INTEGER NOT NULL,
    product_image       TEXT    NOT NULL DEFAULT '',
    product_name        TEXT    NOT NULL DEFAULT '',
    product_price_cents INTEGER NOT NULL CHECK (product_price_cents >= 0),
    quantity            INTEGER NOT NULL CHECK (quantity >= 1),
    total_price_cents   INTEGER NOT NULL CHECK (total_price_cents >= 0),
    created_at          TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cart_user_product ON cart(username, product_id);

CREATE TABLE IF NOT EXISTS orders (
    order_id            INTEGER PRIMARY KEY AUTOINCREMENT,
    batch_id            TEXT    NOT NULL,
    idempotency_key     TEXT,
    username            TEXT    NOT NULL,
    product_id          INTEGER NOT NULL,
    product_image       TEXT    NOT NULL DEFAULT '',
    product_name        TEXT    NOT NULL DEFAULT '',
    product_price_cents INTEGER NOT NULL,
    quantity            INTEGER NOT NULL,
    total_price_cents   INTEGER NOT NULL,
    payment_method      TEXT    NOT NULL DEFAULT '',
    address             TEXT    NOT NULL DEFAULT '',
    city                TEXT    NOT NULL DEFAULT '',
    created_at          TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_username ON orders(username, order_id);
CREATE INDEX IF NOT EXISTS idx_orders_idempotency ON orders(username, idempotency_key);

CREATE TABLE IF NOT EXISTS users (
    username      TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    first_name    TEXT NOT NULL DEFAULT '',
    last_name     TEXT NOT NULL DEFAULT '',
    mobile_number TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL
);

-- Append-only: one row per placement state transition.
CREATE TABLE IF NOT EXISTS placement_logs (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    batch_id      TEXT    NOT NULL,
    username      TEXT    NOT NULL,
    status        TEXT    NOT NULL,
    item_count    INTEGER NOT NULL DEFAULT 0,
    error_message TEXT    NOT NULL DEFAULT '',
    trace_id      TEXT    NOT NULL DEFAULT '',
    span_id       TEXT    NOT NULL DEFAULT '',
    updated_at    TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_placement_logs_batch ON placement_logs(batch_id, id);
`
