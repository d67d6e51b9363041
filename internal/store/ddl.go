package store

const (
	viewOrderSummary       = "v_order_summary"
	viewProductPerformance = "v_product_performance"
	viewSellerPerformance  = "v_seller_performance"
)

// documentationStatements records the star-schema relationships between
// the loaded tables as comments. Foreign keys are deliberately absent:
// the extracts contain orphaned references.
var documentationStatements = []string{
	`COMMENT ON TABLE raw_data.orders IS
		'Core orders table - central fact table connecting customers, payments, reviews, and items'`,

	`COMMENT ON TABLE raw_data.order_items IS
		'Order line items - each row is a product in an order (order_id -> orders, product_id -> products, seller_id -> sellers)'`,

	`COMMENT ON TABLE raw_data.customers IS
		'Customer dimension - unique customer_id per order, customer_unique_id identifies repeat customers'`,

	`COMMENT ON TABLE raw_data.sellers IS
		'Seller dimension - marketplace sellers fulfilling orders'`,

	`COMMENT ON TABLE raw_data.products IS
		'Product dimension - catalog of products sold on platform'`,

	`COMMENT ON TABLE raw_data.order_reviews IS
		'Customer reviews - one review per order (order_id -> orders)'`,

	`COMMENT ON TABLE raw_data.order_payments IS
		'Payment transactions - can have multiple payments per order (order_id -> orders)'`,

	`COMMENT ON TABLE raw_data.geolocation IS
		'Geographic coordinates for Brazilian zip codes - join on zip_code_prefix'`,

	`COMMENT ON TABLE raw_data.product_category_translation IS
		'Translation table for product categories from Portuguese to English'`,

	`COMMENT ON COLUMN raw_data.customers.customer_unique_id IS
		'Identifies same customer across multiple orders - use for repeat purchase analysis'`,

	`COMMENT ON COLUMN raw_data.orders.order_status IS
		'Order lifecycle: created -> approved -> invoiced -> shipped -> delivered (or cancelled/unavailable)'`,

	`COMMENT ON COLUMN raw_data.order_items.order_item_id IS
		'Sequential number of item within the order (1, 2, 3...)'`,

	`COMMENT ON COLUMN raw_data.order_payments.payment_sequential IS
		'Sequential number for multiple payments on same order'`,
}

// summaryViews are convenience views over the loaded tables for quick
// analysis. CREATE OR REPLACE keeps re-runs idempotent.
var summaryViews = map[string]string{
	viewOrderSummary: `
		CREATE OR REPLACE VIEW raw_data.v_order_summary AS
		SELECT
			o.order_id,
			o.customer_id,
			c.customer_unique_id,
			c.customer_city,
			c.customer_state,
			o.order_status,
			o.order_purchase_timestamp,
			o.order_delivered_customer_date,
			EXTRACT(EPOCH FROM (o.order_delivered_customer_date - o.order_purchase_timestamp))/86400 AS delivery_days,
			COUNT(DISTINCT oi.product_id) AS product_count,
			SUM(oi.price) AS total_product_value,
			SUM(oi.freight_value) AS total_freight_value,
			SUM(oi.price + oi.freight_value) AS total_order_value
		FROM raw_data.orders o
		LEFT JOIN raw_data.customers c ON o.customer_id = c.customer_id
		LEFT JOIN raw_data.order_items oi ON o.order_id = oi.order_id
		GROUP BY o.order_id, o.customer_id, c.customer_unique_id,
		         c.customer_city, c.customer_state, o.order_status,
		         o.order_purchase_timestamp, o.order_delivered_customer_date`,

	viewProductPerformance: `
		CREATE OR REPLACE VIEW raw_data.v_product_performance AS
		SELECT
			p.product_id,
			p.product_category_name,
			pt.product_category_name_english,
			COUNT(DISTINCT oi.order_id) AS times_ordered,
			SUM(oi.price) AS total_revenue,
			AVG(oi.price) AS avg_price,
			AVG(r.review_score) AS avg_review_score
		FROM raw_data.products p
		LEFT JOIN raw_data.order_items oi ON p.product_id = oi.product_id
		LEFT JOIN raw_data.order_reviews r ON oi.order_id = r.order_id
		LEFT JOIN raw_data.product_category_translation pt
			ON p.product_category_name = pt.product_category_name
		GROUP BY p.product_id, p.product_category_name, pt.product_category_name_english`,

	viewSellerPerformance: `
		CREATE OR REPLACE VIEW raw_data.v_seller_performance AS
		SELECT
			s.seller_id,
			s.seller_city,
			s.seller_state,
			COUNT(DISTINCT oi.order_id) AS total_orders,
			COUNT(DISTINCT oi.product_id) AS unique_products_sold,
			SUM(oi.price) AS total_revenue,
			AVG(oi.price) AS avg_product_price,
			AVG(oi.freight_value) AS avg_freight_value,
			AVG(r.review_score) AS avg_review_score
		FROM raw_data.sellers s
		LEFT JOIN raw_data.order_items oi ON s.seller_id = oi.seller_id
		LEFT JOIN raw_data.order_reviews r ON oi.order_id = r.order_id
		GROUP BY s.seller_id, s.seller_city, s.seller_state`,
}
