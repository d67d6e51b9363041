package report

// Metric is one read-only aggregate check. Every query returns a single
// scalar value.
type Metric struct {
	Name  string
	Query string
}

// Category groups related metrics for presentation.
type Category struct {
	Name    string
	Metrics []Metric
}

// Battery returns the fixed data-quality check battery, in presentation
// order. The set is static: adding a metric is a code change, not config.
func Battery() []Category {
	return []Category{
		{
			Name: "Key Metrics",
			Metrics: []Metric{
				{"Total Orders",
					"SELECT COUNT(*) FROM raw_data.orders"},
				{"Orders with Reviews",
					`SELECT COUNT(DISTINCT o.order_id)
					 FROM raw_data.orders o
					 JOIN raw_data.order_reviews r ON o.order_id = r.order_id`},
				{"Unique Customers",
					"SELECT COUNT(DISTINCT customer_unique_id) FROM raw_data.customers"},
				{"Repeat Customers",
					`SELECT COUNT(*) FROM (
						SELECT customer_unique_id, COUNT(*) AS order_count
						FROM raw_data.customers
						GROUP BY customer_unique_id
						HAVING COUNT(*) > 1
					 ) t`},
				{"Active Sellers",
					"SELECT COUNT(DISTINCT seller_id) FROM raw_data.order_items"},
				{"Product Categories",
					"SELECT COUNT(DISTINCT product_category_name) FROM raw_data.products WHERE product_category_name IS NOT NULL"},
			},
		},
		{
			Name: "Time Range",
			Metrics: []Metric{
				{"First Order Date",
					"SELECT MIN(order_purchase_timestamp)::date FROM raw_data.orders"},
				{"Last Order Date",
					"SELECT MAX(order_purchase_timestamp)::date FROM raw_data.orders"},
				{"Data Coverage (months)",
					`SELECT EXTRACT(YEAR FROM age(
						MAX(order_purchase_timestamp),
						MIN(order_purchase_timestamp)
					 )) * 12 + EXTRACT(MONTH FROM age(
						MAX(order_purchase_timestamp),
						MIN(order_purchase_timestamp)
					 )) AS months FROM raw_data.orders`},
			},
		},
		{
			Name: "Financial Metrics",
			Metrics: []Metric{
				{"Total Revenue (BRL)",
					`SELECT ROUND(SUM(payment_value)::numeric, 2)
					 FROM raw_data.order_payments`},
				{"Average Order Value (BRL)",
					`SELECT ROUND(AVG(order_total)::numeric, 2)
					 FROM (
						SELECT order_id, SUM(payment_value) AS order_total
						FROM raw_data.order_payments
						GROUP BY order_id
					 ) t`},
				{"Average Product Price (BRL)",
					"SELECT ROUND(AVG(price)::numeric, 2) FROM raw_data.order_items"},
				{"Average Freight Cost (BRL)",
					"SELECT ROUND(AVG(freight_value)::numeric, 2) FROM raw_data.order_items"},
			},
		},
		{
			Name: "Customer Satisfaction",
			Metrics: []Metric{
				{"Average Review Score",
					"SELECT ROUND(AVG(review_score)::numeric, 2) FROM raw_data.order_reviews"},
				{"5-Star Reviews",
					`SELECT COUNT(*) || ' (' ||
					 ROUND(COUNT(*) * 100.0 / (SELECT COUNT(*) FROM raw_data.order_reviews), 1) || '%)'
					 FROM raw_data.order_reviews WHERE review_score = 5`},
				{"1-Star Reviews",
					`SELECT COUNT(*) || ' (' ||
					 ROUND(COUNT(*) * 100.0 / (SELECT COUNT(*) FROM raw_data.order_reviews), 1) || '%)'
					 FROM raw_data.order_reviews WHERE review_score = 1`},
			},
		},
		{
			Name: "Geographic Distribution",
			Metrics: []Metric{
				{"States with Orders",
					"SELECT COUNT(DISTINCT customer_state) FROM raw_data.customers"},
				{"Cities with Orders",
					"SELECT COUNT(DISTINCT customer_city) FROM raw_data.customers"},
				{"Top State by Orders",
					`SELECT customer_state || ' (' || COUNT(*) || ' orders)'
					 FROM raw_data.orders o
					 JOIN raw_data.customers c ON o.customer_id = c.customer_id
					 GROUP BY customer_state
					 ORDER BY COUNT(*) DESC
					 LIMIT 1`},
			},
		},
		{
			Name: "Order Status",
			Metrics: []Metric{
				{"Delivered Orders",
					`SELECT COUNT(*) || ' (' ||
					 ROUND(COUNT(*) * 100.0 / (SELECT COUNT(*) FROM raw_data.orders), 1) || '%)'
					 FROM raw_data.orders WHERE order_status = 'delivered'`},
				{"Cancelled Orders",
					`SELECT COUNT(*) || ' (' ||
					 ROUND(COUNT(*) * 100.0 / (SELECT COUNT(*) FROM raw_data.orders), 1) || '%)'
					 FROM raw_data.orders WHERE order_status = 'canceled'`},
			},
		},
	}
}
