// Package schema holds the static registry mapping source CSV file names
// to their target table definitions. The registry is plain data: it can be
// validated and tested without touching the filesystem or the store.
package schema

import (
	"fmt"
	"sort"

	"github.com/olistdata/olistload/pkg/olistload"
)

// Registry is a read-only mapping from source file name to TableConfig.
type Registry map[string]olistload.TableConfig

// Lookup returns the TableConfig for a source file name.
// A miss is an expected condition for unregistered files in directory
// scans and is reported via olistload.ErrUnknownSource.
func (r Registry) Lookup(fileName string) (olistload.TableConfig, error) {
	cfg, ok := r[fileName]
	if !ok {
		return olistload.TableConfig{}, fmt.Errorf("%q: %w", fileName, olistload.ErrUnknownSource)
	}
	return cfg, nil
}

// SourceFiles returns the registered file names in stable sorted order.
// Load runs iterate tables in this order.
func (r Registry) SourceFiles() []string {
	files := make([]string, 0, len(r))
	for f := range r {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Validate checks every entry for internal consistency and for agreement
// between map key and SourceFile.
func (r Registry) Validate() error {
	for fileName, cfg := range r {
		if cfg.SourceFile != fileName {
			return fmt.Errorf("registry key %q does not match SourceFile %q: %w",
				fileName, cfg.SourceFile, olistload.ErrInvalidConfig)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("registry entry %q: %w", fileName, err)
		}
	}
	return nil
}

// Default returns the registry for the nine Olist e-commerce extracts.
// Zip code prefixes are declared string to preserve leading zeros.
func Default() Registry {
	return Registry{
		"olist_customers_dataset.csv": {
			SourceFile: "olist_customers_dataset.csv",
			TableName:  "customers",
			Schema:     olistload.SchemaRawData,
			ColumnTypes: map[string]olistload.DType{
				"customer_id":              olistload.DTypeString,
				"customer_unique_id":       olistload.DTypeString,
				"customer_zip_code_prefix": olistload.DTypeString,
				"customer_city":            olistload.DTypeString,
				"customer_state":           olistload.DTypeString,
			},
			PrimaryKey: "customer_id",
			Indexes:    []string{"customer_unique_id", "customer_state", "customer_zip_code_prefix"},
		},

		"olist_geolocation_dataset.csv": {
			SourceFile: "olist_geolocation_dataset.csv",
			TableName:  "geolocation",
			Schema:     olistload.SchemaRawData,
			ColumnTypes: map[string]olistload.DType{
				"geolocation_zip_code_prefix": olistload.DTypeString,
				"geolocation_lat":             olistload.DTypeFloat,
				"geolocation_lng":             olistload.DTypeFloat,
				"geolocation_city":            olistload.DTypeString,
				"geolocation_state":           olistload.DTypeString,
			},
			// No unique identifier in the source.
			PrimaryKey: "",
			Indexes:    []string{"geolocation_zip_code_prefix", "geolocation_state"},
		},

		"olist_orders_dataset.csv": {
			SourceFile: "olist_orders_dataset.csv",
			TableName:  "orders",
			Schema:     olistload.SchemaRawData,
			ColumnTypes: map[string]olistload.DType{
				"order_id":                      olistload.DTypeString,
				"customer_id":                   olistload.DTypeString,
				"order_status":                  olistload.DTypeString,
				"order_purchase_timestamp":      olistload.DTypeDatetime,
				"order_approved_at":             olistload.DTypeDatetime,
				"order_delivered_carrier_date":  olistload.DTypeDatetime,
				"order_delivered_customer_date": olistload.DTypeDatetime,
				"order_estimated_delivery_date": olistload.DTypeDatetime,
			},
			TemporalColumns: []string{
				"order_purchase_timestamp",
				"order_approved_at",
				"order_delivered_carrier_date",
				"order_delivered_customer_date",
				"order_estimated_delivery_date",
			},
			PrimaryKey: "order_id",
			Indexes:    []string{"customer_id", "order_status", "order_purchase_timestamp"},
		},

		"olist_order_items_dataset.csv": {
			SourceFile: "olist_order_items_dataset.csv",
			TableName:  "order_items",
			Schema:     olistload.SchemaRawData,
			ColumnTypes: map[string]olistload.DType{
				"order_id":            olistload.DTypeString,
				"order_item_id":       olistload.DTypeInt,
				"product_id":          olistload.DTypeString,
				"seller_id":           olistload.DTypeString,
				"shipping_limit_date": olistload.DTypeDatetime,
				"price":               olistload.DTypeFloat,
				"freight_value":       olistload.DTypeFloat,
			},
			TemporalColumns: []string{"shipping_limit_date"},
			// Composite key: order_id + order_item_id.
			PrimaryKey: "",
			Indexes:    []string{"order_id", "product_id", "seller_id"},
		},

		"olist_order_payments_dataset.csv": {
			SourceFile: "olist_order_payments_dataset.csv",
			TableName:  "order_payments",
			Schema:     olistload.SchemaRawData,
			ColumnTypes: map[string]olistload.DType{
				"order_id":             olistload.DTypeString,
				"payment_sequential":   olistload.DTypeInt,
				"payment_type":         olistload.DTypeString,
				"payment_installments": olistload.DTypeInt,
				"payment_value":        olistload.DTypeFloat,
			},
			// Composite key: order_id + payment_sequential.
			PrimaryKey: "",
			Indexes:    []string{"order_id", "payment_type"},
		},

		"olist_order_reviews_dataset.csv": {
			SourceFile: "olist_order_reviews_dataset.csv",
			TableName:  "order_reviews",
			Schema:     olistload.SchemaRawData,
			ColumnTypes: map[string]olistload.DType{
				"review_id":               olistload.DTypeString,
				"order_id":                olistload.DTypeString,
				"review_score":            olistload.DTypeInt,
				"review_comment_title":    olistload.DTypeString,
				"review_comment_message":  olistload.DTypeString,
				"review_creation_date":    olistload.DTypeDatetime,
				"review_answer_timestamp": olistload.DTypeDatetime,
			},
			TemporalColumns: []string{"review_creation_date", "review_answer_timestamp"},
			PrimaryKey:      "review_id",
			Indexes:         []string{"order_id", "review_score", "review_creation_date"},
		},

		"olist_products_dataset.csv": {
			SourceFile: "olist_products_dataset.csv",
			TableName:  "products",
			Schema:     olistload.SchemaRawData,
			ColumnTypes: map[string]olistload.DType{
				"product_id":            olistload.DTypeString,
				"product_category_name": olistload.DTypeString,
				// The misspelled column names below are the source's own.
				"product_name_lenght":        olistload.DTypeFloat,
				"product_description_lenght": olistload.DTypeFloat,
				"product_photos_qty":         olistload.DTypeFloat,
				"product_weight_g":           olistload.DTypeFloat,
				"product_length_cm":          olistload.DTypeFloat,
				"product_height_cm":          olistload.DTypeFloat,
				"product_width_cm":           olistload.DTypeFloat,
			},
			PrimaryKey: "product_id",
			Indexes:    []string{"product_category_name"},
		},

		"olist_sellers_dataset.csv": {
			SourceFile: "olist_sellers_dataset.csv",
			TableName:  "sellers",
			Schema:     olistload.SchemaRawData,
			ColumnTypes: map[string]olistload.DType{
				"seller_id":              olistload.DTypeString,
				"seller_zip_code_prefix": olistload.DTypeString,
				"seller_city":            olistload.DTypeString,
				"seller_state":           olistload.DTypeString,
			},
			PrimaryKey: "seller_id",
			Indexes:    []string{"seller_state", "seller_zip_code_prefix"},
		},

		"product_category_name_translation.csv": {
			SourceFile: "product_category_name_translation.csv",
			TableName:  "product_category_translation",
			Schema:     olistload.SchemaRawData,
			ColumnTypes: map[string]olistload.DType{
				"product_category_name":         olistload.DTypeString,
				"product_category_name_english": olistload.DTypeString,
			},
			PrimaryKey: "product_category_name",
		},
	}
}
