// Copyright 2025 The salescope authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

// Canonical fields the normalizer maps raw columns onto
const (
	FieldProduct  = "product"
	FieldQuantity = "quantity"
	FieldPrice    = "price"
	FieldDate     = "date"
	FieldCustomer = "customer"

	// FieldRevenue is derived from quantity and price, never mapped directly
	FieldRevenue = "revenue"
)

// fieldSynonyms lists known raw column names per canonical field, ordered
// roughly by how common they are in uploaded sales sheets
var fieldSynonyms = map[string][]string{
	FieldProduct: {
		"product", "product_name", "productname", "item", "item_name", "itemname",
		"description", "product_description", "name", "title", "sku", "product_id",
		"productid", "item_id", "itemid", "product_code", "model", "part_number",
		"service", "service_name", "goods", "merchandise", "article",
	},
	FieldQuantity: {
		"quantity", "qty", "amount", "amount_sold", "units", "units_sold",
		"count", "number", "sold", "volume", "pieces", "pcs", "ordered",
		"quantity_sold", "sales_quantity", "unit_count", "total_units",
	},
	FieldPrice: {
		"price", "unit_price", "unitprice", "cost", "unit_cost", "unitcost",
		"sale_price", "saleprice", "selling_price", "sellingprice",
		"value", "rate", "fee", "charge", "total", "subtotal", "net_price",
		"gross_price", "list_price", "retail_price",
	},
	FieldDate: {
		"date", "order_date", "orderdate", "sale_date", "saledate", "timestamp",
		"datetime", "created_at", "sold_at", "purchased_at", "transaction_date",
		"transactiondate", "time", "created", "modified", "updated", "when",
		"delivery_date", "invoice_date", "billing_date",
	},
	FieldCustomer: {
		"customer", "customer_name", "customer_id", "customerid", "client",
		"client_name", "clientid", "user", "user_id", "buyer", "account",
	},
}

// dateLayouts is the ordered list of date formats tried during detection
var dateLayouts = []string{
	"2006-01-02", // ISO
	"2006/01/02",
	"02/01/2006", // UK
	"01/02/2006", // US
	"02-01-2006",
	"01-02-2006",
	"2006-01-02 15:04:05", // with time
	"2006/01/02 15:04:05",
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02T15:04:05", // ISO with T
}

// weekdayOrder is the fixed Monday-first ordering used for seasonality output
var weekdayOrder = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

const (
	// matchThreshold is the minimum score for a column to count as mapped
	matchThreshold = 0.5

	// fuzzyThreshold is the minimum character-overlap ratio for fuzzy matches
	fuzzyThreshold = 0.8

	// headerScanRows is how many leading rows are scanned during header recovery
	headerScanRows = 10

	// dateSampleRows is how many values are sampled for date format detection
	dateSampleRows = 10

	// syntheticCustomerGroup groups this many consecutive rows under one
	// synthetic customer when no customer column exists
	syntheticCustomerGroup = 3
)

const (
	// forecastHorizonDays is the number of future daily points projected
	forecastHorizonDays = 30

	// minForecastDays is the minimum distinct days for a real forecast
	minForecastDays = 7

	// highAccuracyDays is the history length at which accuracy is "High"
	highAccuracyDays = 20

	// minGrowthDays is the minimum distinct days for growth metrics
	minGrowthDays = 14

	// minAnomalyPoints is the minimum daily points per product for anomaly
	// detection
	minAnomalyPoints = 5

	// maxAnomalies caps the anomalies reported dataset-wide
	maxAnomalies = 5
)

// Segment labels, in tie-break priority order
const (
	SegmentHighValue  = "High Value"
	SegmentOccasional = "Occasional"
	SegmentOneTime    = "One-Time"
)

// Lifecycle stages
const (
	StageLaunch  = "Launch"
	StageGrowth  = "Growth"
	StageMature  = "Mature"
	StageDecline = "Decline"
)
