package schema

// amazonRules types the columns of the Amazon marketplace feed. The feed has
// a single fixed schema, so the pipe-delimited reader forces this table
// regardless of header content.
var amazonRules = RuleTable{
	"asin":                               CoerceString,
	"ean1":                               CoerceString,
	"dest_country":                       CoerceString,
	"item_name":                          CoerceString,
	"source_country":                     CoerceString,
	"date":                               CoerceDatetime,
	"date_granularity":                   CoerceString,
	"business_group":                     CoerceString,
	"postal_code":                        CoerceString,
	"base_currency_code":                 CoerceString,
	"our_price":                          CoerceNumber,
	"distinct_order_count":               CoerceNumber,
	"shipped_units":                      CoerceNumber,
	"shipped_sales":                      CoerceNumber,
	"shipped_sales_w_tax":                CoerceNumber,
	"shipped_sales_after_discount":       CoerceNumber,
	"shipped_sales_w_tax_after_discount": CoerceNumber,
	"promotion":                          CoerceString,
}
