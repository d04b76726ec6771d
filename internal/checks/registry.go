package checks

import "github.com/quintile-data/edive/internal/schema"

// Payment-type codes the upstream stores emit. Anything else is flagged.
var knownPaymentTypes = []float64{1, 2, 3, 4, 5, 6}

// totalspentCeiling flags single transactions above this amount as suspect.
const totalspentCeiling = 100000

// ForSource returns the ordered check battery registered for a source type,
// or nil when the source carries no battery. The API and TAG lists differ in
// membership and order on purpose: the two exports disagree on column naming
// and on which columns pack pipe-joined carts.
func ForSource(source schema.SourceType) []Check {
	switch source {
	case schema.SourceAPI:
		return apiChecks()
	case schema.SourceTag:
		return tagChecks()
	case schema.SourceAmazon:
		return amazonChecks()
	default:
		return nil
	}
}

// apiChecks is the battery for the API transaction-log export. One row per
// sold item; monetary and code columns are already numeric after coercion.
func apiChecks() []Check {
	return []Check{
		ColumnsCompleteness(),
		SalesValidation("sales_validation", "id_transaction", "vl_totalspent"),
		PaymentTypeValidation("paymenttype_validation", "cd_paymenttype", knownPaymentTypes),
		TotalspentMatchTotal("totalspent_match_total", "vl_totalspent", "vl_product", "qt_product"),
		ZipcodeLength("zipcode_length", "cd_zipcode", 8),
		DuplicatedIDs("duplicated_ids", "id_transaction"),
		SalesValidationSplit("sales_validation_split", "vl_product"),
		Conformity("platform_conformity", "nm_platform"),
		Conformity("value_conformity", "vl_product"),
		Conformity("quantity_conformity", "qt_product"),
		Conformity("totalspent_conformity", "vl_totalspent"),
		Conformity("deliverytax_conformity", "vl_deliverytax"),
		Conformity("deliverytime_conformity", "qt_deliverytime"),
		Conformity("deliverytype_conformity", "nm_deliverytype"),
		Conformity("paymenttype_conformity", "cd_paymenttype"),
		TotalRows(),
		TotalColumns(),
		FirstDay("dt_transaction"),
		LastDay("dt_transaction"),
		MissingDays("dt_transaction"),
		Conformity("cardflag_conformity", "cd_cardflag"),
		Conformity("invoiceemissor_conformity", "cd_invoiceemissor"),
		Conformity("productcondition_conformity", "cd_productcondition"),
		DuplicatedAll(),
		Threshold("totalspent_threshold", "vl_totalspent", totalspentCeiling),
		Outlier("totalspent_outlier", "vl_totalspent"),
		UndefinedCount(),
		MarketplaceAnalysis("nm_mktsaleid"),
	}
}

// tagChecks is the battery for the tag-based log export. One row per cart;
// value, quantity, productname, sku and ean pack pipe-joined per-item lists.
func tagChecks() []Check {
	cartCols := []string{"value", "quantity", "productname", "sku", "ean"}
	return []Check{
		ColumnsCompleteness(),
		SalesValidation("sales_validation", "transactionid", "totalspent"),
		PaymentTypeValidation("paymenttype_validation", "paymenttype", knownPaymentTypes),
		SizeComparison("size_comparison", "value", "quantity", "productname"),
		TotalspentMatchTotal("totalspent_match_total", "totalspent", "value", "quantity"),
		ZipcodeLength("zipcode_length", "zipcode", 8),
		DuplicatedIDs("duplicated_ids", "transactionid"),
		WrongColumnsWithPipe(cartCols...),
		SalesValidationSplit("sales_validation_split", "value"),
		RepeatedProductName("repeated_productname", "productname"),
		Conformity("platform_conformity", "plataform"),
		Conformity("gender_conformity", "gender"),
		Conformity("parcels_conformity", "parcels"),
		Conformity("value_conformity", "value"),
		Conformity("quantity_conformity", "quantity"),
		Conformity("totalspent_conformity", "totalspent"),
		Conformity("deliverytax_conformity", "deliverytax"),
		Conformity("deliverytime_conformity", "deliverytime"),
		Conformity("deliverytype_conformity", "deliverytype"),
		Conformity("paymenttype_conformity", "paymenttype"),
		TotalRows(),
		TotalColumns(),
		FirstDay("datacomp"),
		LastDay("datacomp"),
		MissingDays("datacomp"),
		Conformity("prodcondition_conformity", "productcondition"),
		Conformity("invoiceemissor_conformity", "invoiceemissor"),
		Conformity("cardflag_conformity", "cardflag"),
		DuplicatedAll(),
		Threshold("totalspent_threshold", "totalspent", totalspentCeiling),
		Outlier("totalspent_outlier", "totalspent"),
		UndefinedCount(),
		MarketplaceAnalysis("mktsaleid"),
		NullRows("storeid_null", "storeid"),
	}
}

// amazonChecks is the battery for the Amazon marketplace feed. The feed is
// pre-aggregated per asin and day, so the battery leans on coverage and
// magnitude rather than per-transaction consistency.
func amazonChecks() []Check {
	return []Check{
		ColumnsCompleteness(),
		DuplicatedKeys("duplicated_asin_date", "asin", "date", "postal_code"),
		NullRows("postal_code_null", "postal_code"),
		Conformity("currency_conformity", "base_currency_code"),
		Conformity("granularity_conformity", "date_granularity"),
		TotalRows(),
		TotalColumns(),
		FirstDay("date"),
		LastDay("date"),
		MissingDays("date"),
		DuplicatedAll(),
		Outlier("our_price_outlier", "our_price"),
		Outlier("shipped_sales_outlier", "shipped_sales"),
		UndefinedCount(),
	}
}
