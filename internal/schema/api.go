package schema

// apiRules types the columns of the API transaction-log export.
var apiRules = RuleTable{
	"id_api_hit":          CoerceString,
	"id_store":            CoerceString,
	"id_transaction":      CoerceString,
	"dt_transaction":      CoerceDatetime,
	"nm_platform":         CoerceString,
	"nm_gender":           CoerceString,
	"cd_zipcode":          CoerceString,
	"qt_parcel":           CoerceNumber,
	"vl_totalspent":       CoerceNumber,
	"cd_paymenttype":      CoerceNumber,
	"cd_cardflag":         CoerceNumber,
	"cd_invoiceemissor":   CoerceNumber,
	"nm_age":              CoerceNumber,
	"nm_birthday":         CoerceDatetime,
	"nm_lastmile":         CoerceNumber,
	"id_log":              CoerceString,
	"dt_process_header":   CoerceDatetime,
	"dt_process_detail":   CoerceDatetime,
	"dt_import":           CoerceDatetime,
	"cd_sku":              CoerceString,
	"cd_ean":              CoerceString,
	"nm_product":          CoerceString,
	"vl_product":          CoerceNumber,
	"qt_product":          CoerceNumber,
	"cd_productcondition": CoerceNumber,
	"nm_deliverytype":     CoerceNumber,
	"vl_deliverytax":      CoerceNumber,
	"qt_deliverytime":     CoerceNumber,
	"nm_mktsaleid":        CoerceString,
	"nm_model":            CoerceString,
	"nm_manufacturer":     CoerceString,
	"nm_brand":            CoerceString,
	"nm_subbrand":         CoerceString,
	"nm_catl1":            CoerceString,
	"nm_catl2":            CoerceString,
	"nm_catl3":            CoerceString,
	"nm_catl4":            CoerceString,
	"nm_catl5":            CoerceString,
	"tx_fulldescription":  CoerceString,
	"tx_fullpath":         CoerceString,
	"cd_pack":             CoerceNumber,
	"cd_promo":            CoerceNumber,
	"cd_ownbrand":         CoerceNumber,
	"cd_intll":            CoerceNumber,
	"nm_origin":           CoerceString,
}
