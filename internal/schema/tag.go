package schema

// tagRules types the columns of the tag-based log export.
var tagRules = RuleTable{
	"id_log":           CoerceString,
	"carrinho":         CoerceString,
	"transactionid":    CoerceString,
	"plataform":        CoerceString,
	"storeid":          CoerceString,
	"nm_brand":         CoerceString,
	"nm_category_l5":   CoerceString,
	"ean":              CoerceString,
	"nm_manufacturer":  CoerceString,
	"mktsaleid":        CoerceString,
	"productname":      CoerceString,
	"sku":              CoerceString,
	"nm_subbrand":      CoerceString,
	"value":            CoerceString,
	"zipcode":          CoerceString,
	"gender":           CoerceString,
	"productcondition": CoerceString,
	"quantity":         CoerceString,
	"deliverytax":      CoerceNumber,
	"deliverytime":     CoerceNumber,
	"deliverytype":     CoerceNumber,
	"parcels":          CoerceNumber,
	"paymenttype":      CoerceNumber,
	"cardflag":         CoerceNumber,
	"invoiceemissor":   CoerceNumber,
	"totalspent":       CoerceNumber,
	"datacomp":         CoerceDatetime,
	"birthday":         CoerceDatetime,
}
