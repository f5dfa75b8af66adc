package schema

import "github.com/JonMunkholm/SheetImport/internal/core"

// ProductFields defines the target shape for product catalog imports.
var ProductFields = core.Fields{
	{Key: "sku", Label: "SKU", Required: true, Type: core.FieldText},
	{Key: "product_name", Label: "Product Name", Required: true, Type: core.FieldText},
	{Key: "list_price", Label: "List Price", Type: core.FieldText},
	{Key: "active", Label: "Active", Type: core.FieldCheckbox},
	{
		Key:   "availability",
		Label: "Availability",
		Type:  core.FieldSelectOptions,
		Options: []core.SelectOption{
			{Label: "In Stock", Value: "in_stock"},
			{Label: "Backordered", Value: "backordered"},
			{Label: "Discontinued", Value: "discontinued"},
		},
	},
}

func init() {
	core.Register(core.Template{
		Key:    "products",
		Group:  "Catalog",
		Label:  "Products",
		Fields: ProductFields,
	})
}
