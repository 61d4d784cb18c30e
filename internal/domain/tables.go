package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	// Catalog
	&Product{},
	// Inventory
	&InventoryRecord{},
	&StockMovement{},
	// Checkout
	&Order{},
	&OrderItem{},
	&PaymentTransaction{},
}
