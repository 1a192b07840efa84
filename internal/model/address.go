package model

import "hestia-ledger-api/pkg/addr"

// Derivation tags, one per entity kind. Wire constants: the derived address is
// the only way a record is located, so a tag change strands every record of
// that kind.
const (
	TagProtocol   = "protocol"
	TagAdmin      = "admin"
	TagRestaurant = "restaurant"
	TagEmployee   = "employee"
	TagInventory  = "inventory"
	TagMenuItem   = "menu_item"
	TagCustomer   = "customer"
	TagOrder      = "order"
)

// ProtocolAddress derives the protocol singleton slot.
func ProtocolAddress() (addr.Address, uint8) {
	return addr.Derive(TagProtocol)
}

// AdminAddress derives the admin profile slot for an identity.
func AdminAddress(admin Identity) (addr.Address, uint8) {
	return addr.Derive(TagAdmin, admin.Bytes())
}

// RestaurantAddress derives the restaurant slot owned by a restaurant admin.
// One restaurant per admin identity.
func RestaurantAddress(admin Identity) (addr.Address, uint8) {
	return addr.Derive(TagRestaurant, admin.Bytes())
}

// EmployeeAddress derives the employee slot for a (restaurant, wallet) pair.
func EmployeeAddress(restaurant addr.Address, wallet Identity) (addr.Address, uint8) {
	return addr.Derive(TagEmployee, []byte(restaurant), wallet.Bytes())
}

// InventoryAddress derives the inventory slot for a (restaurant, sku) pair.
func InventoryAddress(restaurant addr.Address, sku uint64) (addr.Address, uint8) {
	return addr.Derive(TagInventory, []byte(restaurant), addr.U64(sku))
}

// MenuItemAddress derives the menu item slot for a (restaurant, sku) pair.
func MenuItemAddress(restaurant addr.Address, sku uint64) (addr.Address, uint8) {
	return addr.Derive(TagMenuItem, []byte(restaurant), addr.U64(sku))
}

// CustomerAddress derives the customer profile slot for a
// (restaurant, customer) pair.
func CustomerAddress(restaurant addr.Address, customer Identity) (addr.Address, uint8) {
	return addr.Derive(TagCustomer, []byte(restaurant), customer.Bytes())
}

// OrderAddress derives the order slot for a (restaurant, order id, customer)
// triple.
func OrderAddress(restaurant addr.Address, orderID uint64, customer Identity) (addr.Address, uint8) {
	return addr.Derive(TagOrder, []byte(restaurant), addr.U64(orderID), customer.Bytes())
}
