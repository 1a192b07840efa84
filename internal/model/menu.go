package model

const menuItemLayoutV1 = 1

// MenuCategory classifies a customer-facing menu item.
type MenuCategory uint8

const (
	MenuCombo MenuCategory = iota
	MenuSide
	MenuEntree
	MenuDessert
	MenuBeverage
	MenuAlcohol
	MenuOther
)

// ParseMenuCategory maps a wire value to a recognized category.
func ParseMenuCategory(v uint8) (MenuCategory, bool) {
	if v > uint8(MenuOther) {
		return 0, false
	}
	return MenuCategory(v), true
}

// MenuItem is a curated, customer-facing item referencing inventory SKUs as
// ingredients. Menu items are toggled active/inactive, never deleted.
type MenuItem struct {
	SKU         uint64       `json:"sku"`
	Category    MenuCategory `json:"category"`
	Name        string       `json:"name"`
	Price       uint64       `json:"price"`
	Description string       `json:"description"`
	Ingredients []uint64     `json:"ingredients"`
	Active      bool         `json:"active"`
	Bump        uint8        `json:"bump"`
}

// Encode serializes the record to its versioned binary layout.
func (m *MenuItem) Encode() []byte {
	w := newRecordWriter(menuItemLayoutV1)
	w.u64(m.SKU)
	w.u8(uint8(m.Category))
	w.str(m.Name)
	w.u64(m.Price)
	w.str(m.Description)
	w.u64s(m.Ingredients)
	w.boolean(m.Active)
	w.u8(m.Bump)
	return w.bytes()
}

// DecodeMenuItem deserializes a menu item record.
func DecodeMenuItem(data []byte) (*MenuItem, error) {
	r, err := newRecordReader(data, menuItemLayoutV1)
	if err != nil {
		return nil, err
	}
	m := &MenuItem{
		SKU:         r.u64(),
		Category:    MenuCategory(r.u8()),
		Name:        r.str(),
		Price:       r.u64(),
		Description: r.str(),
		Ingredients: r.u64list(),
		Active:      r.boolean(),
		Bump:        r.u8(),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return m, nil
}
