package model

const inventoryLayoutV1 = 1

// InventoryCategory classifies a stock item.
type InventoryCategory uint8

const (
	InventoryPaperGoods InventoryCategory = iota
	InventoryCleaningSupplies
	InventoryFood
	InventoryBeverages
	InventoryAlcohol
	InventoryEquipment
	InventoryUniform
	InventoryMarketing
	InventoryOther
)

// ParseInventoryCategory maps a wire value to a recognized category.
func ParseInventoryCategory(v uint8) (InventoryCategory, bool) {
	if v > uint8(InventoryOther) {
		return 0, false
	}
	return InventoryCategory(v), true
}

// InventoryItem is a per-SKU stock record scoped to a restaurant. The
// Initialized flag is the caller-declared create/update discriminator of the
// upsert contract, persisted so a reader can tell a live record from one left
// in a transient state.
type InventoryItem struct {
	SKU         uint64            `json:"sku"`
	Category    InventoryCategory `json:"category"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       uint64            `json:"price"`
	Stock       uint64            `json:"stock"`
	LastOrder   int64             `json:"last_order"`
	Initialized bool              `json:"initialized"`
	Bump        uint8             `json:"bump"`
}

// Encode serializes the record to its versioned binary layout.
func (it *InventoryItem) Encode() []byte {
	w := newRecordWriter(inventoryLayoutV1)
	w.u64(it.SKU)
	w.u8(uint8(it.Category))
	w.str(it.Name)
	w.str(it.Description)
	w.u64(it.Price)
	w.u64(it.Stock)
	w.i64(it.LastOrder)
	w.boolean(it.Initialized)
	w.u8(it.Bump)
	return w.bytes()
}

// DecodeInventoryItem deserializes an inventory record.
func DecodeInventoryItem(data []byte) (*InventoryItem, error) {
	r, err := newRecordReader(data, inventoryLayoutV1)
	if err != nil {
		return nil, err
	}
	it := &InventoryItem{
		SKU:         r.u64(),
		Category:    InventoryCategory(r.u8()),
		Name:        r.str(),
		Description: r.str(),
		Price:       r.u64(),
		Stock:       r.u64(),
		LastOrder:   r.i64(),
		Initialized: r.boolean(),
		Bump:        r.u8(),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return it, nil
}
