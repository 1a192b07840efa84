package model

const restaurantLayoutV1 = 1

// RestaurantType classifies a tenant.
type RestaurantType uint8

const (
	RestaurantFoodtruck RestaurantType = iota
	RestaurantCafe
	RestaurantRestaurant
)

// ParseRestaurantType maps a wire value to a recognized type.
func ParseRestaurantType(v uint8) (RestaurantType, bool) {
	switch RestaurantType(v) {
	case RestaurantFoodtruck, RestaurantCafe, RestaurantRestaurant:
		return RestaurantType(v), true
	}
	return 0, false
}

func (t RestaurantType) String() string {
	switch t {
	case RestaurantFoodtruck:
		return "foodtruck"
	case RestaurantCafe:
		return "cafe"
	case RestaurantRestaurant:
		return "restaurant"
	}
	return "unknown"
}

// Restaurant is a tenant record, owned by a restaurant admin identity.
// Immutable after creation except through explicit update operations.
type Restaurant struct {
	ID            uint64         `json:"id"`
	Type          RestaurantType `json:"type"`
	Owner         Identity       `json:"owner"`
	Name          string         `json:"name"`
	Symbol        string         `json:"symbol"`
	Currency      Identity       `json:"currency"`
	URL           string         `json:"url"`
	CustomerCount uint64         `json:"customer_count"`
	Bump          uint8          `json:"bump"`
}

// Encode serializes the record to its versioned binary layout.
func (rt *Restaurant) Encode() []byte {
	w := newRecordWriter(restaurantLayoutV1)
	w.u64(rt.ID)
	w.u8(uint8(rt.Type))
	w.str(string(rt.Owner))
	w.str(rt.Name)
	w.str(rt.Symbol)
	w.str(string(rt.Currency))
	w.str(rt.URL)
	w.u64(rt.CustomerCount)
	w.u8(rt.Bump)
	return w.bytes()
}

// DecodeRestaurant deserializes a restaurant record.
func DecodeRestaurant(data []byte) (*Restaurant, error) {
	r, err := newRecordReader(data, restaurantLayoutV1)
	if err != nil {
		return nil, err
	}
	rt := &Restaurant{
		ID:            r.u64(),
		Type:          RestaurantType(r.u8()),
		Owner:         Identity(r.str()),
		Name:          r.str(),
		Symbol:        r.str(),
		Currency:      Identity(r.str()),
		URL:           r.str(),
		CustomerCount: r.u64(),
		Bump:          r.u8(),
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	return rt, nil
}
