package model

// MenuItem is one sellable item of a hotel's menu/inventory. The id is the
// merge key within a hotel's collection; it is assigned client-side
// (item_<timestamp>) when the remote omits one.
//
// stock and morning_stock are deliberately Text: the remote echoes stock
// quantities as strings and the cached representation must round-trip
// exactly. adjustStock (sold stock) and every price field are numeric.
type MenuItem struct {
	ID              Text   `json:"id"`
	Menu            string `json:"menu"`
	Submenu         string `json:"submenu"`
	HPrice          Number `json:"h_price"`
	FPrice          Number `json:"f_price"`
	PurchasePrice   Number `json:"purchaseprice"`
	MRP             Number `json:"mrp"`
	ACPrice         Number `json:"ac_price"`
	ACPriceHalf     Number `json:"ac_price_half"`
	NonACPrice      Number `json:"nonac_price"`
	NonACPriceHalf  Number `json:"nonac_price_half"`
	OnlinePrice     Number `json:"online_price"`
	OnlinePriceHalf Number `json:"online_price_half"`
	ParcelPrice     Number `json:"parcel_price"`
	ParcelPriceHalf Number `json:"parcel_price_half"`
	Stock           Text   `json:"stock"`
	MorningStock    Text   `json:"morning_stock"`
	AdjustStock     Number `json:"adjustStock"`
	Available       Number `json:"available"`
	ItemVNV         Number `json:"itemvnv"`
	Description     string `json:"description"`
	GST             Number `json:"gst"`
}

// SaveItemsRequest is the body of the remote item-save endpoint. It is used
// both for full item upserts and, with IsSingle/OverrideStock set, for
// stock-only overwrites.
type SaveItemsRequest struct {
	HotelName     string     `json:"hotel_name"`
	MenuItems     []MenuItem `json:"menuItems"`
	IsSingle      bool       `json:"issingle,omitempty"`
	OverrideStock bool       `json:"overridestock,omitempty"`
}
