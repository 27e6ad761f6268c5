package httpServices

// TripFeedItem is one trip record as the CRM trip feed returns it.
type TripFeedItem struct {
	TripID         string `json:"trip_id"`
	VehicleNo      string `json:"vehicle_no"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	Route          string `json:"route"`
	DNode          string `json:"d_node"`
	Priority       string `json:"priority"`
	FOName         string `json:"fo_name"`
	FOPhone        string `json:"fo_phone"`
	SupplyPOCName  string `json:"supply_poc_name"`
	SupplyPOCPhone string `json:"supply_poc_phone"`
	DemandPOCName  string `json:"demand_poc_name"`
	DemandPOCPhone string `json:"demand_poc_phone"`
	DriverName     string `json:"driver_name"`
	DriverPhone    string `json:"driver_phone"`
	Supplier       string `json:"supplier"`
	SupplierAddr   string `json:"supplier_address"`
	UnloadedAt     string `json:"unloaded_at"`
}

// TripFeedResponse is the CRM trip feed envelope.
type TripFeedResponse struct {
	Status string         `json:"status"`
	Trips  []TripFeedItem `json:"trips"`
}
