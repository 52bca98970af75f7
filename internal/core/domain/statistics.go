package domain

// Statistics is the admin dashboard summary. Every figure is counted at
// request time.
type Statistics struct {
	Users    UserStatistics     `json:"users"`
	Data     DataStatistics     `json:"data"`
	Customs  CustomsStatistics  `json:"customs"`
	Activity ActivityStatistics `json:"activity"`
}

type UserStatistics struct {
	Total          int64 `json:"total"`
	Traders        int64 `json:"traders"`
	Admins         int64 `json:"admins"`
	SuperAdmins    int64 `json:"superAdmins"`
	NewInLastMonth int64 `json:"newInLastMonth"`
}

type DataStatistics struct {
	MarketData       int64 `json:"marketData"`
	ShippingRoutes   int64 `json:"shippingRoutes"`
	CustomsDocuments int64 `json:"customsDocuments"`
}

type CustomsStatistics struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Cleared    int64 `json:"cleared"`
	Approved   int64 `json:"approved"`
	Rejected   int64 `json:"rejected"`
}

type ActivityStatistics struct {
	Today  int64 `json:"today"`
	Weekly int64 `json:"weekly"`
}
