package domain

import "time"

// RouteStatus is the operational state of a shipping route.
type RouteStatus string

const (
	RouteActive    RouteStatus = "active"
	RoutePending   RouteStatus = "pending"
	RouteCompleted RouteStatus = "completed"
)

// routeColors drives the map rendering of each status.
var routeColors = map[RouteStatus]string{
	RouteActive:    "#1565C0",
	RoutePending:   "#FFA000",
	RouteCompleted: "#2E7D32",
}

// Color returns the map line colour for the status.
func (s RouteStatus) Color() string {
	if c, ok := routeColors[s]; ok {
		return c
	}
	return routeColors[RouteActive]
}

// ShippingRoute is a trade lane owned by exactly one user.
type ShippingRoute struct {
	ID              string      `json:"id"`
	Origin          string      `json:"origin"`
	Destination     string      `json:"destination"`
	Distance        float64     `json:"distance"`
	TransportMode   string      `json:"transportMode"`
	TransitTime     float64     `json:"transitTime"`
	Cost            float64     `json:"cost"`
	CarbonFootprint float64     `json:"carbonFootprint"`
	Efficiency      float64     `json:"efficiency"`
	Status          RouteStatus `json:"status"`
	UserID          string      `json:"userId"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// Coordinates is a [longitude, latitude] pair in GeoJSON order.
type Coordinates [2]float64

// cityCoordinates is the static lookup table used for route maps. Routes are
// not geocoded.
var cityCoordinates = map[string]Coordinates{
	"Kigali":        {30.0619, -1.9403},
	"Amsterdam":     {4.9041, 52.3676},
	"Mombasa":       {39.6682, -4.0435},
	"Dubai":         {55.2708, 25.2048},
	"Shanghai":      {121.4737, 31.2304},
	"Dar es Salaam": {39.2083, -6.7924},
	"New York":      {-74.0060, 40.7128},
	"Nairobi":       {36.8219, -1.2921},
	"London":        {-0.1278, 51.5074},
}

// LocateCity returns the coordinates of a known city.
func LocateCity(name string) (Coordinates, bool) {
	c, ok := cityCoordinates[name]
	return c, ok
}
