package handler

import (
	"time"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/domain"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports"
)

// --- Shipping routes ---

type createShippingRouteRequest struct {
	Origin          string   `json:"origin"          validate:"required"`
	Destination     string   `json:"destination"     validate:"required"`
	Distance        *float64 `json:"distance"        validate:"required,gte=0"`
	TransportMode   string   `json:"transportMode"   validate:"required"`
	TransitTime     *float64 `json:"transitTime"     validate:"required,gte=0"`
	Cost            *float64 `json:"cost"            validate:"required,gte=0"`
	CarbonFootprint float64  `json:"carbonFootprint" validate:"gte=0"`
	Efficiency      float64  `json:"efficiency"      validate:"gte=0,lte=100"`
	Status          string   `json:"status"          validate:"omitempty,oneof=active pending completed"`
}

type updateShippingRouteRequest struct {
	Origin          *string  `json:"origin"          validate:"omitempty,min=1"`
	Destination     *string  `json:"destination"     validate:"omitempty,min=1"`
	Distance        *float64 `json:"distance"        validate:"omitempty,gte=0"`
	TransportMode   *string  `json:"transportMode"   validate:"omitempty,min=1"`
	TransitTime     *float64 `json:"transitTime"     validate:"omitempty,gte=0"`
	Cost            *float64 `json:"cost"            validate:"omitempty,gte=0"`
	CarbonFootprint *float64 `json:"carbonFootprint" validate:"omitempty,gte=0"`
	Efficiency      *float64 `json:"efficiency"      validate:"omitempty,gte=0,lte=100"`
	Status          *string  `json:"status"          validate:"omitempty,oneof=active pending completed"`
}

func (r createShippingRouteRequest) toDomain() domain.ShippingRoute {
	return domain.ShippingRoute{
		Origin:          r.Origin,
		Destination:     r.Destination,
		Distance:        *r.Distance,
		TransportMode:   r.TransportMode,
		TransitTime:     *r.TransitTime,
		Cost:            *r.Cost,
		CarbonFootprint: r.CarbonFootprint,
		Efficiency:      r.Efficiency,
		Status:          domain.RouteStatus(r.Status),
	}
}

func (r updateShippingRouteRequest) toPatch() ports.ShippingRoutePatch {
	patch := ports.ShippingRoutePatch{
		Origin:          r.Origin,
		Destination:     r.Destination,
		Distance:        r.Distance,
		TransportMode:   r.TransportMode,
		TransitTime:     r.TransitTime,
		Cost:            r.Cost,
		CarbonFootprint: r.CarbonFootprint,
		Efficiency:      r.Efficiency,
	}
	if r.Status != nil {
		status := domain.RouteStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// --- Customs documents ---

// Document statuses are checked by the service so the "in progress" value
// keeps its space.
type createCustomsDocumentRequest struct {
	ShipmentID    string     `json:"shipmentId"    validate:"required"`
	Title         string     `json:"title"         validate:"required"`
	Description   string     `json:"description"`
	Destination   string     `json:"destination"   validate:"required"`
	Status        string     `json:"status"`
	Progress      int        `json:"progress"      validate:"gte=0,lte=100"`
	ClearanceDate *time.Time `json:"clearanceDate"`
}

type updateCustomsDocumentRequest struct {
	ShipmentID    *string    `json:"shipmentId"    validate:"omitempty,min=1"`
	Title         *string    `json:"title"         validate:"omitempty,min=1"`
	Description   *string    `json:"description"`
	Destination   *string    `json:"destination"   validate:"omitempty,min=1"`
	Status        *string    `json:"status"`
	Progress      *int       `json:"progress"      validate:"omitempty,gte=0,lte=100"`
	ClearanceDate *time.Time `json:"clearanceDate"`
}

func (r createCustomsDocumentRequest) toDomain() domain.CustomsDocument {
	return domain.CustomsDocument{
		ShipmentID:    r.ShipmentID,
		Title:         r.Title,
		Description:   r.Description,
		Destination:   r.Destination,
		Status:        domain.DocumentStatus(r.Status),
		Progress:      r.Progress,
		ClearanceDate: r.ClearanceDate,
	}
}

func (r updateCustomsDocumentRequest) toPatch() ports.CustomsDocumentPatch {
	patch := ports.CustomsDocumentPatch{
		ShipmentID:    r.ShipmentID,
		Title:         r.Title,
		Description:   r.Description,
		Destination:   r.Destination,
		Progress:      r.Progress,
		ClearanceDate: r.ClearanceDate,
	}
	if r.Status != nil {
		status := domain.DocumentStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

type reviewDocumentRequest struct {
	Comments string `json:"comments" validate:"max=2000"`
}

// --- Activities ---

type createActivityRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"type"        validate:"required,oneof=shipping weather market document"`
	RelatedID   string `json:"relatedId"`
	RelatedType string `json:"relatedType"`
}

func (r createActivityRequest) toDomain() domain.ActivityLog {
	return domain.ActivityLog{
		Title:       r.Title,
		Description: r.Description,
		Type:        domain.ActivityType(r.Type),
		RelatedID:   r.RelatedID,
		RelatedType: r.RelatedType,
	}
}
