package dto

import "github.com/shopspring/decimal"

// MenuCostDTO costo, precio y margen de un menú.
type MenuCostDTO struct {
	MenuID     string          `json:"menu_id"`
	Cost       decimal.Decimal `json:"cost"`
	Price      decimal.Decimal `json:"price"`
	Margin     decimal.Decimal `json:"margin"`
	MarginRate decimal.Decimal `json:"margin_rate"` // 0 si el precio es 0
}

// AvailabilityResponse respuesta del verificador de disponibilidad.
type AvailabilityResponse struct {
	MenuID    string          `json:"menu_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Available bool            `json:"available"`
}

// MatchLabelsRequest libellés externos a resolver contra el referencial.
type MatchLabelsRequest struct {
	Labels []string `json:"labels"`
}

// MatchedLabelDTO resultado del matching de un libellé.
type MatchedLabelDTO struct {
	Label        string `json:"label"`
	IngredientID string `json:"ingredient_id,omitempty"`
	Matched      bool   `json:"matched"`
}
