package dto

// OrderResponseDTO is the reporting view of one reconciled order.
type OrderResponseDTO struct {
	OrderNumber     string   `json:"order_number" example:"1001"`
	MachineCode     string   `json:"machine_code" example:"M1"`
	GoodsName       string   `json:"goods_name,omitempty" example:"Latte"`
	PaymentType     string   `json:"payment_type" example:"Cash"`
	PaymentGateway  string   `json:"payment_gateway,omitempty" example:"click"`
	OrderPrice      string   `json:"order_price" example:"15000"`
	FiscalAmount    string   `json:"fiscal_amount,omitempty" example:"15000"`
	GatewayAmount   string   `json:"gateway_amount,omitempty" example:"15000"`
	CreationTime    string   `json:"creation_time,omitempty" example:"2024-01-01T10:00:00Z"`
	MatchStatus     string   `json:"match_status" example:"FULLY_MATCHED"`
	MismatchDetails string   `json:"mismatch_details,omitempty" example:"cash order has no fiscal receipt"`
	MatchedSources  []string `json:"matched_sources" example:"primary_log,enrichment"`
}
