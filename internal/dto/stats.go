package dto

// StatsResponseDTO is the status histogram consumed by dashboards.
type StatsResponseDTO struct {
	ByStatus map[string]int `json:"by_status"`
	Total    int            `json:"total" example:"240"`
}
