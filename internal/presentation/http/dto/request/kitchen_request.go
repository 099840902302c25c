package request

// UpdateRecipeStatusRequest moves a station ticket through its lifecycle
type UpdateRecipeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=NEW PREPARING READY"`
}

// StationBoardRequest represents station board query parameters
type StationBoardRequest struct {
	Status string `form:"status" binding:"omitempty,oneof=NEW PREPARING READY"`
}

// OrderFilterRequest represents order list filter parameters
type OrderFilterRequest struct {
	Search  string `form:"search"`
	Status  string `form:"status" binding:"omitempty,oneof=NEW IN_PROGRESS SERVED"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// HistoryFilterRequest represents history list filter parameters
type HistoryFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
