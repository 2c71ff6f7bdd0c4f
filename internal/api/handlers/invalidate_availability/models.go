package invalidate_availability

// InvalidateRequest HTTP request model
type InvalidateRequest struct {
	BusinessID int64  `json:"businessId"`
	Date       string `json:"date"`
}
