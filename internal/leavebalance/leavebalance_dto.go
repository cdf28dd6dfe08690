package leavebalance

type AdjustBalanceRequest struct {
	Balance int `json:"balance" binding:"gte=0"`
}

type OpenBalanceRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	Year        int    `json:"year" binding:"required,gte=2000"`
	Balance     int    `json:"balance" binding:"gte=0"`
}

type BalanceResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	LeaveTypeID string `json:"leave_type_id"`
	Year        int    `json:"year"`
	Balance     int    `json:"balance"`
}
