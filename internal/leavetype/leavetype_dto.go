package leavetype

type CreateLeaveTypeRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Description     string `json:"description"`
	DefaultDays     int    `json:"default_days" binding:"gte=0"`
	RequiresBalance *bool  `json:"requires_balance"`
}

type UpdateLeaveTypeRequest struct {
	Name            string `json:"name" binding:"required,max=100"`
	Description     string `json:"description"`
	DefaultDays     int    `json:"default_days" binding:"gte=0"`
	RequiresBalance *bool  `json:"requires_balance"`
	IsActive        *bool  `json:"is_active"`
}

type LeaveTypeResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DefaultDays     int    `json:"default_days"`
	RequiresBalance bool   `json:"requires_balance"`
	IsActive        bool   `json:"is_active"`
}
