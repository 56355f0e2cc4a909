package transaction

type CreateTransactionRequest struct {
	AppointmentID int64   `json:"appointment_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	ServiceName   string  `json:"service_name,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
