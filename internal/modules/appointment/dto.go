package appointment

import "time"

type CreateAppointmentRequest struct {
	ProviderID  int64     `json:"provider_id" binding:"required"`
	ServiceName string    `json:"service_name" binding:"required"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Price       float64   `json:"price" binding:"required,gt=0"`
	Address     string    `json:"address" binding:"required"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Notes       string    `json:"notes,omitempty"`

	CustomerID int64 `json:"-"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
