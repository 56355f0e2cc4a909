package repository

import (
	"context"
	"time"

	"mavina/internal/domain"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	CustomerID  int64     `gorm:"column:customer_id;index"`
	ProviderID  int64     `gorm:"column:provider_id;index"`
	ServiceName string    `gorm:"column:service_name"`
	ScheduledAt time.Time `gorm:"column:scheduled_at"`
	Price       float64   `gorm:"column:price"`
	Address     string    `gorm:"column:address"`
	Latitude    *float64  `gorm:"column:latitude"`
	Longitude   *float64  `gorm:"column:longitude"`
	Notes       *string   `gorm:"column:notes"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Appointment{
		ID:          m.ID,
		CustomerID:  m.CustomerID,
		ProviderID:  m.ProviderID,
		ServiceName: m.ServiceName,
		ScheduledAt: m.ScheduledAt,
		Price:       m.Price,
		Address:     m.Address,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Notes:       notes,
		Status:      domain.AppointmentStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	var notes *string
	if a.Notes != "" {
		v := a.Notes
		notes = &v
	}

	return appointmentModel{
		ID:          a.ID,
		CustomerID:  a.CustomerID,
		ProviderID:  a.ProviderID,
		ServiceName: a.ServiceName,
		ScheduledAt: a.ScheduledAt,
		Price:       a.Price,
		Address:     a.Address,
		Latitude:    a.Latitude,
		Longitude:   a.Longitude,
		Notes:       notes,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var m appointmentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

func (r *AppointmentRepository) GetByCustomerID(ctx context.Context, customerID int64) ([]domain.Appointment, error) {
	return r.list(ctx, "customer_id = ?", customerID)
}

func (r *AppointmentRepository) GetByProviderID(ctx context.Context, providerID int64) ([]domain.Appointment, error) {
	return r.list(ctx, "provider_id = ?", providerID)
}

func (r *AppointmentRepository) list(ctx context.Context, query string, arg int64) ([]domain.Appointment, error) {
	var rows []appointmentModel
	tx := r.db.WithContext(ctx).
		Where(query, arg).
		Order("scheduled_at DESC, id ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}

// UpdateStatus performs a conditional update keyed on the current status.
// Returns the number of rows affected: zero means a concurrent transition
// got there first and the caller must re-read and re-validate.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&appointmentModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
