package repository

import (
	"context"
	"time"

	"mavina/internal/domain"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

type transactionModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	AppointmentID int64     `gorm:"column:appointment_id;uniqueIndex"`
	CustomerID    int64     `gorm:"column:customer_id;index"`
	WasherID      int64     `gorm:"column:washer_id;index"`
	Amount        float64   `gorm:"column:amount"`
	ServiceName   string    `gorm:"column:service_name"`
	ServiceStatus string    `gorm:"column:service_status"`
	PaymentStatus string    `gorm:"column:payment_status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (transactionModel) TableName() string { return "transactions" }

func toDomainTransaction(m transactionModel) *domain.Transaction {
	return &domain.Transaction{
		ID:            m.ID,
		AppointmentID: m.AppointmentID,
		CustomerID:    m.CustomerID,
		WasherID:      m.WasherID,
		Amount:        m.Amount,
		ServiceName:   m.ServiceName,
		ServiceStatus: domain.ServiceStatus(m.ServiceStatus),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toTransactionModel(t *domain.Transaction) transactionModel {
	return transactionModel{
		ID:            t.ID,
		AppointmentID: t.AppointmentID,
		CustomerID:    t.CustomerID,
		WasherID:      t.WasherID,
		Amount:        t.Amount,
		ServiceName:   t.ServiceName,
		ServiceStatus: string(t.ServiceStatus),
		PaymentStatus: string(t.PaymentStatus),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	m := toTransactionModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTransaction(m)
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	var m transactionModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTransaction(m), nil
}

func (r *TransactionRepository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Transaction, error) {
	var m transactionModel
	tx := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTransaction(m), nil
}

// ListByCustomerID returns the customer's transactions, newest first.
// The id tie-break keeps the ordering stable for equal timestamps.
func (r *TransactionRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]domain.Transaction, error) {
	return r.list(ctx, "customer_id = ?", customerID)
}

func (r *TransactionRepository) ListByWasherID(ctx context.Context, washerID int64) ([]domain.Transaction, error) {
	return r.list(ctx, "washer_id = ?", washerID)
}

func (r *TransactionRepository) list(ctx context.Context, query string, arg int64) ([]domain.Transaction, error) {
	var rows []transactionModel
	tx := r.db.WithContext(ctx).
		Where(query, arg).
		Order("created_at DESC, id ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Transaction, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTransaction(m))
	}
	return out, nil
}

// UpdateServiceStatus is a conditional update keyed on the current value of
// the service axis only. The payment axis is never touched here.
func (r *TransactionRepository) UpdateServiceStatus(ctx context.Context, id int64, from, to domain.ServiceStatus) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&transactionModel{}).
		Where("id = ? AND service_status = ?", id, string(from)).
		Updates(map[string]any{
			"service_status": string(to),
			"updated_at":     time.Now(),
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

// UpdatePaymentStatus mirrors UpdateServiceStatus for the payment axis.
func (r *TransactionRepository) UpdatePaymentStatus(ctx context.Context, id int64, from, to domain.PaymentStatus) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&transactionModel{}).
		Where("id = ? AND payment_status = ?", id, string(from)).
		Updates(map[string]any{
			"payment_status": string(to),
			"updated_at":     time.Now(),
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
