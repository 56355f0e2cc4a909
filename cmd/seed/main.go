package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mavina/internal/database"
	"mavina/internal/domain"
	"mavina/internal/repository"
)

// Seeds a local database with demo accounts, appointments and
// transactions. Run against the DSN in DATABASE_URL (defaults to the
// local SQLite file).
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "mavina.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM transactions")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@mavina.app",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Admin",
	}

	washerHash, _ := bcrypt.GenerateFromPassword([]byte("washer123"), bcrypt.DefaultCost)
	washers := []domain.User{
		{
			Email:        "arman@mavina.app",
			PasswordHash: string(washerHash),
			Role:         domain.RoleProvider,
			Name:         "Arman's Mobile Wash",
			Phone:        "+77010000001",
		},
		{
			Email:        "shine@mavina.app",
			PasswordHash: string(washerHash),
			Role:         domain.RoleProvider,
			Name:         "Shine & Go",
			Phone:        "+77010000002",
		},
	}

	customerHash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
	customers := []domain.User{
		{
			Email:        "aizhan@example.com",
			PasswordHash: string(customerHash),
			Role:         domain.RoleCustomer,
			Name:         "Aizhan",
			Phone:        "+77020000001",
			Address:      "12 Abay Ave",
		},
		{
			Email:        "daniyar@example.com",
			PasswordHash: string(customerHash),
			Role:         domain.RoleCustomer,
			Name:         "Daniyar",
			Phone:        "+77020000002",
			Address:      "48 Dostyk St",
		},
	}

	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	if err := userRepo.Create(ctx, &admin); err != nil {
		log.Fatal(err)
	}
	for i := range washers {
		if err := userRepo.Create(ctx, &washers[i]); err != nil {
			log.Fatal(err)
		}
	}
	for i := range customers {
		if err := userRepo.Create(ctx, &customers[i]); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating appointments...")

	lat, lng := 43.238949, 76.889709
	appointmentRepo := repository.NewAppointmentRepository(db)
	appointments := []domain.Appointment{
		{
			CustomerID:  customers[0].ID,
			ProviderID:  washers[0].ID,
			ServiceName: "Full exterior wash",
			ScheduledAt: time.Now().Add(48 * time.Hour),
			Price:       150,
			Address:     customers[0].Address,
			Latitude:    &lat,
			Longitude:   &lng,
			Status:      domain.AppointmentPending,
		},
		{
			CustomerID:  customers[0].ID,
			ProviderID:  washers[1].ID,
			ServiceName: "Interior detailing",
			ScheduledAt: time.Now().Add(72 * time.Hour),
			Price:       250,
			Address:     customers[0].Address,
			Status:      domain.AppointmentConfirmed,
		},
		{
			CustomerID:  customers[1].ID,
			ProviderID:  washers[0].ID,
			ServiceName: "Quick wash",
			ScheduledAt: time.Now().Add(-24 * time.Hour),
			Price:       80,
			Address:     customers[1].Address,
			Status:      domain.AppointmentCompleted,
		},
	}
	for i := range appointments {
		if err := appointmentRepo.Create(ctx, &appointments[i]); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating transactions...")

	transactionRepo := repository.NewTransactionRepository(db)
	completed := appointments[2]
	tx := domain.Transaction{
		AppointmentID: completed.ID,
		CustomerID:    completed.CustomerID,
		WasherID:      completed.ProviderID,
		Amount:        completed.Price,
		ServiceName:   completed.ServiceName,
		ServiceStatus: domain.ServiceCompleted,
		PaymentStatus: domain.PaymentPending,
	}
	if err := transactionRepo.Create(ctx, &tx); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete.")
	log.Println("  admin:    admin@mavina.app / admin123")
	log.Println("  washer:   arman@mavina.app / washer123")
	log.Println("  customer: aizhan@example.com / customer123")
}
