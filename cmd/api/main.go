package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/adiwijaya/warungpos-backend/internal/modules/auth"
	"github.com/adiwijaya/warungpos-backend/internal/modules/cart"
	"github.com/adiwijaya/warungpos-backend/internal/modules/cashbook"
	"github.com/adiwijaya/warungpos-backend/internal/modules/catalog"
	"github.com/adiwijaya/warungpos-backend/internal/modules/customer"
	"github.com/adiwijaya/warungpos-backend/internal/modules/receipt"
	"github.com/adiwijaya/warungpos-backend/internal/modules/report"
	"github.com/adiwijaya/warungpos-backend/internal/modules/sales"
	"github.com/adiwijaya/warungpos-backend/internal/modules/shift"
	"github.com/adiwijaya/warungpos-backend/internal/modules/supplier"
	"github.com/adiwijaya/warungpos-backend/internal/modules/user"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	taxRate := 0.0
	if raw := os.Getenv("TAX_RATE_PERCENT"); raw != "" {
		taxRate, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Fatalf("invalid TAX_RATE_PERCENT: %v", err)
		}
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Phase 1: Identity & Access ──────────────────────────
	guard := auth.NewMiddleware(jwtSecret)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService, guard.RequireAdmin).RegisterRoutes(router)

	authService := auth.NewService(userRepo, jwtSecret)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Phase 2: Catalog & Partners ─────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customer.NewHandler(customerService).RegisterRoutes(router)

	supplierRepo := supplier.NewPostgresRepository(db)
	supplierService := supplier.NewService(supplierRepo)
	supplier.NewHandler(supplierService, guard.RequireAdmin).RegisterRoutes(router)

	// ── Phase 3: Shifts & Settlement ────────────────────────
	shiftRepo := shift.NewPostgresRepository(db)
	shiftService := shift.NewService(shiftRepo)
	shift.NewHandler(shiftService).RegisterRoutes(router)

	refundPolicy := sales.RefundPolicy{
		RestockItems:     os.Getenv("REFUND_RESTOCK") == "true",
		ReverseCashEntry: os.Getenv("REFUND_REVERSE_CASH") == "true",
	}
	salesRepo := sales.NewPostgresRepository(db)
	salesService := sales.NewService(salesRepo, refundPolicy)
	sales.NewHandler(salesService, guard.RequireAdmin).RegisterRoutes(router)

	// ── Phase 4: Cart & Checkout ────────────────────────────
	sessions := cart.NewSessions(taxRate)
	cart.NewHandler(sessions, catalogService, shiftService, customerService, salesService).RegisterRoutes(router)

	// ── Phase 5: Cash Book & Reporting ──────────────────────
	cashbookRepo := cashbook.NewPostgresRepository(db)
	cashbookService := cashbook.NewService(cashbookRepo)
	cashbook.NewHandler(cashbookService, guard.RequireAdmin).RegisterRoutes(router)

	reportRepo := report.NewPostgresRepository(db)
	reportService := report.NewService(reportRepo)
	report.NewHandler(reportService).RegisterRoutes(router)

	store := receipt.StoreInfo{
		Name:    os.Getenv("STORE_NAME"),
		Address: os.Getenv("STORE_ADDRESS"),
		Phone:   os.Getenv("STORE_PHONE"),
	}
	receiptService := receipt.NewService(salesService, userService, store)
	receipt.NewHandler(receiptService).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("WarungPOS API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
