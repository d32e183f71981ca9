// Command sellerctl reviews seller applications and creates staff accounts
// outside the HTTP API.
//
//	sellerctl -email meera@looms.in -status active
//	sellerctl -staff delivery -email rider@market.in -name Ravi -password ...
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"artisan_market/internal/config"
	"artisan_market/internal/logger"
	"artisan_market/internal/models"
	"artisan_market/internal/repository"
	"artisan_market/internal/services"
)

type options struct {
	email    string
	status   string
	staff    string
	name     string
	password string
}

func main() {
	var opts options
	flag.StringVar(&opts.email, "email", "", "seller or staff email")
	flag.StringVar(&opts.status, "status", "", "new seller status: active or rejected")
	flag.StringVar(&opts.staff, "staff", "", "create a staff account with this role: admin or delivery")
	flag.StringVar(&opts.name, "name", "", "staff display name")
	flag.StringVar(&opts.password, "password", "", "staff password")
	flag.Parse()

	if opts.email == "" || (opts.status == "") == (opts.staff == "") {
		fmt.Fprintln(os.Stderr, "usage: sellerctl -email EMAIL (-status active|rejected | -staff admin|delivery -name NAME -password PASS)")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DBDriver == config.DriverMemory {
		log.Fatal("sellerctl needs a database; DB_DRIVER=memory keeps nothing")
	}
	logger.Setup(cfg.Log)

	db, err := config.OpenDB(cfg, logger.GormLogger())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = run(ctx, repository.NewGormStore(db), cfg.BcryptCost, opts)
	cancel()
	sqlDB.Close()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, store repository.Store, bcryptCost int, opts options) error {
	if opts.staff != "" {
		// Tokens are never issued here, so the auth service runs without a token service.
		auth := services.NewAuthService(store, nil, bcryptCost, services.AllowAnyStatus)
		in := services.Registration{Name: opts.name, Email: opts.email, Password: opts.password}
		user, err := auth.CreateStaff(ctx, in, models.Role(opts.staff))
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.staff, err)
		}
		log.WithFields(log.Fields{"id": user.ID, "email": user.Email, "role": user.Role}).Info("staff account created")
		return nil
	}

	seller, err := services.NewSellerService(store).Review(ctx, opts.email, models.SellerStatus(opts.status))
	if err != nil {
		return fmt.Errorf("review %s: %w", opts.email, err)
	}
	log.WithFields(log.Fields{"email": seller.Email, "status": seller.Status}).Info("seller application reviewed")
	return nil
}
