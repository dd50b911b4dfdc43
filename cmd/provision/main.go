package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	appidentity "github.com/vendorhub/backend/internal/application/identity"
	"github.com/vendorhub/backend/internal/domain/identity"
	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command, args := os.Args[1], os.Args[2:]

	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	identity.SetPasswordCost(cfg.Auth.BcryptCost)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel("warn"), time.Second)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	tenants := appidentity.NewTenantService(
		persistence.NewGormTenantRepository(db.DB),
		persistence.NewGormIdentityTransactionScope(db.DB),
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch command {
	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		var input appidentity.ProvisionInput
		var hosting string
		fs.StringVar(&input.TenantCode, "code", "", "Tenant code (required)")
		fs.StringVar(&input.TenantName, "name", "", "Tenant display name (required)")
		fs.StringVar(&input.Region, "region", "", "Hosting region")
		fs.StringVar(&hosting, "hosting", string(identity.HostingShared), "Hosting mode: shared or dedicated")
		fs.StringVar(&input.AdminEmail, "admin-email", "", "Email of the first admin user (required)")
		fs.StringVar(&input.AdminName, "admin-name", "", "Display name of the first admin user")
		_ = fs.Parse(args)
		input.HostingMode = identity.HostingMode(hosting)
		input.Password = os.Getenv("VH_PROVISION_PASSWORD")
		if input.Password == "" {
			log.Fatal("VH_PROVISION_PASSWORD must hold the admin password")
		}

		tenant, admin, err := tenants.Provision(ctx, input)
		if err != nil {
			log.Fatal("Failed to provision tenant", zap.Error(err))
		}
		log.Info("Tenant provisioned",
			zap.String("tenant_id", tenant.ID.String()),
			zap.String("tenant_code", tenant.Code),
			zap.String("admin_id", admin.ID.String()),
			zap.String("admin_email", admin.Email),
		)

	case "suspend", "activate", "deactivate":
		fs := flag.NewFlagSet(command, flag.ExitOnError)
		code := fs.String("code", "", "Tenant code (required)")
		_ = fs.Parse(args)
		if *code == "" {
			log.Fatal("-code is required")
		}

		transition := map[string]func(context.Context, string) (*identity.Tenant, error){
			"suspend":    tenants.Suspend,
			"activate":   tenants.Activate,
			"deactivate": tenants.Deactivate,
		}[command]
		tenant, err := transition(ctx, *code)
		if err != nil {
			log.Fatal("Tenant transition failed", zap.String("command", command), zap.Error(err))
		}
		log.Info("Tenant updated",
			zap.String("tenant_code", tenant.Code),
			zap.String("status", string(tenant.Status)),
		)

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`VendorHub Tenant Provisioning Tool

Usage:
  provision <command> [flags]

Commands:
  create      -code -name -admin-email [-admin-name -region -hosting]
  suspend     -code
  activate    -code
  deactivate  -code

The first admin's password is read from VH_PROVISION_PASSWORD.`)
}
