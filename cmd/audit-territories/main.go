package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"go-sales-territory/internal/config"
	"go-sales-territory/internal/repository"
	"go-sales-territory/internal/service"
	"go-sales-territory/pkg/database"
	"go-sales-territory/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	var (
		fix    = flag.Bool("fix", false, "Rewrite parseable wilaya values to their canonical name")
		asJSON = flag.Bool("json", false, "Print the report as JSON")
	)
	flag.Parse()

	cfg := config.Load()
	if err := logger.InitLogger(cfg.Server.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := database.ConnectDB(cfg.Database.DSN(), "production")
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	audit, err := service.AuditTerritories(context.Background(), repository.NewStore(db), *fix)
	if err != nil {
		log.Fatal("audit failed", zap.Error(err))
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(audit); err != nil {
			log.Fatal("failed to encode report", zap.Error(err))
		}
	} else {
		fmt.Printf("Checked %d representatives and %d clients\n", audit.Representatives, audit.Clients)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tID\tNAME\tWILAYA\tCANONICAL\tSTATUS")
		for _, f := range audit.Findings {
			fmt.Fprintf(w, "%s\t%s\t%s\t%q\t%s\t%s\n", f.Kind, f.ID, f.Name, f.Wilaya, f.Canonical, f.Status)
		}
		w.Flush()
	}

	// Non-zero exit lets a scheduled job flag records that need a human
	if audit.Invalid() > 0 {
		logger.Sync()
		os.Exit(1)
	}
}
