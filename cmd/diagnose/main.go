// Command diagnose walks every offering and prints whether it would appear in
// the public directory for a given city/province filter, with the resolver's
// reasons for exclusions. Useful when a provider asks why their listing is
// not showing up.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Waynenyarky/capstone-booking/internal/eligibility"
	"github.com/Waynenyarky/capstone-booking/internal/repo/postgres"
	"github.com/Waynenyarky/capstone-booking/pkg/config"
	"github.com/Waynenyarky/capstone-booking/pkg/database"
	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

func main() {
	city := flag.String("city", "", "city filter")
	province := flag.String("province", "", "province filter")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.Database.URL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	offerings, err := postgres.NewOfferingRepo(pool).ListAllPopulated(ctx)
	if err != nil {
		logger.Error("Failed to list offerings", "error", err)
		os.Exit(1)
	}

	filter := eligibility.Filter{City: *city, Province: *province}
	fmt.Printf("Checking %d offerings (city=%q province=%q)\n\n", len(offerings), *city, *province)

	eligible := 0
	for _, po := range offerings {
		label := po.Offering.ID
		if po.Provider != nil && po.Service != nil {
			label = fmt.Sprintf("%s / %s (%s)", po.Provider.BusinessName, po.Service.Name, po.Offering.ID)
		}
		if po.Provider == nil || po.Service == nil {
			fmt.Printf("EXCLUDED  %s\n          dangling provider or service link\n", label)
			continue
		}
		res := eligibility.Resolve(po.Provider, po.Service, &po.Offering, filter)
		if res.Eligible {
			eligible++
			fmt.Printf("ELIGIBLE  %s\n", label)
			continue
		}
		fmt.Printf("EXCLUDED  %s\n          %s\n", label, strings.Join(res.Reasons, "\n          "))
	}

	fmt.Printf("\n%d of %d offerings eligible\n", eligible, len(offerings))
}
