package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nmswainston/dwellpath-backend/config"
	"github.com/nmswainston/dwellpath-backend/models"
	"github.com/nmswainston/dwellpath-backend/residency"
	"github.com/nmswainston/dwellpath-backend/utils"
)

// alert-recheck re-evaluates persisted day totals against the current policy
// and emits any alerts the write-time trigger would produce today. Run it
// after a policy change, or to repair alerts after a bulk import.
func main() {
	ownerID := flag.String("owner-id", "", "Optional: recheck only one owner. If empty, rechecks every owner with intervals.")
	year := flag.Int("year", 0, "Optional: tax year to recheck (defaults to current UTC year)")
	dryRun := flag.Bool("dry-run", false, "Report alerts without writing them")
	flag.Parse()

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}
	models.MigrateTable()

	taxYear := *year
	if taxYear == 0 {
		taxYear = time.Now().UTC().Year()
	}

	var owners []string
	ownerQuery := db.WithContext(ctx).Model(&models.ResidencyInterval{}).Distinct("owner_id")
	if strings.TrimSpace(*ownerID) != "" {
		ownerQuery = ownerQuery.Where("owner_id = ?", strings.TrimSpace(*ownerID))
	}
	if err := ownerQuery.Pluck("owner_id", &owners).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to list owners: %v\n", err)
		os.Exit(1)
	}
	if len(owners) == 0 {
		fmt.Fprintln(os.Stderr, "no owners found to recheck")
		return
	}

	policy := config.ResidencyPolicy()
	store := models.NewGormStore()
	emitted := 0

	for _, owner := range owners {
		ownerCtx := utils.SetOwnerIdInContext(ctx, owner)

		intervals, err := store.IntervalsForYear(ownerCtx, owner, taxYear)
		if err != nil {
			fmt.Fprintf(os.Stderr, "owner %s: failed to load intervals: %v\n", owner, err)
			continue
		}

		byState := make(map[string][]residency.Interval)
		for _, iv := range intervals {
			byState[iv.State] = append(byState[iv.State], iv)
		}

		for state, stateIntervals := range byState {
			draft := residency.EvaluateState(owner, state, stateIntervals, taxYear, policy)
			if draft == nil {
				continue
			}

			fmt.Printf("owner %s state %s year %d: %s (%d days, %d remaining)\n",
				owner, state, taxYear, draft.Severity, draft.TotalDays, draft.DaysRemaining)
			if *dryRun {
				continue
			}
			if _, err := models.CreateAlertFromDraft(ownerCtx, *draft); err != nil {
				fmt.Fprintf(os.Stderr, "owner %s state %s: failed to create alert: %v\n", owner, state, err)
				continue
			}
			emitted++
		}
	}

	if *dryRun {
		fmt.Println("dry run complete, no alerts written")
		return
	}
	fmt.Printf("done, %d alerts written\n", emitted)
}
