package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/kids-stock/internal/adapter/storage"
	"github.com/rl1809/kids-stock/internal/app"
	"github.com/rl1809/kids-stock/internal/config"
	"github.com/rl1809/kids-stock/internal/core/domain"
	"github.com/rl1809/kids-stock/internal/core/service"
)

const (
	defaultDSN     = "root:root@tcp(localhost:3306)/kids_stock?parseTime=true"
	defaultRedis   = "localhost:6379"
	initialStock   = 20
	totalRequests  = 50
	extraIncrement = 15
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx := context.Background()

	db, err := app.OpenMySQL(ctx, config.MySQLConfig{
		DSN:             getenv("MYSQL_DSN", defaultDSN),
		MaxOpenConns:    50,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	defer db.Close()

	rdb := redis.NewClient(&redis.Options{Addr: getenv("REDIS_ADDR", defaultRedis)})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	migrator, err := storage.NewMigrator(db)
	if err != nil {
		log.Fatalf("failed to build migrator: %v", err)
	}
	if _, err := migrator.Up(ctx); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	mysqlAdapter := storage.NewMySQLAdapter(db)
	if _, err := mysqlAdapter.SeedCategories(ctx, storage.DefaultCategories()); err != nil {
		log.Fatalf("failed to seed categories: %v", err)
	}

	categories := service.NewCategoryService(mysqlAdapter, storage.NewRedisAdapter(rdb, "stress:"), time.Minute, nil)
	groups := service.NewGroupService(mysqlAdapter, mysqlAdapter, 3)
	children := service.NewChildService(mysqlAdapter, mysqlAdapter)
	stock := service.NewStockService(mysqlAdapter, mysqlAdapter, categories)

	group, err := groups.CreateGroup(ctx, "stress test")
	if err != nil {
		log.Fatalf("failed to create group: %v", err)
	}
	child, err := children.CreateChild(ctx, group.ShareToken, "stress child")
	if err != nil {
		log.Fatalf("failed to create child: %v", err)
	}
	defer children.DeleteChild(ctx, child.ID)

	catalog, err := categories.ListCategories(ctx)
	if err != nil || len(catalog) == 0 {
		log.Fatalf("no clothing categories available: %v", err)
	}
	categoryID := catalog[0].ID

	if _, err := stock.IncrementStock(ctx, child.ID, categoryID, initialStock); err != nil {
		log.Fatalf("failed to set initial stock: %v", err)
	}

	var successCount, insufficientCount, errorCount atomic.Int32

	// Decrements race each other; increments of 1 interleave with them.
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := stock.DecrementStock(ctx, child.ID, categoryID, 1)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficientCount.Add(1)
			default:
				errorCount.Add(1)
				log.Printf("decrement failed: %v", err)
			}
		}()
	}
	for i := 0; i < extraIncrement; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := stock.IncrementStock(ctx, child.ID, categoryID, 1); err != nil {
				errorCount.Add(1)
				log.Printf("increment failed: %v", err)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := int(successCount.Load())
	insufficient := int(insufficientCount.Load())

	view, err := stock.GetStock(ctx, child.ID)
	if err != nil {
		log.Fatalf("failed to read final stock: %v", err)
	}
	var finalCount int
	for _, line := range view.Lines {
		if line.Category.ID == categoryID {
			finalCount = line.CurrentCount
		}
	}

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Stock:     %d\n", initialStock)
	fmt.Printf("Decrements:        %d\n", totalRequests)
	fmt.Printf("Increments:        %d\n", extraIncrement)
	fmt.Printf("Successful:        %d\n", success)
	fmt.Printf("Insufficient:      %d\n", insufficient)
	fmt.Printf("Errors:            %d\n", errorCount.Load())
	fmt.Printf("Duration:          %v\n", elapsed)
	fmt.Printf("Final Stock:       %d\n", finalCount)
	fmt.Println("==========================================")

	// Every applied change must be reflected in the stored count.
	expected := initialStock + extraIncrement - success
	if finalCount == expected && success+insufficient == totalRequests {
		fmt.Printf("PASS: final stock %d matches %d applied decrements\n", finalCount, success)
	} else {
		fmt.Printf("FAIL: expected final stock %d, got %d\n", expected, finalCount)
		os.Exit(1)
	}
	if finalCount < 0 {
		fmt.Println("FAIL: stock went negative")
		os.Exit(1)
	}
}
