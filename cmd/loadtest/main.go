package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/minhvd/warehouse/internal/adapter/storage"
	"github.com/minhvd/warehouse/internal/core/domain"
	"github.com/minhvd/warehouse/internal/core/service"
)

const (
	itemCode      = "loadtest-item"
	initialStock  = 20
	totalRequests = 50
)

func main() {
	ctx := context.Background()

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/warehouse?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("failed to open mysql: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}

	// Clear previous runs
	db.ExecContext(ctx, `DELETE FROM orders WHERE item_code = ?`, itemCode)
	db.ExecContext(ctx, `DELETE FROM stock WHERE item_code = ?`, itemCode)

	ledger := storage.NewMySQLLedger(db)
	orders := storage.NewMySQLOrders(db)
	fulfillment := service.NewFulfillmentService(ledger, orders, nil, nil)

	if _, err := ledger.Increase(ctx, itemCode, initialStock); err != nil {
		log.Fatalf("failed to seed stock: %v", err)
	}

	sender := domain.Actor{Email: "load@test", Role: domain.RoleSales}
	admin := domain.Actor{Email: "admin@test", Role: domain.RoleAdmin}

	// Phase 1: concurrent submissions racing for limited stock.
	var submitted atomic.Int32
	var soldOut atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := fulfillment.SubmitOrder(ctx, sender, service.SubmitOrderInput{
				RequestID: uuid.NewString(),
				ItemCode:  itemCode,
				Quantity:  1,
				Recipient: "Load Tester",
				Address:   "1 Bench St",
				Phone:     "0000000000",
			})
			if err == nil {
				submitted.Add(1)
			} else {
				soldOut.Add(1)
			}
		}()
	}
	wg.Wait()
	submitElapsed := time.Since(start)

	// Phase 2: approve everything that got in, concurrently.
	pending, err := orders.List(ctx, domain.OrderFilter{Statuses: []domain.OrderStatus{domain.OrderStatusPending}})
	if err != nil {
		log.Fatalf("failed to list pending orders: %v", err)
	}

	var approved atomic.Int32
	start = time.Now()
	for _, order := range pending {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := fulfillment.ResolveOrder(ctx, admin, id, domain.OrderStatusApproved); err == nil {
				approved.Add(1)
			}
		}(order.ID)
	}
	wg.Wait()
	approveElapsed := time.Since(start)

	entry, err := ledger.Get(ctx, itemCode)
	if err != nil {
		log.Fatalf("failed to read final stock: %v", err)
	}

	fmt.Println("========== LOAD TEST RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Submitted:        %d (%v)\n", submitted.Load(), submitElapsed)
	fmt.Printf("Sold Out:         %d\n", soldOut.Load())
	fmt.Printf("Approved:         %d (%v)\n", approved.Load(), approveElapsed)
	fmt.Printf("Final Quantity:   %d\n", entry.Quantity)
	fmt.Printf("Final Reserved:   %d\n", entry.Reserved)
	fmt.Println("=======================================")

	pass := true
	if submitted.Load() != int32(initialStock) {
		fmt.Printf("FAIL: expected %d submissions to win, got %d\n", initialStock, submitted.Load())
		pass = false
	}
	if approved.Load() != submitted.Load() {
		fmt.Printf("FAIL: expected every submitted order approved, got %d/%d\n", approved.Load(), submitted.Load())
		pass = false
	}
	if entry.Quantity != 0 || entry.Reserved != 0 {
		fmt.Printf("FAIL: expected empty ledger, got quantity=%d reserved=%d\n", entry.Quantity, entry.Reserved)
		pass = false
	}
	if pass {
		fmt.Println("PASS: stock conserved, every hold consumed exactly once")
	}
}
