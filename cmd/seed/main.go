// Package main seeds a development database with demo catalog items and a
// few transactions so the derived views have something to show.
package main

import (
	"context"
	"fmt"
	"os"

	"posledger/internal/config"
	"posledger/internal/core/types"
	"posledger/internal/domain/catalog/item"
	"posledger/internal/domain/docnum"
	"posledger/internal/domain/documents"
	"posledger/internal/domain/ledger"
	"posledger/internal/infrastructure/storage/postgres"
	"posledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.InMemory() {
		fmt.Println("DATABASE_URL is required for seeding")
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DB.DSN))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to migrate schema", "error", err)
	}

	docRepo := postgres.NewDocumentRepo(pool, nil)
	itemRepo := postgres.NewItemRepo(pool, nil)

	itemService := item.NewService(itemRepo)
	ledgerService := ledger.NewService(docRepo, itemRepo)
	numbers := docnum.NewService(docRepo, nil)

	existing, err := itemService.List(ctx)
	if err != nil {
		log.Fatalw("failed to read catalog", "error", err)
	}
	if len(existing) > 0 {
		log.Infow("catalog not empty, nothing to seed", "items", len(existing))
		return
	}

	items := []*item.Item{
		demoItem("Basmati Rice 5kg", "Grocery", "850", "1050"),
		demoItem("Sunflower Oil 1L", "Grocery", "320", "395"),
		demoItem("Green Tea 100g", "Beverages", "210", "280"),
		demoItem("Dish Soap 500ml", "Household", "95", "140"),
	}
	for _, it := range items {
		if err := itemService.Create(ctx, it); err != nil {
			log.Fatalw("failed to seed item", "name", it.Name, "error", err)
		}
	}

	purchases := documents.NewService(documents.KindPurchase, docRepo, itemService, numbers, nil)
	sales := documents.NewService(documents.KindSale, docRepo, itemService, numbers, ledgerService)

	purchase := documents.NewTransaction("Wholesale Traders", types.Today())
	purchase.Items = []documents.Line{
		{ItemID: items[0].ID, Quantity: 20, Price: items[0].PurchasePrice},
		{ItemID: items[1].ID, Quantity: 36, Price: items[1].PurchasePrice},
		{ItemID: items[2].ID, Quantity: 50, Price: items[2].PurchasePrice},
	}
	if err := purchases.Create(ctx, purchase); err != nil {
		log.Fatalw("failed to seed purchase", "error", err)
	}

	sale := documents.NewTransaction("Walk-in Customer", types.Today())
	sale.Items = []documents.Line{
		{ItemID: items[0].ID, Quantity: 2, Price: items[0].SalePrice},
		{ItemID: items[2].ID, Quantity: 5, Price: items[2].SalePrice},
	}
	if err := sales.Create(ctx, sale); err != nil {
		log.Fatalw("failed to seed sale", "error", err)
	}

	log.Infow("seed complete",
		"items", len(items),
		"purchase", purchase.Number,
		"sale", sale.Number)
}

func demoItem(name, category, purchasePrice, salePrice string) *item.Item {
	it := item.NewItem(name, category)
	it.PurchasePrice = types.MustMoney(purchasePrice)
	it.SalePrice = types.MustMoney(salePrice)
	return it
}
