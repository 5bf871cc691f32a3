// Package fixture holds the demo dataset used by the seed command and by
// first-boot seeding of an empty document store.
package fixture

import (
	"context"
	"time"

	"hive/internal/domain/entity"
	"hive/internal/domain/repository"
	"hive/internal/domain/service"
	"hive/internal/errors"
)

var seedTime = time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)

// MenuItems returns the demo catalog.
func MenuItems() []*entity.MenuItem {
	return []*entity.MenuItem{
		{
			ID:             "chickenjoy1pc",
			Name:           "Chickenjoy (1 pc)",
			Category:       "chicken",
			Description:    "Crispylicious, juicylicious fried chicken with gravy",
			Price:          entity.MoneyFromMajor(82),
			PointsValue:    80,
			IsBestseller:   true,
			SearchableText: "chickenjoy fried chicken crispy juicy gravy solo meal",
			UpdatedAt:      seedTime,
		},
		{
			ID:             "bucket6pc",
			Name:           "Chickenjoy Bucket (6 pc)",
			Category:       "chicken",
			Description:    "Six pieces of Chickenjoy for sharing",
			Price:          entity.MoneyFromMajor(499),
			PointsValue:    450,
			IsBestseller:   true,
			SearchableText: "chickenjoy bucket fried chicken family group meal treat",
			UpdatedAt:      seedTime,
		},
		{
			ID:             "yumburger",
			Name:           "Yumburger",
			Category:       "burgers",
			Description:    "Beefy burger with special dressing",
			Price:          entity.MoneyFromMajor(40),
			PointsValue:    40,
			SearchableText: "yumburger beef burger snack quick bite",
			UpdatedAt:      seedTime,
		},
		{
			ID:             "spaghetti",
			Name:           "Jolly Spaghetti",
			Category:       "pasta",
			Description:    "Sweet-style spaghetti with hotdog slices",
			Price:          entity.MoneyFromMajor(60),
			PointsValue:    60,
			IsBestseller:   true,
			SearchableText: "jolly spaghetti sweet sauce hotdog cheese kids favorite",
			UpdatedAt:      seedTime,
		},
		{
			ID:             "peachmangopie",
			Name:           "Peach Mango Pie",
			Category:       "desserts",
			Description:    "Crispy pie with real Philippine mangoes",
			Price:          entity.MoneyFromMajor(48),
			PointsValue:    45,
			SearchableText: "peach mango pie dessert sweet crispy snack merienda",
			UpdatedAt:      seedTime,
		},
		{
			ID:             "halohalo",
			Name:           "Halo-Halo Sundae",
			Category:       "desserts",
			Description:    "Layered shaved-ice dessert with ube ice cream",
			Price:          entity.MoneyFromMajor(75),
			PointsValue:    70,
			IsNew:          true,
			SearchableText: "halo halo sundae ube ice cream shaved ice summer cold dessert",
			UpdatedAt:      seedTime,
		},
		{
			ID:             "burgersteak",
			Name:           "Burger Steak (1 pc)",
			Category:       "rice meals",
			Description:    "Burger patty with mushroom gravy and rice",
			Price:          entity.MoneyFromMajor(65),
			PointsValue:    60,
			SearchableText: "burger steak mushroom gravy rice meal lunch",
			UpdatedAt:      seedTime,
		},
		{
			ID:             "familyfeast",
			Name:           "Family Feast Bundle",
			Category:       "bundles",
			Description:    "Bucket, spaghetti platter and six drinks",
			Price:          entity.MoneyFromMajor(899),
			PointsValue:    800,
			IsNew:          true,
			SearchableText: "family feast bundle bucket spaghetti drinks party celebration sharing",
			UpdatedAt:      seedTime,
		},
	}
}

// Stores returns the demo branches.
func Stores() []*entity.Store {
	return []*entity.Store{
		{ID: "store_001", Name: "BGC High Street", Location: "Taguig", UpdatedAt: seedTime},
		{ID: "store_002", Name: "SM North EDSA", Location: "Quezon City", UpdatedAt: seedTime},
		{ID: "store_003", Name: "Ayala Center Cebu", Location: "Cebu City", UpdatedAt: seedTime},
	}
}

// Customers returns the demo loyalty members.
func Customers() []*entity.Customer {
	return []*entity.Customer{
		{
			ID:            "mike001",
			Name:          "Mike Reyes",
			LifetimeSpend: entity.MoneyFromMajor(9900),
			Points:        9900,
			Tier:          entity.TierBeeFan,
			TotalOrders:   61,
			FavoriteItems: []string{"chickenjoy", "spaghetti"},
			LastActivity:  seedTime,
		},
		{
			ID:            "anna002",
			Name:          "Anna Lim",
			LifetimeSpend: entity.MoneyFromMajor(450),
			Points:        450,
			Tier:          entity.TierBeeBuddy,
			TotalOrders:   7,
			FavoriteItems: []string{"halo halo", "peach mango pie"},
			LastActivity:  seedTime,
		},
		{
			ID:            "carlo003",
			Name:          "Carlo Santos",
			LifetimeSpend: entity.MoneyFromMajor(15200),
			Points:        15200,
			Tier:          entity.TierBeeElite,
			TotalOrders:   94,
			FavoriteItems: []string{"family feast", "bucket"},
			LastActivity:  seedTime,
		},
		{
			ID:           "newbie004",
			Name:         "Dana Cruz",
			Tier:         entity.TierBeeBuddy,
			LastActivity: seedTime,
		},
	}
}

// Inventory returns the demo stock positions for each store.
func Inventory() []*entity.InventoryRecord {
	positions := []*entity.InventoryRecord{}
	for _, store := range Stores() {
		for _, item := range MenuItems() {
			quantity, threshold := 120, 20
			if item.ID == "bucket6pc" && store.ID == "store_001" {
				// Kept scarce so the low-stock path is easy to demo.
				quantity, threshold = 10, 5
			}

			positions = append(positions, &entity.InventoryRecord{
				StoreID:          store.ID,
				ItemID:           item.ID,
				ItemName:         item.Name,
				Quantity:         quantity,
				ReorderThreshold: threshold,
				UpdatedAt:        seedTime,
			})
		}
	}

	return positions
}

// SeedParams bundles the repositories the seeder writes through.
type SeedParams struct {
	Catalog   repository.CatalogRepository
	Store     repository.StoreRepository
	Customer  repository.CustomerRepository
	Inventory repository.InventoryRepository
	DocStore  service.DocumentStore
}

// Seed writes the demo dataset and issues a barrier so the data is
// immediately queryable.
func Seed(ctx context.Context, params SeedParams) error {
	for _, item := range MenuItems() {
		if err := params.Catalog.SaveMenuItem(ctx, item); err != nil {
			return errors.Wrapf(err, "seed menu item %s", item.ID)
		}
	}
	for _, store := range Stores() {
		if err := params.Store.SaveStore(ctx, store); err != nil {
			return errors.Wrapf(err, "seed store %s", store.ID)
		}
	}
	for _, customer := range Customers() {
		if err := params.Customer.SaveCustomer(ctx, customer); err != nil {
			return errors.Wrapf(err, "seed customer %s", customer.ID)
		}
	}
	for _, record := range Inventory() {
		if err := params.Inventory.SaveInventoryRecord(ctx, record); err != nil {
			return errors.Wrapf(err, "seed inventory %s", record.Key())
		}
	}

	if err := params.DocStore.Barrier(ctx, service.AllCollections()...); err != nil {
		return errors.Wrap(err, "seed visibility barrier")
	}

	return nil
}
