// internal/platform/di/shop/container.go
package shop

import (
	"context"
	"errors"
	"log"

	usecase "atelier/internal/application/usecase"

	outfs "atelier/internal/adapters/out/firestore"

	proddom "atelier/internal/domain/product"

	shared "atelier/internal/platform/di/shared"
)

// Container is the shop DI container.
// Pure DI: build deps only. No routing branching, no reflection tricks.
type Container struct {
	Infra *shared.Infra

	// Usecases (buyer-facing)
	CatalogUC  *usecase.CatalogUsecase
	CartUC     *usecase.CartUsecase
	CheckoutUC *usecase.CheckoutUsecase
	OrderUC    *usecase.OrderUsecase

	// Repos sometimes needed by handlers directly
	ProductRepo proddom.Repository
}

func NewContainer(ctx context.Context, infra *shared.Infra) (*Container, error) {
	if infra == nil {
		var err error
		infra, err = shared.NewInfra(ctx)
		if err != nil {
			return nil, err
		}
	}
	if infra == nil {
		return nil, errors.New("di.shop: shared infra is nil")
	}

	fsClient := infra.Firestore
	if fsClient == nil {
		return nil, errors.New("di.shop: infra.Firestore is nil")
	}

	c := &Container{Infra: infra}

	// --------------------------------------------------------
	// Firestore repositories (carts and orders always live here;
	// cart mutation and checkout rely on Firestore transactions)
	// --------------------------------------------------------
	cartRepo := outfs.NewCartRepositoryFS(fsClient)
	orderRepo := outfs.NewOrderRepositoryFS(fsClient)
	orderItemRepo := outfs.NewOrderItemRepositoryFS(fsClient)

	// --------------------------------------------------------
	// Catalog + inventory repositories (Firestore by default,
	// Postgres when PG_DSN is set; Redis read-through on top)
	// --------------------------------------------------------
	cat := buildCatalogRepos(infra)
	c.ProductRepo = cat.products

	// --------------------------------------------------------
	// Checkout store (atomic Firestore transaction by default;
	// step-wise sequencer when inventory lives in Postgres)
	// --------------------------------------------------------
	store, staged := buildCheckoutStore(infra, orderRepo, orderItemRepo, cat.inventories, cartRepo)
	if staged {
		log.Printf("[di.shop] checkout store = sequencer (postgres inventory)")
	} else {
		log.Printf("[di.shop] checkout store = firestore transaction")
	}

	// --------------------------------------------------------
	// Order confirmation mail (optional)
	// --------------------------------------------------------
	mailer, err := buildOrderMailer(ctx, infra)
	if err != nil {
		log.Printf("[di.shop] WARN: order mailer wiring failed: %v (mail disabled)", err)
		mailer = nil
	}

	// --------------------------------------------------------
	// Usecases
	// --------------------------------------------------------
	c.CatalogUC = usecase.NewCatalogUsecase(cat.products, cat.variants, cat.inventories)
	c.CartUC = usecase.NewCartUsecase(cartRepo, cat.products, cat.variants, cat.inventories)
	c.CheckoutUC = usecase.NewCheckoutUsecase(cartRepo, cat.products, cat.variants, store, mailer)
	c.OrderUC = usecase.NewOrderUsecase(orderRepo, orderItemRepo)

	return c, nil
}
