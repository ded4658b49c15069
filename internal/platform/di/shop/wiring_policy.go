// internal/platform/di/shop/wiring_policy.go
package shop

import (
	"context"
	"errors"
	"strings"

	usecase "atelier/internal/application/usecase"

	outcache "atelier/internal/adapters/out/cache"
	outdb "atelier/internal/adapters/out/db"
	outfs "atelier/internal/adapters/out/firestore"
	outmail "atelier/internal/adapters/out/mail"

	cartdom "atelier/internal/domain/cart"
	"atelier/internal/domain/checkout"
	invdom "atelier/internal/domain/inventory"
	orderdom "atelier/internal/domain/order"
	"atelier/internal/domain/orderItem"
	proddom "atelier/internal/domain/product"
	vardom "atelier/internal/domain/variant"

	shared "atelier/internal/platform/di/shared"
)

// wiring_policy.go defines wiring-time policies (conditional dependency assembly)
// for the shop DI container.
//
// Policy scope:
// - This file only decides which backing store serves each port based on
//   runtime settings, and builds lightweight optional deps (cache decorators,
//   mail client). Usecase construction stays in container.go.

var errWiringNilInfra = errors.New("di.shop: wiring policy infra is nil")

type catalogRepos struct {
	products    proddom.Repository
	variants    vardom.Repository
	inventories invdom.Repository
}

// buildCatalogRepos picks the backing store for catalog and inventory reads.
// Policy:
// - Postgres serves products/variants/inventory when PG_DSN is configured.
// - Firestore serves them otherwise.
// - Redis, when configured, wraps product/variant reads (read-through, short TTL).
//   Inventory is never cached; stock must be read live.
func buildCatalogRepos(infra *shared.Infra) catalogRepos {
	var r catalogRepos

	if infra.DB != nil {
		r.products = outdb.NewProductRepositoryPG(infra.DB)
		r.variants = outdb.NewVariantRepositoryPG(infra.DB)
		r.inventories = outdb.NewInventoryRepositoryPG(infra.DB)
	} else {
		r.products = outfs.NewProductRepositoryFS(infra.Firestore)
		r.variants = outfs.NewVariantRepositoryFS(infra.Firestore)
		r.inventories = outfs.NewInventoryRepositoryFS(infra.Firestore)
	}

	if infra.Redis != nil {
		ttl := infra.Settings.CatalogCacheTTL
		r.products = outcache.NewProductCacheRedis(r.products, infra.Redis, ttl)
		r.variants = outcache.NewVariantCacheRedis(r.variants, infra.Redis, ttl)
	}

	return r
}

// buildCheckoutStore picks the checkout.Store implementation.
// Policy:
// - With Firestore inventory, place the whole order in one Firestore
//   transaction (all-or-nothing).
// - With Postgres inventory, a single cross-store transaction is impossible,
//   so fall back to the step-wise sequencer with a persisted intent per
//   attempt. Returns staged=true in that case.
func buildCheckoutStore(
	infra *shared.Infra,
	orders orderdom.Repository,
	items orderitem.Repository,
	inventories invdom.Repository,
	carts cartdom.Repository,
) (store checkout.Store, staged bool) {
	if infra.DB != nil {
		intents := outfs.NewCheckoutIntentRepositoryFS(infra.Firestore)
		return usecase.NewCheckoutSequencer(intents, orders, items, inventories, carts), true
	}
	return outfs.NewCheckoutStoreFS(infra.Firestore), false
}

// buildOrderMailer wires the order confirmation mailer conditionally.
// Policy:
// - Requires a from address (SENDGRID_FROM).
// - API key comes from SENDGRID_API_KEY, falling back to Secret Manager
//   when a client is available.
// - If any prerequisite is missing, return nil (feature disabled).
func buildOrderMailer(ctx context.Context, infra *shared.Infra) (usecase.OrderMailer, error) {
	if infra == nil {
		return nil, errWiringNilInfra
	}

	from := strings.TrimSpace(infra.Settings.MailFrom)
	if from == "" {
		return nil, nil
	}

	apiKey := ""
	if infra.Config != nil {
		apiKey = strings.TrimSpace(infra.Config.SendGridAPIKey)
	}
	if apiKey == "" && infra.SecretManager != nil {
		p := &sendgridKeyProviderSM{
			sm:         infra.SecretManager,
			projectID:  infra.ProjectID,
			secretName: infra.Settings.SendGridSecretName,
			version:    "latest",
		}
		key, err := p.APIKey(ctx)
		if err != nil {
			return nil, err
		}
		apiKey = key
	}
	if apiKey == "" {
		return nil, nil
	}

	return outmail.NewOrderConfirmationMailer(outmail.NewSendGridClient(apiKey), from), nil
}
