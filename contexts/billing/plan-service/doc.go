// Package plan owns the subscription plan catalog: the priced tiers a
// company can subscribe to. Catalog writes are platform-staff operations;
// the active slice of the catalog is public so the pricing page can render
// without a session.
//
// Layering follows the service template: ports at the edge, pure domain
// rules inside, adapters for persistence and transport.
package plan
