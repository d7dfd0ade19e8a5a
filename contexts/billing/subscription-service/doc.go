// Package subscription owns the payment lifecycle that turns a plan into a
// company entitlement: order creation with a plan snapshot, gateway signature
// verification, and the atomic Created-to-Paid transition that activates the
// company for a 30-day window.
//
// The snapshot taken at order time is authoritative for that purchase; later
// catalog edits never change what a company bought. Expiry is lazy on reads,
// with a sweeper that persists the transition and an outbox relay that
// publishes billing events.
package subscription
