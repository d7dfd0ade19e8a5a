// Package dashboard aggregates the platform numbers staff watch: onboarded
// companies, live subscriptions, and collected revenue. Read-only over tables
// other contexts own.
package dashboard
