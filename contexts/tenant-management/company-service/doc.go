// Package company implements tenant management: onboarding a company with its
// first ClientAdmin, company reads for staff and members, and seat-limited
// engineer creation.
//
// Boundary notes:
// - Plans are owned by billing; this module reads them through its own
//   PlanCatalog port as a read-only projection.
// - User rows are shared with identity-access; this module only writes
//   tenant-scoped users (ClientAdmin at onboarding, ClientEngineer later).
package company
