// Package auth implements the identity service: user records, credential
// verification, session tokens, and the password reset flow.
//
// Layering:
// - domain: sentinel errors
// - application: use cases over explicit ports
// - ports: persistence, hashing, and token boundaries
// - adapters: memory, postgres, bcrypt, jwt, and HTTP implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the identity-access context.
// - Hashing and token signing are opaque primitives behind ports; the
//   application layer never touches bcrypt or JWT directly.
package auth
