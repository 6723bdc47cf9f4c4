// Package auth is the credential-issuance and session-authorization core
// for the coordvol platform (administrators, coordinators, volunteers).
//
// It owns three things:
//   - verifying identity from submitted credentials (bcrypt verifier),
//   - issuing and validating signed session tokens carrying identity and
//     role claims (HS256 JWTs, expiry is the only deactivation mechanism),
//   - enforcing role/state admission decisions for self registration,
//     admin provisioning, login, and protected-resource access.
//
// Account lifecycle:
//   - Accounts carry an AccountStatus persisted via Bun. Deletion is a
//     status transition, never row removal, and a deleted email is not
//     recyclable.
//   - AccountLifecycle centralizes transitions, actor metadata, and event
//     emission. The transition graph is unrestricted.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter used by SessionService
//     and the lifecycle helper. Sinks run best-effort (errors are logged)
//     so forwarding to a database or queue can never block authentication.
//
// Concurrency:
//   - Registration's check-then-create is not atomic by construction; the
//     unique index on email is the guarantee and a storage-level violation
//     surfaces as the same conflict as the pre-check. Token work is pure
//     CPU and runs fully in parallel; no locks span a store round trip.
package auth
