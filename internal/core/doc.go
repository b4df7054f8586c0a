// Package core provides the business logic of the IPO admin dashboard.
//
// This package holds the domain records and every operation the dashboard
// performs on them, independent of any UI or transport layer. It is used by
// the web handlers, the ipoctl CLI and tests without modification.
//
// # Architecture
//
//   - Records: [Product], [IPO], [Category], [User], [SubscriptionPlan],
//     [Transaction], [Content], [Notification] and the site [Settings].
//   - Resources: a [Resource] wraps a store.Repository with validation and
//     auditing. [Service] owns one resource per record type.
//   - Sections: the sidebar screens, kept in a registry ([Sections]).
//   - Stats: [Service.Dashboard] and [Service.Report] aggregate the stored
//     records concurrently.
//
// # Validation
//
// Each resource runs a prepare step before writing. It trims names, fills
// defaults (status, slug, createdAt) and rejects invalid input with a
// [NewValidationError], which maps to code REC002.
//
// # Remote IPOs
//
// IPOs fetched from the remote listing are normalized by package ipo and
// may be copied into the local store with [Service.ImportRemoteIPO]. The
// copy is stored under "remote-<id>" so a second import refreshes it.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - REC001-REC002, DB001: Record errors (not found, invalid, duplicate)
//   - API001: Remote listing errors
//   - REQ001-REQ002: Request cancelled or timed out
//   - DB004-DB006: Storage connectivity
//   - RATE001: Rate limiting
//
// # Audit Logging
//
// All data modifications are recorded in the audit log with severity levels:
//
//   - Low: Creates and remote imports
//   - Medium: Updates, status toggles, settings changes
//   - High: Deletions
//   - Critical: Audit log pruning
//
// Old audit entries are pruned by [Service.StartAuditPruner] based on the
// configured retention.
package core
