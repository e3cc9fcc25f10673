// Package core provides the ingestion and browsing logic for the exoplanet
// archive.
//
// This package holds all domain logic independent of any UI or transport
// layer. It is used by the web server, the exoctl CLI and tests without
// modification.
//
// # Architecture
//
// The package is organized around a short pipeline:
//
//   - Fetcher: retrieves the CSV text ([HTTPFetcher], [FileFetcher]).
//   - ParseCSV: finds the header line starting with "pl_name," and splits
//     the data lines that follow it into [RawRecord] values.
//   - Normalize: projects raw rows onto [Record] through a resolved column
//     layout (see package schema), coercing cells fail-soft.
//   - Filter, Paginate and Recent: pure functions over normalized records.
//   - Service: ties the steps together per view, with caching and fallback.
//
// # View Registry
//
// Views are registered at init time using [Register]. Each [ViewDefinition]
// decides how much of the file is read and how records are presented:
//
//	core.Register(core.ViewDefinition{
//	    Info:     core.ViewInfo{Key: "browser", Label: "Database"},
//	    LineCap:  1000,
//	    PageSize: 20,
//	})
//
// Import package views to register the standard set.
//
// # Fail-soft Loading
//
// Malformed cells never produce errors: numbers become 0 and the matching
// [Presence] flag stays false. Failed fetches and files without a header do
// not fail a load either; [Service.Load] falls back to the newest stored
// [Snapshot] and then to [SampleRecords], and marks the result Degraded so
// the caller can offer a retry.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FETCH001-FETCH003: source errors (unreachable, too large, timeout)
//   - SCHEMA001: file without an archive header line
//   - VIEW001, REQ001-REQ002: request errors
//   - RATE001: rate limiting
package core
