// Package core converts tab-delimited text into PostgreSQL scripts.
//
// This package is the heart of the converter, containing all domain logic
// independent of any transport. It is used by the HTTP server, the CLI and
// tests without modification.
//
// # Pipeline
//
// [Parse] runs three passes over the input:
//
//  1. Tokenize: split on newlines and tabs, resolve header names (explicit
//     first line, spreadsheet-style names from [ColumnName], or both).
//     NULL / EMPTYSTRING sentinels are rewritten while rows are built.
//  2. Classify: every column gets exactly one [ColumnType], chosen from the
//     raw cell text with fixed precedence boolean > numeric > datetime > varchar.
//  3. Coerce: each raw cell becomes a typed [Value] according to its column.
//
// The result is a [ParseResult] which [EmitSQL] renders as
//
//	DROP TABLE IF EXISTS t CASCADE;
//	CREATE TABLE t (...);
//	INSERT INTO t (...) VALUES (...), (...);
//
// # Loading
//
// [Loader] executes the emitted script (or a COPY of the typed rows) inside a
// single transaction. [Service] wraps reading, parsing, emitting and loading
// and bounds concurrent loads with a [LoadLimiter].
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - PARSE001-PARSE003: Input errors (empty, not delimited, too large)
//   - COERCE001: A cell failed to convert to its column type
//   - SQL001: Malformed parse result handed to the emitter
//   - DB001-DB005: Database errors
//   - LOAD001-LOAD002: Load scheduling errors
//   - REQ001-REQ003, RATE001: Request errors
package core
