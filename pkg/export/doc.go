// Package export writes panel snapshots as JSON documents.
//
// Document turns a panel's flat values into nested JSON. A Sink stores the
// result; DiskSink writes files and S3Sink uploads objects. Exports are
// write-only: nothing reads them back into a store.
package export
