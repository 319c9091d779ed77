// Package encounter provides a searchable catalogue of tradition documents.
// Each tradition is a plain-text document that describes a collection of
// artifacts; documents are fetched, parsed, and indexed in memory so that
// artifact titles can be searched across every tradition at once.
//
// This package contains domain types, interfaces, and the tradition
// document parser. Implementations live in subdirectories named after
// their primary dependency (e.g., sqlite/, goldmark/, goquery/).
package encounter
