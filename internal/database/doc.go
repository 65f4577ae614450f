// Package database provides the gorm-backed storage layer.
//
// The Database wrapper owns connection setup and schema migration. Entity
// operations live in subpackages, one repository per aggregate:
//
//   - books: catalogue reads (lookup, search, popularity ranking)
//   - ratings: user star ratings, written by the API collaborator
//   - toread: reading-list entries
//   - recommendations: append-only recommendation audit trail
//   - activity: append-only user activity log
//
// The five pipeline-owned tables (books, ratings, to_read, tags, book_tags)
// are replaced wholesale on every ETL run; anything written into them between
// runs does not survive the next load.
package database
