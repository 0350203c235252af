/*
Package vpixels is a library for identifying, converting and cataloguing
indexed-colour BMP and GIF images.

The bmp and gif packages hold the image containers and their codecs, this
package ties them together: sniffing a file's format, converting between
ordinary images and the paletted containers and indexing whole directory
trees into a SQLite catalog.
*/
package vpixels

import "log"

// Indexer scans directories and records every image found in a Catalog.
type Indexer struct {
	db     *Catalog
	logger *log.Logger
}

// New returns an Indexer writing to db and reporting skipped files to
// logger.
func New(db *Catalog, logger *log.Logger) *Indexer {
	return &Indexer{
		db:     db,
		logger: logger,
	}
}
