// Package shows models a site's show-listing document and implements the
// date decision and structural validation rules the archiver relies on.
//
// A document is three top-level members: upcoming shows, past shows, and an
// opaque settings block. Individual shows round-trip byte-for-byte: the
// decoder keeps the original JSON for every show, so fields this tool does
// not understand are never dropped or reordered.
package shows
