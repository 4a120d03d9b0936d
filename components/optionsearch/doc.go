// Package optionsearch serves option catalogs as alphabet buckets over a small
// net/http JSON handler. Queries match names in both Latin and Cyrillic
// spelling, and matches inside nested options keep their ancestors.
//
// The handler responds to GET and HEAD requests with {"data": [...]} and
// supports query, limit and catalog parameters.
package optionsearch
