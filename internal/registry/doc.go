// Package registry indexes literals by logical content.
//
// Every registered literal is filed under a Key, the pair of its payload
// type name and capacity. Within the registry an entry is identified by a
// name-based UUID derived from its key and canonical encoding, so registering
// the same literal twice is a no-op. Entries carry the content digest from
// literal.ID, which ignores capacity: two entries with the same digest hold
// equal content in different capacity buckets.
//
// Registration order is stamped with a logical sequence number from a Clock.
// All listings are ordered by (seq, id) so that a registry restored from a
// store lists its entries in the order they were first registered.
package registry
