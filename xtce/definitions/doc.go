// Package definitions loads an XTCE XML document into an in-memory
// Definition — three insertion-ordered sets (parameter types, parameters,
// sequence containers) plus a designated root container and document
// metadata — and can serialize a Definition back to XTCE (spec §3, §4.7,
// §8's round-trip law).
package definitions
