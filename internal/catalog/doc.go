// Package catalog parses the IP catalog document, in either of its two
// historical JSON layouts, into a single normalized shape and resolves a
// package name plus optional version into a concrete release descriptor
// with its archive download URL.
package catalog
