// Package precheck validates a candidate IP package before submission to
// the catalog: repository and release-tag reachability, tarball download
// and extraction, metadata schema validation, and the directory-hierarchy
// template for the package's type and category.
package precheck
