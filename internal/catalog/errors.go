package catalog

import "fmt"

// MalformedCatalogError reports a record missing a field its schema
// requires. The whole catalog read aborts; records are never dropped
// silently.
type MalformedCatalogError struct {
	Record string // package name, or category for container-level faults
	Field  string
}

func (e *MalformedCatalogError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed catalog record %q", e.Record)
	}
	return fmt.Sprintf("malformed catalog record %q: missing required field %q", e.Record, e.Field)
}

// NotFoundError reports a package lookup miss.
type NotFoundError struct {
	Name       string
	Technology string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ip %q not found in catalog for technology %q", e.Name, e.Technology)
}

// VersionNotFoundError reports a version absent from a package's release set.
type VersionNotFoundError struct {
	Name    string
	Version string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("ip %q has no release %q", e.Name, e.Version)
}
