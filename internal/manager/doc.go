// Package manager drives the install, uninstall, check, and update
// workflows, tying the catalog resolver, the archive installer, and the
// two local JSON stores together. It is the only component with
// cross-cutting control flow; everything it calls is a stateless
// transformation over explicit inputs.
package manager
