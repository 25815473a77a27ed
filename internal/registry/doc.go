// Package registry persists local install state: Installed_IPs.json, the
// category-keyed record of every installed IP, and dependencies.json, the
// flat manifest of packages requested as dependencies. The two documents
// have independent lifecycles and are each rewritten whole on mutation.
package registry
