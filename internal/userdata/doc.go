// Package userdata resolves the on-disk locations managed by ipm: the
// management root holding the local registry and dependency manifest, and
// the IP installation root holding one directory per installed IP.
package userdata
