// Package config manages user-level settings stored at ~/.ipm/config.yaml
// and resolves the effective Settings used by every command: the management
// root, the IP installation root, the remote catalog URL, and the optional
// GitHub token for authenticated downloads.
package config
