package catalog

// ReleaseDescriptor is a fully resolved install target: the package, the
// chosen version, its release metadata, and the archive URL to fetch.
type ReleaseDescriptor struct {
	Name        string
	Repo        string
	Version     string
	Release     Release
	DownloadURL string
}

// ResolveRelease picks a concrete release for ip. An empty version selects
// the last non-draft release in document order; the catalog convention is
// that the newest release is appended last, and no version ordering is
// applied here. An explicit version is returned even when marked draft.
func ResolveRelease(ip *IP, version string) (*ReleaseDescriptor, error) {
	var rel Release
	if version == "" {
		latest, ok := ip.LatestRelease()
		if !ok {
			return nil, &VersionNotFoundError{Name: ip.Name, Version: "latest"}
		}
		rel = latest
	} else {
		found, ok := ip.FindRelease(version)
		if !ok {
			return nil, &VersionNotFoundError{Name: ip.Name, Version: version}
		}
		rel = found
	}
	return &ReleaseDescriptor{
		Name:        ip.Name,
		Repo:        ip.Repo,
		Version:     rel.Version,
		Release:     rel,
		DownloadURL: InstallURL(ip.Repo, rel.Version),
	}, nil
}
