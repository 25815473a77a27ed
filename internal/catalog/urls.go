package catalog

import "strings"

// InstallURL builds the archive URL the installer downloads. The repo is a
// host+path location without a scheme, e.g. "github.com/acme/widget".
// GitHub repos publish source archives under the tag <repoName>-<version>;
// everything else is assumed to attach a plain release asset.
func InstallURL(repo, version string) string {
	if repoHost(repo) == "github.com" {
		parts := strings.Split(repo, "/")
		repoName := parts[len(parts)-1]
		return "https://" + repo + "/archive/refs/tags/" + repoName + "-" + version + ".tar.gz"
	}
	return "https://" + repo + "/releases/download/" + version + "/" + version + ".tar.gz"
}

// ServiceDownloadURL builds the URL the catalog-serving API hands out for
// the same artifact. It deliberately differs from InstallURL; the two
// conventions coexist and neither may be changed to match the other
// without the catalog maintainers signing off.
func ServiceDownloadURL(repo, name, version string) (string, bool) {
	if repoHost(repo) != "github.com" {
		return "", false
	}
	parts := strings.Split(repo, "/")
	if len(parts) < 3 {
		return "", false
	}
	owner, repoName := parts[1], parts[2]
	return "https://github.com/" + owner + "/" + repoName + "/releases/download/" + name + "-" + version + "/" + version + ".tar.gz", true
}

func repoHost(repo string) string {
	host, _, _ := strings.Cut(repo, "/")
	return host
}
