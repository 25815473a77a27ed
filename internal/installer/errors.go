package installer

import "fmt"

// DestinationExistsError reports a non-empty install target that the
// caller did not ask to overwrite. Nothing has been mutated.
type DestinationExistsError struct {
	Name string
	Path string
}

func (e *DestinationExistsError) Error() string {
	return fmt.Sprintf("a non-empty directory for ip %q already exists at %s; pass --overwrite to replace it", e.Name, e.Path)
}

// DownloadFailedError reports a non-200 response for a release archive.
type DownloadFailedError struct {
	URL        string
	StatusCode int
}

func (e *DownloadFailedError) Error() string {
	return fmt.Sprintf("downloading %s: status %d", e.URL, e.StatusCode)
}
