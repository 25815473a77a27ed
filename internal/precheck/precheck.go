package precheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/chipfoundry/ipm/internal/catalog"
	"github.com/chipfoundry/ipm/internal/installer"
	"github.com/chipfoundry/ipm/internal/userdata"
)

// Checker runs the pre-submission validation of a candidate package:
// the repository and release tag must be reachable, the tarball must
// download and extract, the metadata file must satisfy the schema, and
// the directory hierarchy must match the template for the package type.
type Checker struct {
	// Home is the management root; scratch space lives under it.
	Home      string
	Installer *installer.Installer
	Out       io.Writer
}

// Result is the aggregated outcome. A package passes only when Failures
// is empty; Warnings are advisory.
type Result struct {
	Failures []string
	Warnings []string
}

// OK reports whether the candidate passed every check.
func (r *Result) OK() bool { return len(r.Failures) == 0 }

func (c *Checker) printf(format string, args ...any) {
	if c.Out != nil {
		fmt.Fprintf(c.Out, format, args...)
	}
}

// Run validates the candidate package name/version published at repo.
// The repo may be given with or without an https:// prefix. Checks run
// step-wise; an unreachable repo or tag short-circuits the rest.
func (c *Checker) Run(ctx context.Context, name, version, repo string) (*Result, error) {
	res := &Result{}

	repoLoc := strings.TrimPrefix(repo, "https://")
	repoURL := "https://" + repoLoc

	// Version tags are not required to be semver, but a tag the version
	// ordering tools cannot parse is worth flagging.
	if _, err := semver.NewVersion(strings.TrimPrefix(version, "v")); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("version tag %q is not a well-formed semantic version", version))
	}

	c.printf("[STEP 1]: Checking the repository %s\n", repoURL)
	if ok, err := c.checkURL(ctx, repoURL, res, fmt.Sprintf("the repository %s does not exist", repoLoc)); err != nil || !ok {
		return res, err
	}

	tagURL := repoURL + "/releases/tag/" + version
	c.printf("[STEP 2]: Checking for a release tagged %s\n", version)
	if ok, err := c.checkURL(ctx, tagURL, res, fmt.Sprintf("no release tagged %s in %s", version, repoLoc)); err != nil || !ok {
		return res, err
	}

	tarballURL := catalog.InstallURL(repoLoc, version)
	c.printf("[STEP 3]: Checking for the tarball at %s\n", tarballURL)

	scratch := filepath.Join(c.Home, name+"_pre-check")
	if err := os.RemoveAll(scratch); err != nil {
		return nil, fmt.Errorf("clearing pre-check dir: %w", err)
	}
	if err := os.MkdirAll(scratch, userdata.DirPermNormal); err != nil {
		return nil, fmt.Errorf("creating pre-check dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	tarball := filepath.Join(scratch, version+".tar.gz")
	if err := c.Installer.Download(ctx, tarballURL, tarball); err != nil {
		if dl, ok := err.(*installer.DownloadFailedError); ok {
			res.Failures = append(res.Failures, fmt.Sprintf("no tarball found at %s (status %d)", dl.URL, dl.StatusCode))
			return res, nil
		}
		return nil, err
	}

	extractDir := filepath.Join(scratch, "extract")
	if err := installer.ExtractTarGz(tarball, extractDir); err != nil {
		res.Failures = append(res.Failures, fmt.Sprintf("extracting tarball: %v", err))
		return res, nil
	}
	ipPath := filepath.Join(scratch, name)
	if err := installer.PlaceTree(extractDir, ipPath); err != nil {
		return nil, err
	}

	c.printf("[STEP 4]: Checking the metadata file\n")
	metaPath := filepath.Join(ipPath, name+".json")
	vr, err := ValidateMetadataFile(metaPath, name)
	if err != nil {
		res.Failures = append(res.Failures, fmt.Sprintf("metadata file %s.json: %v", name, err))
		return res, nil
	}
	if !vr.Valid {
		for _, issue := range vr.Issues {
			res.Failures = append(res.Failures, fmt.Sprintf("metadata %s: %s", issue.Path, issue.Message))
		}
		return res, nil
	}

	c.printf("[STEP 5]: Checking the directory hierarchy\n")
	pkgType, category := metadataShape(metaPath)
	res.Failures = append(res.Failures, CheckHierarchy(ipPath, name, pkgType, category)...)

	if res.OK() {
		c.printf("Pre-check passed; the package is ready for submission\n")
	}
	return res, nil
}

// checkURL issues a GET and translates the interesting statuses into a
// failure message. The bool reports whether the step passed.
func (c *Checker) checkURL(ctx context.Context, url string, res *Result, notFoundMsg string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	if c.Installer.Token != "" && strings.Contains(url, "github.com") {
		req.Header.Set("Authorization", "token "+c.Installer.Token)
	}

	httpClient := c.Installer.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		res.Failures = append(res.Failures, notFoundMsg)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		res.Failures = append(res.Failures, fmt.Sprintf("authentication issue accessing %s; check your GITHUB_TOKEN", url))
	default:
		res.Failures = append(res.Failures, fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, url))
	}
	return false, nil
}

// metadataShape pulls the type and category fields used to pick the
// hierarchy template. The file already passed schema validation.
func metadataShape(metaPath string) (pkgType, category string) {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return "", ""
	}
	var meta struct {
		Type     string `json:"type"`
		Category string `json:"category"`
	}
	_ = json.Unmarshal(data, &meta)
	return meta.Type, meta.Category
}
