package installer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chipfoundry/ipm/internal/catalog"
	"github.com/chipfoundry/ipm/internal/userdata"
)

// Installer fetches and places release archives. A GitHub token, when
// set, authenticates downloads whose host is github.com; it is never
// sent anywhere else.
type Installer struct {
	HTTPClient *http.Client
	Token      string
	UserAgent  string
}

// New returns an installer with the default HTTP client.
func New(token string) *Installer {
	return &Installer{
		HTTPClient: &http.Client{Timeout: 10 * time.Minute},
		Token:      token,
		UserAgent:  "ipm",
	}
}

// TargetNonEmpty reports whether destRoot/name exists and has contents.
func TargetNonEmpty(destRoot, name string) (bool, error) {
	entries, err := os.ReadDir(filepath.Join(destRoot, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

// Install downloads desc's archive and installs it at destRoot/name.
//
// A non-empty existing target fails with DestinationExistsError unless
// overwrite is set, in which case the tree is deleted first; the caller
// is expected to have dropped its registry and dependency entries before
// asking for an overwrite. An empty existing target is recreated
// silently. A failure partway through does not roll back the partially
// written destination.
func (in *Installer) Install(ctx context.Context, desc *catalog.ReleaseDescriptor, name, destRoot string, overwrite bool) error {
	ipPath := filepath.Join(destRoot, name)
	nonEmpty, err := TargetNonEmpty(destRoot, name)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", ipPath, err)
	}
	if _, err := os.Stat(ipPath); err == nil {
		if nonEmpty && !overwrite {
			return &DestinationExistsError{Name: name, Path: ipPath}
		}
		if err := os.RemoveAll(ipPath); err != nil {
			return fmt.Errorf("removing existing %s: %w", ipPath, err)
		}
	}

	tarball := filepath.Join(destRoot, name+".tar.gz")
	if err := in.Download(ctx, desc.DownloadURL, tarball); err != nil {
		return err
	}
	defer os.Remove(tarball)

	if desc.Release.SHA256 != "" {
		if err := verifySHA256(tarball, desc.Release.SHA256); err != nil {
			return err
		}
	}

	scratch := filepath.Join(destRoot, name+"_extract")
	if err := os.RemoveAll(scratch); err != nil {
		return fmt.Errorf("clearing scratch dir %s: %w", scratch, err)
	}
	if err := os.MkdirAll(scratch, userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating scratch dir %s: %w", scratch, err)
	}
	defer os.RemoveAll(scratch)

	if err := ExtractTarGz(tarball, scratch); err != nil {
		return fmt.Errorf("extracting %s: %w", tarball, err)
	}

	if err := PlaceTree(scratch, ipPath); err != nil {
		return fmt.Errorf("placing %s: %w", name, err)
	}
	return nil
}

// PlaceTree classifies the extracted layout under scratch and copies the
// package files into dest, merging with anything already there.
func PlaceTree(scratch, dest string) error {
	src, err := packageRoot(scratch)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	return copyChildren(src, dest)
}

// packageRoot classifies the extracted layout. Exactly one entry that is
// a directory means a wrapped source archive; its children are the
// package root. Anything else is already the package root.
func packageRoot(scratch string) (string, error) {
	entries, err := os.ReadDir(scratch)
	if err != nil {
		return "", fmt.Errorf("reading scratch dir: %w", err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(scratch, entries[0].Name()), nil
	}
	return scratch, nil
}

// Download fetches rawURL into the file at dest, sending the configured
// token only when the host is github.com.
func (in *Installer) Download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}
	if in.UserAgent != "" {
		req.Header.Set("User-Agent", in.UserAgent)
	}
	if in.Token != "" && isGitHub(rawURL) {
		req.Header.Set("Authorization", "token "+in.Token)
	}

	httpClient := in.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &DownloadFailedError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

func isGitHub(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Hostname() == "github.com"
}

func verifySHA256(path, expected string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("computing checksum: %w", err)
	}
	actual := hex.EncodeToString(h.Sum(nil))
	if actual != expected {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s", filepath.Base(path), expected, actual)
	}
	return nil
}
