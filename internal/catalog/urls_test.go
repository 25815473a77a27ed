package catalog

import "testing"

func TestInstallURLGitHub(t *testing.T) {
	got := InstallURL("github.com/acme/widget", "v1.2.0")
	want := "https://github.com/acme/widget/archive/refs/tags/widget-v1.2.0.tar.gz"
	if got != want {
		t.Errorf("InstallURL = %q, want %q", got, want)
	}
}

func TestInstallURLNonGitHub(t *testing.T) {
	got := InstallURL("example.org/acme/widget", "v1.2.0")
	want := "https://example.org/acme/widget/releases/download/v1.2.0/v1.2.0.tar.gz"
	if got != want {
		t.Errorf("InstallURL = %q, want %q", got, want)
	}
}

func TestServiceDownloadURL(t *testing.T) {
	got, ok := ServiceDownloadURL("github.com/acme/widget", "widget", "v1.2.0")
	if !ok {
		t.Fatal("expected a service URL for a github repo")
	}
	want := "https://github.com/acme/widget/releases/download/widget-v1.2.0/v1.2.0.tar.gz"
	if got != want {
		t.Errorf("ServiceDownloadURL = %q, want %q", got, want)
	}
}

func TestServiceDownloadURLNonGitHub(t *testing.T) {
	if _, ok := ServiceDownloadURL("example.org/acme/widget", "widget", "v1.2.0"); ok {
		t.Error("service convention only covers github.com repos")
	}
}

// The install and service conventions intentionally disagree; a test pins
// the divergence so nobody "fixes" one side to match the other.
func TestConventionsDiverge(t *testing.T) {
	install := InstallURL("github.com/acme/widget", "v1.2.0")
	service, _ := ServiceDownloadURL("github.com/acme/widget", "widget", "v1.2.0")
	if install == service {
		t.Errorf("conventions unexpectedly unified: %q", install)
	}
}
