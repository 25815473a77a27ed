package manager

import (
	"context"

	"github.com/chipfoundry/ipm/internal/catalog"
)

// Status is the outcome of checking one installed package against the
// remote catalog.
type Status int

const (
	StatusUpToDate Status = iota
	StatusUpdateAvailable
	StatusUpdated
)

func (s Status) String() string {
	switch s {
	case StatusUpToDate:
		return "up to date"
	case StatusUpdateAvailable:
		return "update available"
	case StatusUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// CheckResult pairs a package with its local and freshly resolved remote
// versions.
type CheckResult struct {
	Name          string
	Technology    string
	LocalVersion  string
	RemoteVersion string
	Status        Status
}

// Summary accumulates the outcome of a bulk check or update.
type Summary struct {
	Results  []CheckResult
	Outdated int
	Updated  int
}

// Check compares an installed package's version against the catalog's
// latest. Versions are compared by exact string equality only; no
// ordering is applied, so a local version newer than the remote still
// reports an update.
func (m *Manager) Check(ctx context.Context, name, technology string) (CheckResult, error) {
	rec, err := m.Store.Find(name, technology)
	if err != nil {
		return CheckResult{}, err
	}

	cat, err := m.Catalog.Fetch(ctx)
	if err != nil {
		return CheckResult{}, err
	}
	ip, err := cat.Find(name, technology)
	if err != nil {
		return CheckResult{}, err
	}
	desc, err := catalog.ResolveRelease(ip, "")
	if err != nil {
		return CheckResult{}, err
	}

	res := CheckResult{
		Name:          name,
		Technology:    technology,
		LocalVersion:  rec.Version,
		RemoteVersion: desc.Version,
		Status:        StatusUpToDate,
	}
	if rec.Version != desc.Version {
		res.Status = StatusUpdateAvailable
	}
	return res, nil
}

// Update checks one package and, when an update is available, reinstalls
// it at the remote version: uninstall, then install with overwrite.
func (m *Manager) Update(ctx context.Context, name, technology string) (CheckResult, error) {
	res, err := m.Check(ctx, name, technology)
	if err != nil {
		return CheckResult{}, err
	}
	if res.Status != StatusUpdateAvailable {
		m.printf("The IP %s is up to date; version %s\n", name, res.LocalVersion)
		return res, nil
	}

	rec, err := m.Store.Find(name, technology)
	if err != nil {
		return CheckResult{}, err
	}
	m.printf("Updating %s...\n", name)
	if err := m.Uninstall(name, technology, rec.IPRoot, rec.IPRoot); err != nil {
		return CheckResult{}, err
	}
	if err := m.Install(ctx, name, res.RemoteVersion, technology, rec.IPRoot, rec.IPRoot, true); err != nil {
		return CheckResult{}, err
	}
	res.Status = StatusUpdated
	return res, nil
}

// CheckAll checks every registry entry in deterministic registry order,
// one fresh catalog fetch per package. A fetch or lookup failure aborts
// the remaining iteration.
func (m *Manager) CheckAll(ctx context.Context) (*Summary, error) {
	return m.walkRegistry(ctx, m.Check, func(sum *Summary, res CheckResult) {
		if res.Status == StatusUpdateAvailable {
			sum.Outdated++
			m.printf("The IP %s has a newer version %s; run 'ipm update --ip %s'\n", res.Name, res.RemoteVersion, res.Name)
		} else {
			m.printf("The IP %s is up to date; version %s\n", res.Name, res.LocalVersion)
		}
	})
}

// UpdateAll updates every outdated registry entry, sequentially. The
// first hard failure aborts the batch.
func (m *Manager) UpdateAll(ctx context.Context) (*Summary, error) {
	return m.walkRegistry(ctx, m.Update, func(sum *Summary, res CheckResult) {
		if res.Status == StatusUpdated {
			sum.Updated++
		}
	})
}

func (m *Manager) walkRegistry(
	ctx context.Context,
	op func(context.Context, string, string) (CheckResult, error),
	tally func(*Summary, CheckResult),
) (*Summary, error) {
	entries, err := m.Store.List()
	if err != nil {
		return nil, err
	}
	sum := &Summary{}
	for _, e := range entries {
		res, err := op(ctx, e.Name, e.Technology)
		if err != nil {
			return nil, err
		}
		tally(sum, res)
		sum.Results = append(sum.Results, res)
	}
	return sum, nil
}
