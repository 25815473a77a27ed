package catalog

// Schema identifies which of the two catalog layouts a document uses.
// It is decided once, at parse time.
type Schema int

const (
	// SchemaFlat keys the document by package name; each value carries a
	// description and a version-keyed release map.
	SchemaFlat Schema = iota
	// SchemaLegacy keys the document by category; each value is a list of
	// records whose release history is a list with explicit version fields.
	SchemaLegacy
)

func (s Schema) String() string {
	switch s {
	case SchemaFlat:
		return "flat"
	case SchemaLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Release is one published version of an IP.
type Release struct {
	Version       string
	Date          string
	Maturity      string
	Type          string
	Bus           []string
	Width         string
	Height        string
	CellCount     string
	ClockFreqMHz  string
	SupplyVoltage []string
	Draft         bool
	SHA256        string
}

// IP is one package's normalized catalog record. Releases holds every
// published version in document order; by catalog convention the last
// entry is the newest.
type IP struct {
	Name        string
	Description string
	Repo        string
	Author      string
	Email       string
	Category    string
	Technology  string
	License     string
	Tags        []string
	Releases    []Release
}

// LatestRelease returns the last non-draft release in document order.
// The second return is false when every release is a draft (or there
// are none).
func (ip *IP) LatestRelease() (Release, bool) {
	for i := len(ip.Releases) - 1; i >= 0; i-- {
		if !ip.Releases[i].Draft {
			return ip.Releases[i], true
		}
	}
	return Release{}, false
}

// FindRelease returns the release with the given version, drafts included.
func (ip *IP) FindRelease(version string) (Release, bool) {
	for _, r := range ip.Releases {
		if r.Version == version {
			return r, true
		}
	}
	return Release{}, false
}

// Catalog is a parsed catalog document. IPs preserves document order.
type Catalog struct {
	Schema Schema
	IPs    []IP
}

// Find looks up a package. The flat schema indexes by name alone; the
// legacy schema additionally filters by the record's technology field.
func (c *Catalog) Find(name, technology string) (*IP, error) {
	for i := range c.IPs {
		ip := &c.IPs[i]
		if ip.Name != name {
			continue
		}
		if c.Schema == SchemaLegacy && ip.Technology != technology {
			continue
		}
		if c.Schema == SchemaFlat {
			// The flat layout does not key by technology; the caller's
			// choice is recorded on the returned record.
			cp := *ip
			cp.Technology = technology
			return &cp, nil
		}
		return ip, nil
	}
	return nil, &NotFoundError{Name: name, Technology: technology}
}

// Names returns every package name in document order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.IPs))
	for i := range c.IPs {
		names = append(names, c.IPs[i].Name)
	}
	return names
}
