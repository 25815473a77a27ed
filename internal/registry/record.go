package registry

import "github.com/chipfoundry/ipm/internal/catalog"

// InstalledIP is one registry entry: the catalog metadata captured at
// install time plus where the files went. The JSON field names are the
// on-disk contract and predate this implementation.
type InstalledIP struct {
	Name       string   `json:"name"`
	Repo       string   `json:"repo"`
	Version    string   `json:"version"`
	Date       string   `json:"date"`
	Author     string   `json:"author"`
	Email      string   `json:"email"`
	Category   string   `json:"category"`
	Type       string   `json:"type"`
	Status     string   `json:"status"`
	Width      string   `json:"width"`
	Height     string   `json:"height"`
	Technology string   `json:"technology"`
	Tag        []string `json:"tag"`
	CellCount  string   `json:"cell_count"`
	ClkFreq    string   `json:"clk_freq"`
	License    string   `json:"license"`
	IPRoot     string   `json:"ip_root"`
}

// NewInstalledIP maps a resolved catalog record onto a registry entry.
// The mapping is explicit so a schema change on either side shows up as
// a compile error, not a silently dropped field.
func NewInstalledIP(ip *catalog.IP, rel catalog.Release, ipRoot string) InstalledIP {
	return InstalledIP{
		Name:       ip.Name,
		Repo:       ip.Repo,
		Version:    rel.Version,
		Date:       rel.Date,
		Author:     ip.Author,
		Email:      ip.Email,
		Category:   ip.Category,
		Type:       rel.Type,
		Status:     rel.Maturity,
		Width:      rel.Width,
		Height:     rel.Height,
		Technology: ip.Technology,
		Tag:        ip.Tags,
		CellCount:  rel.CellCount,
		ClkFreq:    rel.ClockFreqMHz,
		License:    ip.License,
		IPRoot:     ipRoot,
	}
}
