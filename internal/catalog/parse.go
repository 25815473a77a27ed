package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Parse decodes a raw catalog document, decides which schema it uses, and
// normalizes every record. Detection inspects the first top-level value:
// an object containing a "description" field means the flat schema,
// anything else means the legacy schema.
func Parse(data []byte) (*Catalog, error) {
	schema, err := detectSchema(data)
	if err != nil {
		return nil, err
	}

	var ips []IP
	switch schema {
	case SchemaFlat:
		ips, err = parseFlat(data)
	case SchemaLegacy:
		ips, err = parseLegacy(data)
	}
	if err != nil {
		return nil, err
	}
	return &Catalog{Schema: schema, IPs: ips}, nil
}

func detectSchema(data []byte) (Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return 0, fmt.Errorf("decoding catalog: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return 0, fmt.Errorf("decoding catalog: top-level value is not an object")
	}
	if !dec.More() {
		// An empty document parses as an empty legacy catalog.
		return SchemaLegacy, nil
	}
	if _, err := dec.Token(); err != nil {
		return 0, fmt.Errorf("decoding catalog: %w", err)
	}
	var first map[string]json.RawMessage
	if err := dec.Decode(&first); err != nil {
		// Legacy values are arrays, not objects.
		return SchemaLegacy, nil
	}
	if _, ok := first["description"]; ok {
		return SchemaFlat, nil
	}
	return SchemaLegacy, nil
}

// flexString accepts a JSON string or number; legacy catalogs store the
// physical attributes as strings, flat catalogs as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type flatRecord struct {
	Description string   `json:"description"`
	Repo        string   `json:"repo"`
	Author      string   `json:"author"`
	Email       string   `json:"email"`
	Category    string   `json:"category"`
	Technology  string   `json:"technology"`
	License     string   `json:"license"`
	Tags        []string `json:"tags"`
}

type flatReleaseInfo struct {
	Date          string       `json:"date"`
	Maturity      string       `json:"maturity"`
	Type          string       `json:"type"`
	Bus           []string     `json:"bus"`
	Width         flexString   `json:"width"`
	Height        flexString   `json:"height"`
	CellCount     flexString   `json:"cell_count"`
	ClockFreqMHz  flexString   `json:"clock_freq_mhz"`
	SupplyVoltage []flexString `json:"supply_voltage"`
	Draft         bool         `json:"draft"`
	SHA256        string       `json:"sha256"`
}

var flatRequired = []string{"description", "repo", "author", "email", "category", "license", "release"}

func parseFlat(data []byte) ([]IP, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	var ips []IP
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding catalog: %w", err)
		}
		name, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoding catalog record %q: %w", name, err)
		}
		ip, err := parseFlatRecord(name, raw)
		if err != nil {
			return nil, err
		}
		ips = append(ips, ip)
	}
	return ips, nil
}

func parseFlatRecord(name string, raw json.RawMessage) (IP, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return IP{}, fmt.Errorf("decoding catalog record %q: %w", name, err)
	}
	for _, f := range flatRequired {
		if _, ok := fields[f]; !ok {
			return IP{}, &MalformedCatalogError{Record: name, Field: f}
		}
	}

	var rec flatRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return IP{}, fmt.Errorf("decoding catalog record %q: %w", name, err)
	}
	releases, err := parseFlatReleases(name, fields["release"])
	if err != nil {
		return IP{}, err
	}
	return IP{
		Name:        name,
		Description: rec.Description,
		Repo:        rec.Repo,
		Author:      rec.Author,
		Email:       rec.Email,
		Category:    rec.Category,
		Technology:  rec.Technology,
		License:     rec.License,
		Tags:        rec.Tags,
		Releases:    releases,
	}, nil
}

// parseFlatReleases walks the release object token by token so that the
// document's key order survives into the slice. The last entry is what
// "latest" resolves to, so the order is load-bearing.
func parseFlatReleases(name string, raw json.RawMessage) ([]Release, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding releases of %q: %w", name, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("decoding releases of %q: release is not an object", name)
	}
	var releases []Release
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding releases of %q: %w", name, err)
		}
		version, _ := keyTok.(string)
		var info flatReleaseInfo
		if err := dec.Decode(&info); err != nil {
			return nil, fmt.Errorf("decoding release %q of %q: %w", version, name, err)
		}
		releases = append(releases, Release{
			Version:       version,
			Date:          info.Date,
			Maturity:      info.Maturity,
			Type:          info.Type,
			Bus:           info.Bus,
			Width:         string(info.Width),
			Height:        string(info.Height),
			CellCount:     string(info.CellCount),
			ClockFreqMHz:  string(info.ClockFreqMHz),
			SupplyVoltage: toStrings(info.SupplyVoltage),
			Draft:         info.Draft,
			SHA256:        info.SHA256,
		})
	}
	return releases, nil
}

func toStrings(in []flexString) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

type legacyRecord struct {
	Name       string               `json:"name"`
	Repo       string               `json:"repo"`
	Author     string               `json:"author"`
	Email      string               `json:"email"`
	Type       string               `json:"type"`
	Status     string               `json:"status"`
	Width      flexString           `json:"width"`
	Height     flexString           `json:"height"`
	Technology string               `json:"technology"`
	Tag        []string             `json:"tag"`
	CellCount  flexString           `json:"cell_count"`
	ClkFreq    flexString           `json:"clk_freq"`
	License    string               `json:"license"`
	Release    []legacyReleaseEntry `json:"release"`
}

type legacyReleaseEntry struct {
	Version string `json:"version"`
	Date    string `json:"date"`
}

var legacyRequired = []string{"name", "repo", "author", "email", "type", "status", "technology", "tag", "license", "release"}

func parseLegacy(data []byte) ([]IP, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	var ips []IP
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding catalog: %w", err)
		}
		category, _ := tok.(string)
		var records []json.RawMessage
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("decoding catalog category %q: %w", category, err)
		}
		for _, raw := range records {
			ip, err := parseLegacyRecord(category, raw)
			if err != nil {
				return nil, err
			}
			ips = append(ips, ip)
		}
	}
	return ips, nil
}

func parseLegacyRecord(category string, raw json.RawMessage) (IP, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return IP{}, fmt.Errorf("decoding catalog record in category %q: %w", category, err)
	}
	var rec legacyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return IP{}, fmt.Errorf("decoding catalog record in category %q: %w", category, err)
	}
	name := rec.Name
	if name == "" {
		name = category
	}
	for _, f := range legacyRequired {
		if _, ok := fields[f]; !ok {
			return IP{}, &MalformedCatalogError{Record: name, Field: f}
		}
	}

	// The legacy layout keeps the physical attributes at record level;
	// normalization pushes them down onto every release.
	releases := make([]Release, 0, len(rec.Release))
	for _, entry := range rec.Release {
		if entry.Version == "" {
			return IP{}, &MalformedCatalogError{Record: name, Field: "release.version"}
		}
		releases = append(releases, Release{
			Version:      entry.Version,
			Date:         entry.Date,
			Maturity:     rec.Status,
			Type:         rec.Type,
			Width:        string(rec.Width),
			Height:       string(rec.Height),
			CellCount:    string(rec.CellCount),
			ClockFreqMHz: string(rec.ClkFreq),
		})
	}
	return IP{
		Name:       rec.Name,
		Repo:       rec.Repo,
		Author:     rec.Author,
		Email:      rec.Email,
		Category:   category,
		Technology: rec.Technology,
		License:    rec.License,
		Tags:       rec.Tag,
		Releases:   releases,
	}, nil
}
