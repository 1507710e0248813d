package sites

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/domain"
	"gopkg.in/yaml.v3"
)

// skipReasonExists is reported for a domain that is already tracked.
const skipReasonExists = "domain already exists"

// ImportSummary counts the outcome of a bulk import.
type ImportSummary struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// ImportCreated is a site created by an import.
type ImportCreated struct {
	URL    string       `json:"url"`
	Domain string       `json:"domain"`
	Site   *domain.Site `json:"site"`
}

// ImportSkipped is an entry left out of an import.
type ImportSkipped struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}

// ImportError is an entry that failed to import.
type ImportError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// ImportDetails lists every entry by outcome.
type ImportDetails struct {
	Created []ImportCreated `json:"created"`
	Skipped []ImportSkipped `json:"skipped"`
	Errors  []ImportError   `json:"errors"`
}

// ImportReport is the result of a bulk import.
type ImportReport struct {
	Summary ImportSummary `json:"summary"`
	Details ImportDetails `json:"details"`
}

// NormalizeDomain reduces a URL or bare host to its host without "www.".
func NormalizeDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	host := ""
	if u, err := url.Parse(raw); err == nil {
		host = u.Hostname()
	}
	if host == "" {
		host, _, _ = strings.Cut(strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://"), "/")
	}
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// DisplayName derives a site name from a domain: its first label, capitalized.
func DisplayName(siteDomain string) string {
	label, _, _ := strings.Cut(siteDomain, ".")
	r, size := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError {
		return label
	}
	return string(unicode.ToUpper(r)) + label[size:]
}

// BulkImport creates one site per URL. Blank lines are ignored, and domains
// already tracked or repeated in the batch are skipped.
func (s *Service) BulkImport(ctx context.Context, urls []string) (*ImportReport, error) {
	entries := make([]ManifestSite, 0, len(urls))
	for _, u := range urls {
		entries = append(entries, ManifestSite{SiteInput: SiteInput{Domain: u}})
	}
	report, err := s.importEntries(ctx, entries)
	if err != nil {
		return nil, err
	}
	report.Summary.Total = len(urls)
	return report, nil
}

// Manifest is a YAML description of sites to track.
type Manifest struct {
	Sites []ManifestSite `yaml:"sites"`
}

// ManifestSite is one site of a manifest with its keywords.
type ManifestSite struct {
	SiteInput `yaml:",inline"`
	Keywords  []string `yaml:"keywords"`
}

// ParseManifest decodes a YAML site manifest.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("%w: parse manifest: %w", ErrInvalidInput, err)
	}
	return &m, nil
}

// ImportManifest creates the manifest's sites and keywords, skipping domains
// already tracked.
func (s *Service) ImportManifest(ctx context.Context, m *Manifest) (*ImportReport, error) {
	report, err := s.importEntries(ctx, m.Sites)
	if err != nil {
		return nil, err
	}
	report.Summary.Total = len(m.Sites)
	return report, nil
}

func (s *Service) importEntries(ctx context.Context, entries []ManifestSite) (*ImportReport, error) {
	existing, err := s.sites.Domains(ctx)
	if err != nil {
		return nil, fmt.Errorf("bulk import: %w", err)
	}
	known := make(map[string]struct{}, len(existing)+len(entries))
	for _, d := range existing {
		known[NormalizeDomain(d)] = struct{}{}
	}

	report := &ImportReport{Details: ImportDetails{
		Created: []ImportCreated{},
		Skipped: []ImportSkipped{},
		Errors:  []ImportError{},
	}}

	for _, entry := range entries {
		raw := strings.TrimSpace(entry.Domain)
		if raw == "" {
			continue
		}
		siteDomain := NormalizeDomain(raw)
		if _, dup := known[siteDomain]; dup {
			report.Details.Skipped = append(report.Details.Skipped,
				ImportSkipped{URL: raw, Domain: siteDomain, Reason: skipReasonExists})
			continue
		}

		in := entry.SiteInput
		in.Domain = siteDomain
		if strings.TrimSpace(in.Name) == "" {
			in.Name = DisplayName(siteDomain)
		}

		site, createErr := s.Create(ctx, in)
		if createErr == nil {
			createErr = s.addKeywords(ctx, site.ID, entry.Keywords)
		}
		if createErr != nil {
			report.Details.Errors = append(report.Details.Errors, ImportError{URL: raw, Error: createErr.Error()})
			continue
		}

		known[siteDomain] = struct{}{}
		report.Details.Created = append(report.Details.Created, ImportCreated{URL: raw, Domain: siteDomain, Site: site})
	}

	report.Summary.Created = len(report.Details.Created)
	report.Summary.Skipped = len(report.Details.Skipped)
	report.Summary.Errors = len(report.Details.Errors)
	s.log.Info("Bulk import finished",
		"created", report.Summary.Created,
		"skipped", report.Summary.Skipped,
		"errors", report.Summary.Errors,
	)
	return report, nil
}

func (s *Service) addKeywords(ctx context.Context, siteID int64, keywords []string) error {
	for _, text := range keywords {
		if strings.TrimSpace(text) == "" {
			continue
		}
		if _, err := s.AddKeyword(ctx, siteID, text); err != nil {
			return err
		}
	}
	return nil
}
