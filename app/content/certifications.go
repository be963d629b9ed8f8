package content

import (
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"
)

var _ Adapter[Certification] = (*CertificationsAdapter)(nil)

type CertificationsAdapter struct {
	locator string
}

func NewCertificationsAdapter(locator string) *CertificationsAdapter {
	return &CertificationsAdapter{locator: locator}
}

func (a *CertificationsAdapter) Name() string {
	return "certifications"
}

func (a *CertificationsAdapter) Locator() string {
	return a.locator
}

func (a *CertificationsAdapter) DisplayCap() int {
	return 0
}

func (a *CertificationsAdapter) RenderCard(cert Certification, index int) (template.HTML, error) {
	return RenderCertificationCard(cert, index)
}

type certificationsDocument struct {
	Certifications []Certification `yaml:"certifications"`
}

func (a *CertificationsAdapter) Parse(data []byte) ([]Certification, error) {
	var doc certificationsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", ErrParse, err)
	}

	certs := make([]Certification, 0, len(doc.Certifications))
	for i, cert := range doc.Certifications {
		if strings.TrimSpace(cert.Name) == "" {
			slog.Warn("Skipping certification without name", "index", i, "source", a.locator)
			continue
		}
		certs = append(certs, cert)
	}

	if len(certs) == 0 {
		return nil, fmt.Errorf("%w: no certifications in %s", ErrEmpty, a.locator)
	}

	return certs, nil
}
