package regdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/veracomply/posture/internal/compliance"
)

const gdprYAML = `id: gdpr
name: GDPR
articles:
  - id: art-5
    numeric_id: 5
    title: Principles relating to processing
    mapped_controls:
      ISO 27001: ["A.5.1", "A.5.2"]
  - id: art-30
    numeric_id: 30
    title: Records of processing activities
    mapped_controls: ["AC-1", "AC-2"]
questions:
  - id: q1
    text: Is a DPO appointed?
    type: boolean
    failure_guidance: Appoint a data protection officer.
  - id: q2
    text: Is consent tracked?
    type: boolean
`

const nis2YAML = `id: nis2
name: NIS2
articles:
  - id: art-21
    numeric_id: 21
    title: Cybersecurity risk-management measures
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "gdpr.yaml"), []byte(gdprYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nis2.yml"), []byte(nis2YAML), 0644); err != nil {
		t.Fatal(err)
	}
	// Non-YAML files are ignored.
	os.WriteFile(filepath.Join(dir, "README.md"), []byte("# reference data"), 0644)
	return dir
}

func TestLoad(t *testing.T) {
	cat, err := Load(writeCatalog(t))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cat.Len())
	}

	gdpr, err := cat.Get("gdpr")
	if err != nil {
		t.Fatalf("Get(gdpr) error: %v", err)
	}
	if len(gdpr.Articles) != 2 || len(gdpr.Questions) != 2 {
		t.Errorf("gdpr loaded with %d articles, %d questions, want 2 and 2", len(gdpr.Articles), len(gdpr.Questions))
	}
	if gdpr.Questions[0].FailureGuidance == "" {
		t.Errorf("failure guidance not loaded")
	}

	all := cat.All()
	if len(all) != 2 || all[0].ID != "gdpr" || all[1].ID != "nis2" {
		t.Errorf("All() = %v, want [gdpr nis2]", all)
	}
}

func TestLoadedMappingsResolve(t *testing.T) {
	cat, err := Load(writeCatalog(t))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	gdpr, _ := cat.Get("gdpr")

	// Both mapping shapes — per-framework map and legacy flat list — must
	// survive the YAML round trip and resolve without warnings.
	mapping, warns := compliance.ResolveRegulationMappings(gdpr)
	if len(warns) != 0 {
		t.Fatalf("warnings = %v, want none", warns)
	}
	if got := mapping.ControlCount(); got != 4 {
		t.Errorf("ControlCount() = %d, want 4", got)
	}
	if len(mapping["ISO 27001"]) != 2 {
		t.Errorf(`mapping["ISO 27001"] = %v, want 2 IDs`, mapping["ISO 27001"])
	}
	if len(mapping[compliance.FrameworkUnspecified]) != 2 {
		t.Errorf("legacy list not attributed to %s: %v", compliance.FrameworkUnspecified, mapping)
	}
}

func TestGetNotFound(t *testing.T) {
	cat, err := Load(writeCatalog(t))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	_, err = cat.Get("dora")
	var nfErr *compliance.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if nfErr.Kind != "regulation" || nfErr.ID != "dora" {
		t.Errorf("NotFoundError = %+v", nfErr)
	}
}

func TestLoadRejectsMissingID(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: No ID Here\n"), 0644)
	if _, err := Load(dir); err == nil {
		t.Fatal("Load accepted a regulation without an id")
	}
}

func TestLoadRejectsDuplicateID(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("id: gdpr\n"), 0644)
	os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("id: gdpr\n"), 0644)
	if _, err := Load(dir); err == nil {
		t.Fatal("Load accepted duplicate regulation IDs")
	}
}
