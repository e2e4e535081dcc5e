package handlers

import (
	"testing"

	"github.com/wynterCG/website/internal/config"
	"github.com/wynterCG/website/internal/seo"
)

func TestAnalyticsFromConfig(t *testing.T) {
	a := AnalyticsFromConfig(config.AnalyticsConfig{GA4MeasurementID: "G-1"})
	if !a.Enabled() {
		t.Fatal("expected analytics enabled")
	}
	if AnalyticsFromConfig(config.AnalyticsConfig{}).Enabled() {
		t.Fatal("expected analytics disabled")
	}
}

func TestNewSEOData(t *testing.T) {
	d := NewSEOData(seo.Meta{Title: "T"}, seo.Person("Daniel", "", "", nil), nil)
	if d.Title != "T" {
		t.Errorf("unexpected title %q", d.Title)
	}
	if len(d.JSONLD) != 1 {
		t.Fatalf("expected nil schemas to be skipped, got %d blocks", len(d.JSONLD))
	}
}
