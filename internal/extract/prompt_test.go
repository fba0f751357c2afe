package extract

import (
	"strings"
	"testing"
	"time"
)

func TestPromptCalendar(t *testing.T) {
	anchor := time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)
	p := Prompt(anchor, 8, 6, "csv-body")

	wants := []string{
		"group trip of 6 people",
		"starts on **October 28, 2025**",
		"**Day 1**: 28 (TUE)",
		"**Day 2**: 29 (WED)",
		"**Day 4**: 31 (FRI)",
		"**Day 5**: 1 (SAT) [November]", // month rollover annotated
		"**Day 8**: 4 (TUE)",
		`'month': "10月"`,
		"csv-body",
	}
	for _, w := range wants {
		if !strings.Contains(p, w) {
			t.Fatalf("prompt missing %q", w)
		}
	}
}

func TestPromptRespectsAnchor(t *testing.T) {
	anchor := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	p := Prompt(anchor, 3, 4, "x")

	for _, w := range []string{
		"group trip of 4 people",
		"starts on **March 2, 2026**",
		"**Day 1**: 2 (MON)",
		"**Day 3**: 4 (WED)",
		`'month': "3月"`,
	} {
		if !strings.Contains(p, w) {
			t.Fatalf("prompt missing %q", w)
		}
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel(time.Date(2025, 10, 28, 0, 0, 0, 0, time.UTC)); got != "10月" {
		t.Fatalf("got %q", got)
	}
	if got := MonthLabel(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)); got != "1月" {
		t.Fatalf("got %q", got)
	}
}

func TestSchemaShape(t *testing.T) {
	s := Schema()
	if len(s.Required) != 2 || s.Required[0] != "tripTitle" {
		t.Fatalf("top-level required = %v", s.Required)
	}

	day := s.Properties["days"].Items
	event := day.Properties["events"].Items

	cat := event.Properties["category"]
	if len(cat.Enum) != 5 {
		t.Fatalf("category enum = %v", cat.Enum)
	}
	method := event.Properties["expense"].Properties["method"]
	if len(method.Enum) != 2 || method.Enum[0] != "CASH" {
		t.Fatalf("method enum = %v", method.Enum)
	}
	traffic := event.Properties["trafficStatus"]
	if len(traffic.Enum) != 3 {
		t.Fatalf("traffic enum = %v", traffic.Enum)
	}
	if event.Properties["details"].Properties["onsen"] == nil {
		t.Fatalf("details missing onsen substructure")
	}
}
