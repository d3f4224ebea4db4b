package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/gravida/internal/models"
)

func TestDefaultCatalogIsConsistent(t *testing.T) {
	seen := make(map[string]struct{})
	for _, definition := range models.DefaultMilestoneDefinitions() {
		if _, duplicate := seen[definition.ID]; duplicate {
			t.Fatalf("duplicate preset milestone id %q", definition.ID)
		}
		seen[definition.ID] = struct{}{}

		if definition.Week < 1 || definition.Week > models.MaxWeek {
			t.Fatalf("preset %q has week %d outside [1, %d]", definition.ID, definition.Week, models.MaxWeek)
		}
		if want := TrimesterForWeek(definition.Week); definition.Trimester != want {
			t.Fatalf("preset %q trimester %d disagrees with week %d (want %d)", definition.ID, definition.Trimester, definition.Week, want)
		}
		if !definition.Importance.Valid() {
			t.Fatalf("preset %q has invalid importance %q", definition.ID, definition.Importance)
		}
		if definition.Category == models.CategoryCustom {
			t.Fatalf("preset %q must not use the custom category", definition.ID)
		}
	}
}

func TestAllDefinitionsOrderedByWeek(t *testing.T) {
	state, custom, err := AddCustomMilestone(models.MilestoneState{}, "Babymoon", 18, models.ImportanceLow)
	if err != nil {
		t.Fatalf("add custom milestone: %v", err)
	}

	definitions := AllDefinitions(state.Custom)
	previousWeek := 0
	customSeen := false
	for _, definition := range definitions {
		if definition.Week < previousWeek {
			t.Fatalf("definitions not ordered by week")
		}
		previousWeek = definition.Week
		if definition.ID == custom.ID {
			customSeen = true
		}
	}
	if !customSeen {
		t.Fatalf("custom definition missing from the combined catalog")
	}
}

func TestNewCustomDefinitionValidation(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		week       int
		importance models.MilestoneImportance
		wantErr    error
	}{
		{name: "empty title", title: "  ", week: 10, wantErr: ErrInvalidMilestoneTitle},
		{name: "title too long", title: strings.Repeat("x", 200), week: 10, wantErr: ErrInvalidMilestoneTitle},
		{name: "week zero", title: "ok", week: 0, wantErr: ErrInvalidMilestoneWeek},
		{name: "week too high", title: "ok", week: 41, wantErr: ErrInvalidMilestoneWeek},
		{name: "bad importance", title: "ok", week: 10, importance: "urgent", wantErr: ErrInvalidMilestoneImportance},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := NewCustomDefinition(testCase.title, testCase.week, testCase.importance); !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected %v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestNewCustomDefinitionDefaults(t *testing.T) {
	definition, err := NewCustomDefinition(" Babymoon ", 18, "")
	if err != nil {
		t.Fatalf("NewCustomDefinition() unexpected error: %v", err)
	}
	if definition.ID == "" {
		t.Fatalf("expected a generated id")
	}
	if definition.Title != "Babymoon" {
		t.Fatalf("expected trimmed title, got %q", definition.Title)
	}
	if definition.Category != models.CategoryCustom || definition.IsAutoDetectable {
		t.Fatalf("custom definition must be category custom and never auto-detectable")
	}
	if definition.Importance != models.ImportanceMedium {
		t.Fatalf("expected defaulted importance, got %q", definition.Importance)
	}
	if definition.Trimester != 2 {
		t.Fatalf("expected trimester derived from week 18, got %d", definition.Trimester)
	}
}

func TestFindDefinitionCoversPresetAndCustom(t *testing.T) {
	state, custom, err := AddCustomMilestone(models.MilestoneState{}, "Babymoon", 18, models.ImportanceLow)
	if err != nil {
		t.Fatalf("add custom milestone: %v", err)
	}

	if _, found := FindDefinition(state.Custom, "first-kick"); !found {
		t.Fatalf("expected preset lookup to succeed")
	}
	if _, found := FindDefinition(state.Custom, custom.ID); !found {
		t.Fatalf("expected custom lookup to succeed")
	}
	if _, found := FindDefinition(state.Custom, "missing"); found {
		t.Fatalf("expected lookup miss for unknown id")
	}
}
