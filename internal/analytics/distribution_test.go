package analytics

import (
	"reflect"
	"testing"

	"event-insights/internal/domain"
)

func fieldDef(id int64, label string) *domain.FieldDefinition {
	return &domain.FieldDefinition{ID: id, EventID: 1, Label: label}
}

func regWithAnswers(id int64, blob string) *domain.Registration {
	return &domain.Registration{ID: id, EventID: 1, RawDynamicFields: blob}
}

func TestBuildFieldDistribution(t *testing.T) {
	defs := []*domain.FieldDefinition{
		fieldDef(1, "T-shirt size"),
		fieldDef(2, "Diet"),
	}
	regs := []*domain.Registration{
		regWithAnswers(1, "1: M\n2: vegetarian"),
		regWithAnswers(2, "1: L\n2: vegetarian"),
		regWithAnswers(3, "1: M"),
	}

	got := BuildFieldDistribution(defs, regs)

	wantLabels := []string{"T-shirt size", "Diet"}
	if !reflect.DeepEqual(got.Labels, wantLabels) {
		t.Errorf("Labels = %v, want %v", got.Labels, wantLabels)
	}

	wantSizes := map[string]int{"M": 2, "L": 1}
	if !reflect.DeepEqual(got.Distribution["T-shirt size"], wantSizes) {
		t.Errorf("T-shirt size = %v, want %v", got.Distribution["T-shirt size"], wantSizes)
	}

	// One registrant skipped the diet field
	wantDiet := map[string]int{"vegetarian": 2, UndefinedBucket: 1}
	if !reflect.DeepEqual(got.Distribution["Diet"], wantDiet) {
		t.Errorf("Diet = %v, want %v", got.Distribution["Diet"], wantDiet)
	}
}

func TestBuildFieldDistributionSingleValueExcluded(t *testing.T) {
	defs := []*domain.FieldDefinition{fieldDef(1, "Country")}
	regs := []*domain.Registration{
		regWithAnswers(1, "1: FR"),
		regWithAnswers(2, "1: FR"),
	}

	got := BuildFieldDistribution(defs, regs)

	if _, ok := got.Distribution["Country"]; ok {
		t.Error("constant-answer field should be excluded from Distribution")
	}
	// But the label still appears
	if !reflect.DeepEqual(got.Labels, []string{"Country"}) {
		t.Errorf("Labels = %v, want [Country]", got.Labels)
	}
}

func TestBuildFieldDistributionFreeTextExcluded(t *testing.T) {
	defs := []*domain.FieldDefinition{fieldDef(1, "Comment")}

	// 21 distinct answers pushes the field over the chartable cap
	regs := make([]*domain.Registration, 0, 21)
	for i := 0; i < 21; i++ {
		blob := "1: answer-" + string(rune('a'+i))
		regs = append(regs, regWithAnswers(int64(i+1), blob))
	}

	got := BuildFieldDistribution(defs, regs)

	if _, ok := got.Distribution["Comment"]; ok {
		t.Error("field with more than 20 distinct values should be excluded")
	}
}

func TestBuildFieldDistributionUnknownFieldIgnored(t *testing.T) {
	defs := []*domain.FieldDefinition{fieldDef(1, "Size")}
	regs := []*domain.Registration{
		regWithAnswers(1, "1: M\n99: stray answer"),
		regWithAnswers(2, "1: L"),
	}

	got := BuildFieldDistribution(defs, regs)

	if len(got.Distribution) != 1 {
		t.Errorf("Distribution has %d fields, want 1", len(got.Distribution))
	}
	want := map[string]int{"M": 1, "L": 1}
	if !reflect.DeepEqual(got.Distribution["Size"], want) {
		t.Errorf("Size = %v, want %v", got.Distribution["Size"], want)
	}
}

func TestBuildFieldDistributionNoDefinitions(t *testing.T) {
	got := BuildFieldDistribution(nil, []*domain.Registration{regWithAnswers(1, "1: M")})

	if len(got.Labels) != 0 || len(got.Distribution) != 0 {
		t.Errorf("no definitions should produce an empty view, got %+v", got)
	}
	if got.Labels == nil {
		t.Error("Labels must be non-nil so it serializes as [] not null")
	}
}
