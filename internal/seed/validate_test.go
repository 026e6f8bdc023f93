package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptrBool(b bool) *bool { return &b }

func validSeedFile() *File {
	return &File{
		Stages: []StageSeed{
			{Name: "nesting", Default: true, TargetColumns: []TargetColSeed{{Column: "nesting_date", Color: "#83a598"}}},
			{Name: "machining"},
			{Name: "assembly"},
			{Name: "delivery", Final: true},
		},
		Rules: []RuleSeed{
			{From: "assembly", To: "delivery", Days: 3},
			{From: "machining", To: "assembly", Days: 2},
			{From: "nesting", To: "machining", Days: 2},
		},
		Holidays: []HolidaySeed{
			{Date: "2026-12-25", Name: "Christmas Day"},
			{Date: "2026-12-29", Name: "Shutdown", Public: ptrBool(false)},
		},
	}
}

// assertHasError checks that at least one collected error mentions want.
func assertHasError(t *testing.T, errs []error, want string) {
	t.Helper()
	for _, err := range errs {
		if strings.Contains(err.Error(), want) {
			return
		}
	}
	t.Errorf("expected an error containing %q, got %v", want, errs)
}

func TestValidate_ValidFile(t *testing.T) {
	errs := Validate(validSeedFile())
	assert.Empty(t, errs)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	f := &File{
		Stages: []StageSeed{
			{Name: ""},
			{Name: "nesting"},
			{Name: "nesting"},
		},
		Rules: []RuleSeed{
			{From: "", To: "nesting", Days: -1},
		},
		Holidays: []HolidaySeed{
			{Date: "not-a-date"},
		},
	}

	errs := Validate(f)
	// Missing name, duplicate name, no default, no final, missing rule
	// from, negative days, bad holiday date.
	assert.GreaterOrEqual(t, len(errs), 7)
}

func TestValidate_StageErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*File)
		wantErr string
	}{
		{
			name:    "missing name",
			mutate:  func(f *File) { f.Stages[0].Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "duplicate name",
			mutate:  func(f *File) { f.Stages[1].Name = "nesting" },
			wantErr: "duplicate stage",
		},
		{
			name:    "no default",
			mutate:  func(f *File) { f.Stages[0].Default = false },
			wantErr: "marked default",
		},
		{
			name:    "two defaults",
			mutate:  func(f *File) { f.Stages[1].Default = true },
			wantErr: "2 stages marked default",
		},
		{
			name:    "no final",
			mutate:  func(f *File) { f.Stages[3].Final = false },
			wantErr: "marked final",
		},
		{
			name:    "two finals",
			mutate:  func(f *File) { f.Stages[2].Final = true },
			wantErr: "2 stages marked final",
		},
		{
			name:    "invalid target column",
			mutate:  func(f *File) { f.Stages[0].TargetColumns[0].Column = "welded_date" },
			wantErr: "invalid column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validSeedFile()
			tt.mutate(f)
			assertHasError(t, Validate(f), tt.wantErr)
		})
	}
}

func TestValidate_RuleErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*File)
		wantErr string
	}{
		{
			name:    "missing from",
			mutate:  func(f *File) { f.Rules[0].From = "" },
			wantErr: "from is required",
		},
		{
			name:    "missing to",
			mutate:  func(f *File) { f.Rules[0].To = "" },
			wantErr: "to is required",
		},
		{
			name:    "unknown from stage",
			mutate:  func(f *File) { f.Rules[0].From = "painting" },
			wantErr: `"painting" not found`,
		},
		{
			name:    "self pair",
			mutate:  func(f *File) { f.Rules[0].To = f.Rules[0].From },
			wantErr: "from and to are both",
		},
		{
			name:    "negative days",
			mutate:  func(f *File) { f.Rules[0].Days = -2 },
			wantErr: "must not be negative",
		},
		{
			name:    "bad direction",
			mutate:  func(f *File) { f.Rules[0].Direction = "sideways" },
			wantErr: "invalid value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validSeedFile()
			tt.mutate(f)
			assertHasError(t, Validate(f), tt.wantErr)
		})
	}
}

func TestValidate_ZeroDayRuleAllowed(t *testing.T) {
	f := validSeedFile()
	f.Rules[0].Days = 0

	errs := Validate(f)
	assert.Empty(t, errs)
}

func TestValidate_PartialSeedSkipsStageRefChecks(t *testing.T) {
	// Rules-only file: stage names resolve against the database at apply
	// time, so validation must not reject them here.
	f := &File{
		Rules: []RuleSeed{
			{From: "assembly", To: "delivery", Days: 4},
		},
	}
	errs := Validate(f)
	assert.Empty(t, errs)
}

func TestValidate_HolidayErrors(t *testing.T) {
	f := &File{
		Holidays: []HolidaySeed{
			{Date: "2026-12-25"},
			{Date: "2026-12-25"},
			{Date: "25/12/2026"},
			{Date: ""},
		},
	}

	errs := Validate(f)
	assertHasError(t, errs, "duplicate date")
	assertHasError(t, errs, "invalid date")
	assertHasError(t, errs, "date is required")
}
