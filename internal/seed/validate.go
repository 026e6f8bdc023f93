package seed

import (
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
)

var validDirections = map[string]bool{
	string(domain.DirectionBefore): true,
	string(domain.DirectionAfter):  true,
}

// Validate checks the seed file for errors before applying. It returns every
// problem found, not just the first.
//
// Rule stage references are only checked against the file's own stage list
// when one is present; a partial seed (rules or holidays only) resolves names
// against the database during Apply instead.
func Validate(f *File) []error {
	var errs []error

	stageNames := make(map[string]bool)
	errs = append(errs, validateStages(f.Stages, stageNames)...)
	errs = append(errs, validateRules(f.Rules, stageNames)...)
	errs = append(errs, validateHolidays(f.Holidays)...)

	return errs
}

func validateStages(stages []StageSeed, stageNames map[string]bool) []error {
	var errs []error

	defaults := 0
	finals := 0
	for i, s := range stages {
		prefix := fmt.Sprintf("stages[%d]", i)

		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if stageNames[s.Name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate stage %q", prefix, s.Name))
		} else {
			stageNames[s.Name] = true
		}

		if s.Default {
			defaults++
		}
		if s.Final {
			finals++
		}

		for j, tc := range s.TargetColumns {
			if !domain.ValidDateColumns[tc.Column] {
				errs = append(errs, fmt.Errorf("%s.target_columns[%d]: invalid column %q", prefix, j, tc.Column))
			}
		}
	}

	// Pipeline shape only matters when the file declares stages at all.
	if len(stages) > 0 {
		if defaults == 0 {
			errs = append(errs, fmt.Errorf("stages: exactly one stage must be marked default"))
		} else if defaults > 1 {
			errs = append(errs, fmt.Errorf("stages: %d stages marked default, want exactly one", defaults))
		}
		if finals == 0 {
			errs = append(errs, fmt.Errorf("stages: exactly one stage must be marked final"))
		} else if finals > 1 {
			errs = append(errs, fmt.Errorf("stages: %d stages marked final, want exactly one", finals))
		}
	}

	return errs
}

func validateRules(rules []RuleSeed, stageNames map[string]bool) []error {
	var errs []error

	for i, r := range rules {
		prefix := fmt.Sprintf("lead_times[%d]", i)

		if r.From == "" {
			errs = append(errs, fmt.Errorf("%s.from is required", prefix))
		} else if len(stageNames) > 0 && !stageNames[r.From] {
			errs = append(errs, fmt.Errorf("%s.from: stage %q not found in stages list", prefix, r.From))
		}
		if r.To == "" {
			errs = append(errs, fmt.Errorf("%s.to is required", prefix))
		} else if len(stageNames) > 0 && !stageNames[r.To] {
			errs = append(errs, fmt.Errorf("%s.to: stage %q not found in stages list", prefix, r.To))
		}
		if r.From != "" && r.From == r.To {
			errs = append(errs, fmt.Errorf("%s: from and to are both %q", prefix, r.From))
		}

		if r.Days < 0 {
			errs = append(errs, fmt.Errorf("%s.days must not be negative", prefix))
		}
		if r.Direction != "" && !validDirections[r.Direction] {
			errs = append(errs, fmt.Errorf("%s.direction: invalid value %q (want before or after)", prefix, r.Direction))
		}
	}

	return errs
}

func validateHolidays(holidays []HolidaySeed) []error {
	var errs []error

	seen := make(map[string]bool)
	for i, h := range holidays {
		prefix := fmt.Sprintf("holidays[%d]", i)

		if h.Date == "" {
			errs = append(errs, fmt.Errorf("%s.date is required", prefix))
			continue
		}
		if _, err := time.Parse("2006-01-02", h.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s.date: invalid date %q (expected YYYY-MM-DD)", prefix, h.Date))
			continue
		}
		if seen[h.Date] {
			errs = append(errs, fmt.Errorf("%s.date: duplicate date %q", prefix, h.Date))
		}
		seen[h.Date] = true
	}

	return errs
}
