package fantasyteam

import (
	"errors"
	"testing"
)

func validTeam() Team {
	return Team{
		DriverIDs:      []string{"d1", "d2", "d3", "d4", "d5"},
		ConstructorIDs: []string{"c1", "c2"},
		TotalCost:      950,
		TotalPoints:    120,
	}
}

func TestTeamValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Team)
		targetErr error
	}{
		{
			name:   "valid team",
			mutate: func(*Team) {},
		},
		{
			name:      "too few drivers",
			mutate:    func(team *Team) { team.DriverIDs = team.DriverIDs[:4] },
			targetErr: ErrInvalidDriverCount,
		},
		{
			name:      "too many constructors",
			mutate:    func(team *Team) { team.ConstructorIDs = append(team.ConstructorIDs, "c3") },
			targetErr: ErrInvalidConstructorCount,
		},
		{
			name:      "duplicate driver",
			mutate:    func(team *Team) { team.DriverIDs[4] = "d1" },
			targetErr: ErrDuplicateDriver,
		},
		{
			name:      "duplicate constructor",
			mutate:    func(team *Team) { team.ConstructorIDs[1] = "c1" },
			targetErr: ErrDuplicateConstructor,
		},
		{
			name:      "over budget",
			mutate:    func(team *Team) { team.TotalCost = 1001 },
			targetErr: ErrExceededBudget,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			team := validTeam()
			tc.mutate(&team)

			err := team.Validate(1000)
			if tc.targetErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.targetErr)
			}
		})
	}
}
