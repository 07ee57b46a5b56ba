package selection

import (
	"time"

	"github.com/riskibarqy/f1-fantasy/internal/domain/fantasyteam"
)

// TeamSelection is a user-submitted fantasy team, priced and scored against
// one race weekend at submission time.
type TeamSelection struct {
	ID        string
	RaceID    string
	Team      fantasyteam.Team
	CreatedAt time.Time
}
