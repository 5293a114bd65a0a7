package scheduler

import (
	"math/rand"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

var base = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func at(h float64) time.Time {
	return base.Add(time.Duration(h * float64(time.Hour)))
}

// act builds an activity in package P1 starting h hours after base and
// lasting dur hours.
func act(id, tag string, h, dur float64) domain.Activity {
	return domain.Activity{
		ID:             id,
		Title:          "Activity " + id,
		PackageID:      "P1",
		Tag:            tag,
		Priority:       domain.PriorityMedium,
		Status:         domain.StatusNotStarted,
		Deadline:       at(h),
		PlannedEndDate: at(h + dur),
	}
}

func withStatus(a domain.Activity, s domain.ActivityStatus) domain.Activity {
	a.Status = s
	return a
}

func findByID(activities []domain.Activity, id string) domain.Activity {
	for _, a := range activities {
		if a.ID == id {
			return a
		}
	}
	return domain.Activity{}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}
