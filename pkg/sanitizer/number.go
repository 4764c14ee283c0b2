package sanitizer

const (
	MinVisitDurationMin = 15

	MaxVisitDurationMin = 480
)

func NormalizeVisitDuration(minutes int) int {
	if minutes < MinVisitDurationMin {
		return MinVisitDurationMin
	}
	if minutes > MaxVisitDurationMin {
		return MaxVisitDurationMin
	}
	return minutes
}
