package data

// MutationKind names a successful entity mutation so the coordinator can mark
// every dependent collection stale.
type MutationKind string

const (
	MutationHabitCreate     MutationKind = "habit.create"
	MutationHabitUpdate     MutationKind = "habit.update"
	MutationHabitDelete     MutationKind = "habit.delete"
	MutationHabitComplete   MutationKind = "habit.complete"
	MutationHabitUncomplete MutationKind = "habit.uncomplete"
	MutationMoodCreate      MutationKind = "mood.create"
	MutationMoodUpdate      MutationKind = "mood.update"
	MutationMoodDelete      MutationKind = "mood.delete"
	MutationGoalCreate      MutationKind = "goal.create"
	MutationGoalUpdate      MutationKind = "goal.update"
	MutationGoalDelete      MutationKind = "goal.delete"
	MutationGoalProgress    MutationKind = "goal.progress"
	MutationGoalStatus      MutationKind = "goal.status"
)

// Per-entity invalidation fan-out. Each list is shared by every mutation kind
// of that entity: the result of any of them is simply "stale".
var (
	habitDependents = []string{KeyHabits, KeyTodayHabits, KeyDashboardAnalytics, KeySocialStats}
	moodDependents  = []string{KeyMoods, KeyRecentMoods, KeyDashboardAnalytics}
	goalDependents  = []string{KeyGoals, KeyActiveGoals, KeyDashboardAnalytics, KeySocialStats}
)

// invalidationTable is the single place that encodes which cached views
// depend on which entity. Adding a new dependent view means adding its
// collection name to the relevant rows, nothing else.
var invalidationTable = map[MutationKind][]string{
	MutationHabitCreate:     habitDependents,
	MutationHabitUpdate:     habitDependents,
	MutationHabitDelete:     habitDependents,
	MutationHabitComplete:   habitDependents,
	MutationHabitUncomplete: habitDependents,
	MutationMoodCreate:      moodDependents,
	MutationMoodUpdate:      moodDependents,
	MutationMoodDelete:      moodDependents,
	MutationGoalCreate:      goalDependents,
	MutationGoalUpdate:      goalDependents,
	MutationGoalDelete:      goalDependents,
	MutationGoalProgress:    goalDependents,
	MutationGoalStatus:      goalDependents,
}

// NotifyMutation marks every collection depending on the mutated entity as
// stale. It runs synchronously, so a read issued after a mutation reports
// success always sees the stale marker and refetches.
func (s *Service) NotifyMutation(kind MutationKind) {
	for _, prefix := range invalidationTable[kind] {
		s.cache.Invalidate(prefix)
	}
}
