package stats

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/mindtrack/mindtrack/models"
)

// memoKey identifies one memoized reduction: the reducer kind plus a hash of
// the collection contents.
type memoKey struct {
	kind string
	hash uint64
}

// Memo caches reductions in a bounded LRU keyed by collection contents, so
// repeated renders of unchanged collections skip the reduction entirely.
type Memo struct {
	results *lru.Cache[memoKey, interface{}]
}

// NewMemo creates a memoizer holding up to size reductions.
func NewMemo(size int) (*Memo, error) {
	results, err := lru.New[memoKey, interface{}](size)
	if err != nil {
		return nil, err
	}
	return &Memo{results: results}, nil
}

// lookup returns the cached reduction for (kind, collection) when the
// collection hashes cleanly and has been reduced before.
func (m *Memo) lookup(kind string, collection interface{}) (memoKey, interface{}, bool) {
	hash, err := hashstructure.Hash(collection, hashstructure.FormatV2, nil)
	if err != nil {
		// Unhashable input: fall through to a direct reduction.
		return memoKey{}, nil, false
	}
	key := memoKey{kind: kind, hash: hash}
	if v, ok := m.results.Get(key); ok {
		return key, v, true
	}
	return key, nil, false
}

// HabitStats is CalculateHabitStats with memoization.
func (m *Memo) HabitStats(habits []models.Habit) models.HabitStats {
	key, v, ok := m.lookup("habits", habits)
	if ok {
		return v.(models.HabitStats)
	}
	s := CalculateHabitStats(habits)
	if key.kind != "" {
		m.results.Add(key, s)
	}
	return s
}

// MoodStats is CalculateMoodStats with memoization.
func (m *Memo) MoodStats(moods []models.Mood) models.MoodStats {
	key, v, ok := m.lookup("moods", moods)
	if ok {
		return v.(models.MoodStats)
	}
	s := CalculateMoodStats(moods)
	if key.kind != "" {
		m.results.Add(key, s)
	}
	return s
}

// GoalStats is CalculateGoalStats with memoization.
func (m *Memo) GoalStats(goals []models.Goal) models.GoalStats {
	key, v, ok := m.lookup("goals", goals)
	if ok {
		return v.(models.GoalStats)
	}
	s := CalculateGoalStats(goals)
	if key.kind != "" {
		m.results.Add(key, s)
	}
	return s
}
