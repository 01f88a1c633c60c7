package repository

import (
	"encoding/json"
	"log/slog"

	"github.com/kmallory/atomicday/internal/models"
	"github.com/kmallory/atomicday/internal/storage"
)

// SettingsRepository persists the singleton entities that live outside the
// date-partitioned record family: Stats, Identity, WeeklyGoals, and the
// legacy global HabitStacks fallback. Each is independent; there are no
// cross-entity invariants. Load falls back to the built-in default on any
// read or decode failure, saves are logged-and-swallowed like daily saves.
type SettingsRepository struct {
	store  storage.Provider
	logger *slog.Logger
}

func NewSettingsRepository(store storage.Provider, logger *slog.Logger) *SettingsRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsRepository{
		store:  store,
		logger: logger,
	}
}

func (r *SettingsRepository) LoadStats() models.Stats {
	stats := models.DefaultStats()
	r.load(storage.KeyStats, &stats)
	return stats
}

func (r *SettingsRepository) SaveStats(stats models.Stats) {
	r.save(storage.KeyStats, stats)
}

func (r *SettingsRepository) LoadIdentity() models.Identity {
	identity := models.DefaultIdentity()
	r.load(storage.KeyIdentity, &identity)
	return identity
}

func (r *SettingsRepository) SaveIdentity(identity models.Identity) {
	r.save(storage.KeyIdentity, identity)
}

func (r *SettingsRepository) LoadWeeklyGoals() []models.WeeklyGoal {
	goals := models.DefaultWeeklyGoals()
	var stored []models.WeeklyGoal
	if r.load(storage.KeyWeeklyGoals, &stored) && stored != nil {
		goals = stored
	}
	return goals
}

func (r *SettingsRepository) SaveWeeklyGoals(goals []models.WeeklyGoal) {
	r.save(storage.KeyWeeklyGoals, goals)
}

// LoadHabitStacks reads the global habit-stacks list. Day-scoped stacks on
// the DailyRecord supersede this key; it remains as the fallback for
// records written before stacks moved into the daily record.
func (r *SettingsRepository) LoadHabitStacks() []models.HabitStack {
	stacks := models.DefaultHabitStacks()
	var stored []models.HabitStack
	if r.load(storage.KeyHabitStacks, &stored) && stored != nil {
		stacks = stored
	}
	return stacks
}

func (r *SettingsRepository) SaveHabitStacks(stacks []models.HabitStack) {
	r.save(storage.KeyHabitStacks, stacks)
}

// load decodes the stored value into dst, reporting whether dst was
// populated. Read errors and malformed values leave dst untouched.
func (r *SettingsRepository) load(key string, dst interface{}) bool {
	raw, err := r.store.Get(key)
	if err != nil {
		if err != storage.ErrNotFound {
			r.logger.Warn("settings read failed, using defaults",
				slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		r.logger.Warn("settings value malformed, using defaults",
			slog.String("key", key), slog.String("error", err.Error()))
		return false
	}
	return true
}

func (r *SettingsRepository) save(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("settings serialize failed",
			slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := r.store.Set(key, string(data)); err != nil {
		r.logger.Error("settings write failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}
