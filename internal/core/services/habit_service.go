package services

import (
	"context"
	"sort"
	"time"

	"github.com/lifeos-app/lifeos-backend/internal/apperrors"
	"github.com/lifeos-app/lifeos-backend/internal/core/domain"
	portsrepo "github.com/lifeos-app/lifeos-backend/internal/core/ports/repositories"
	portssvc "github.com/lifeos-app/lifeos-backend/internal/core/ports/services"
	"github.com/lifeos-app/lifeos-backend/internal/dto"
	"github.com/google/uuid"
)

type habitService struct {
	BaseService
	habitRepo portsrepo.HabitRepository
}

// NewHabitService creates a new instance of habitService.
func NewHabitService(habitRepo portsrepo.HabitRepository) portssvc.HabitSvcFacade {
	return &habitService{habitRepo: habitRepo}
}

var _ portssvc.HabitSvcFacade = (*habitService)(nil)

func (s *habitService) ListHabits(ctx context.Context, userID string) ([]domain.Habit, error) {
	return s.habitRepo.FindHabitsByUser(ctx, userID)
}

func (s *habitService) CreateHabit(ctx context.Context, userID string, req dto.CreateHabitRequest) (*domain.Habit, error) {
	now := time.Now()
	habit := domain.Habit{
		HabitID:        uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		Frequency:      domain.FrequencyDaily,
		CompletedDates: []time.Time{},
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if req.Frequency != "" {
		habit.Frequency = domain.HabitFrequency(req.Frequency)
	}

	if err := s.habitRepo.SaveHabit(ctx, habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (s *habitService) UpdateHabit(ctx context.Context, userID string, habitID string, req dto.UpdateHabitRequest) (*domain.Habit, error) {
	habit, err := s.findOwnedHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		habit.Name = *req.Name
	}
	if req.Frequency != nil {
		habit.Frequency = domain.HabitFrequency(*req.Frequency)
	}

	habit.UpdatedAt = time.Now()
	if err := s.habitRepo.UpdateHabit(ctx, *habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// ToggleHabitCompletion flips the completion mark for one calendar day and
// recomputes the streak from the resulting history.
func (s *habitService) ToggleHabitCompletion(ctx context.Context, userID string, habitID string, date time.Time) (*domain.Habit, error) {
	habit, err := s.findOwnedHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}

	day := normalizeToDay(date)
	found := false
	dates := make([]time.Time, 0, len(habit.CompletedDates)+1)
	for _, d := range habit.CompletedDates {
		if normalizeToDay(d).Equal(day) {
			found = true
			continue
		}
		dates = append(dates, normalizeToDay(d))
	}
	if !found {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	habit.CompletedDates = dates
	habit.StreakCount = computeStreak(dates, habit.Frequency, normalizeToDay(time.Now()))
	habit.UpdatedAt = time.Now()

	if err := s.habitRepo.UpdateHabit(ctx, *habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *habitService) DeleteHabit(ctx context.Context, userID string, habitID string) error {
	if _, err := s.findOwnedHabit(ctx, userID, habitID); err != nil {
		return err
	}
	return s.habitRepo.DeleteHabit(ctx, habitID)
}

func (s *habitService) findOwnedHabit(ctx context.Context, userID string, habitID string) (*domain.Habit, error) {
	habit, err := s.habitRepo.FindHabitByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return habit, nil
}

// normalizeToDay truncates a timestamp to midnight UTC so completion marks
// compare as calendar days.
func normalizeToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// computeStreak counts consecutive completed periods ending at today (or
// yesterday, so an unfinished today does not break the run). Weekly habits
// count ISO weeks instead of days.
func computeStreak(dates []time.Time, frequency domain.HabitFrequency, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	step := 24 * time.Hour
	if frequency == domain.FrequencyWeekly {
		step = 7 * 24 * time.Hour
	}

	// Walk backwards from the most recent completion.
	last := dates[len(dates)-1]
	if today.Sub(last) > step {
		return 0
	}

	streak := 1
	for i := len(dates) - 2; i >= 0; i-- {
		if dates[i+1].Sub(dates[i]) <= step {
			streak++
		} else {
			break
		}
	}
	return streak
}
