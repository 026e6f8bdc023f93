package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
)

type holidayService struct {
	holidays repository.HolidayRepo
	observer UseCaseObserver
}

func NewHolidayService(holidays repository.HolidayRepo, observers ...UseCaseObserver) HolidayService {
	return &holidayService{
		holidays: holidays,
		observer: observerOrNoop(observers),
	}
}

func (s *holidayService) ListYear(ctx context.Context, year int) ([]*domain.Holiday, error) {
	return s.holidays.ListYear(ctx, year)
}

func (s *holidayService) Add(ctx context.Context, h *domain.Holiday) (added bool, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "add-holiday",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if h.Date.IsZero() {
		return false, fmt.Errorf("holiday date is required")
	}
	if h.Name == "" {
		return false, fmt.Errorf("holiday name is required")
	}
	fields["date"] = h.Date.Format("2006-01-02")

	err = s.holidays.Add(ctx, h)
	if errors.Is(err, repository.ErrDuplicate) {
		// The date is already non-working; re-adding it changes nothing.
		fields["duplicate"] = true
		err = nil
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *holidayService) Remove(ctx context.Context, date time.Time) error {
	return s.holidays.RemoveByDate(ctx, date)
}
