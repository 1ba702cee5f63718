package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/service/availability/models"
	"github.com/m04kA/SMC-CharterService/pkg/timezone"
)

// Service сервис управления доступностью капитана:
// политика, еженедельные окна и закрытые даты
type Service struct {
	captainRepo      CaptainRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
	now              func() time.Time
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	captainRepo CaptainRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		captainRepo:      captainRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
		now:              time.Now,
	}
}

// GetSettings получает настройки доступности капитана
// Доступно только самому капитану
func (s *Service) GetSettings(ctx context.Context, captainID uuid.UUID, userID uuid.UUID) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: fetching settings for captain=%s by user=%s", captainID, userID)

	if captainID != userID {
		s.logger.Warn("GetSettings: user=%s is not captain=%s", userID, captainID)
		return nil, ErrAccessDenied
	}

	policy, err := s.getPolicy(ctx, "GetSettings", captainID)
	if err != nil {
		return nil, err
	}

	return s.buildSettings(ctx, "GetSettings", policy)
}

// UpdateSettings обновляет политику и, если передан, весь набор окон
// Поддерживает частичное обновление, изменения применяются в одной транзакции
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating settings for captain=%s by user=%s", req.CaptainID, req.UserID)

	if req.CaptainID != req.UserID {
		s.logger.Warn("UpdateSettings: user=%s is not captain=%s", req.UserID, req.CaptainID)
		return nil, ErrAccessDenied
	}

	// 1. Валидируем окна до открытия транзакции
	var windows []*domain.AvailabilityWindow
	if req.Windows != nil {
		var err error
		windows, err = toDomainWindows(*req.Windows)
		if err != nil {
			s.logger.Warn("UpdateSettings: invalid windows: %v", err)
			return nil, err
		}
	}

	var updated *domain.CaptainPolicy

	// 2. Применяем изменения атомарно
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		policy, err := s.getPolicy(txCtx, "UpdateSettings", req.CaptainID)
		if err != nil {
			return err
		}

		if req.Timezone != nil {
			policy.Timezone = *req.Timezone
		}
		if req.BufferMinutes != nil {
			policy.BufferMinutes = req.BufferMinutes
		}
		if req.AdvanceBookingDays != nil {
			policy.AdvanceBookingDays = req.AdvanceBookingDays
		}
		if req.Hibernating != nil {
			policy.Hibernating = *req.Hibernating
		}

		if err := validatePolicy(policy); err != nil {
			s.logger.Warn("UpdateSettings: validation failed: %v", err)
			return err
		}

		updated, err = s.captainRepo.UpdatePolicy(txCtx, policy)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrCaptainNotFound
			}
			s.logger.Error("UpdateSettings: failed to update policy: %v", err)
			return fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
		}

		if req.Windows != nil {
			if err := s.availabilityRepo.ReplaceWindows(txCtx, req.CaptainID, windows); err != nil {
				s.logger.Error("UpdateSettings: failed to replace windows: %v", err)
				return fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSettings: successfully updated settings for captain=%s", req.CaptainID)
	return s.buildSettings(ctx, "UpdateSettings", updated)
}

// AddBlackout закрывает календарную дату
func (s *Service) AddBlackout(ctx context.Context, req *models.AddBlackoutRequest) (*models.BlackoutResponse, error) {
	s.logger.Info("AddBlackout: captain=%s, date=%s by user=%s", req.CaptainID, req.Date, req.UserID)

	if req.CaptainID != req.UserID {
		s.logger.Warn("AddBlackout: user=%s is not captain=%s", req.UserID, req.CaptainID)
		return nil, ErrAccessDenied
	}

	date, err := timezone.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if _, err := s.getPolicy(ctx, "AddBlackout", req.CaptainID); err != nil {
		return nil, err
	}

	created, err := s.availabilityRepo.AddBlackout(ctx, &domain.BlackoutDate{
		CaptainID: req.CaptainID,
		Date:      date,
		Reason:    req.Reason,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.logger.Warn("AddBlackout: date=%s already blacked out for captain=%s", req.Date, req.CaptainID)
			return nil, ErrBlackoutAlreadyExists
		}
		s.logger.Error("AddBlackout: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlackout: successfully closed date=%s for captain=%s", req.Date, req.CaptainID)
	resp := models.FromDomainBlackout(created)
	return &resp, nil
}

// RemoveBlackout снова открывает дату
func (s *Service) RemoveBlackout(ctx context.Context, captainID uuid.UUID, userID uuid.UUID, rawDate string) error {
	s.logger.Info("RemoveBlackout: captain=%s, date=%s by user=%s", captainID, rawDate, userID)

	if captainID != userID {
		s.logger.Warn("RemoveBlackout: user=%s is not captain=%s", userID, captainID)
		return ErrAccessDenied
	}

	date, err := timezone.ParseDate(rawDate)
	if err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}

	if err := s.availabilityRepo.DeleteBlackout(ctx, captainID, date); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("RemoveBlackout: no blackout on date=%s for captain=%s", rawDate, captainID)
			return ErrBlackoutNotFound
		}
		s.logger.Error("RemoveBlackout: repository error: %v", err)
		return fmt.Errorf("%w: RemoveBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveBlackout: successfully reopened date=%s for captain=%s", rawDate, captainID)
	return nil
}

// Вспомогательные методы

func (s *Service) getPolicy(ctx context.Context, op string, captainID uuid.UUID) (*domain.CaptainPolicy, error) {
	policy, err := s.captainRepo.GetPolicy(ctx, captainID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: captain=%s not found", op, captainID)
			return nil, ErrCaptainNotFound
		}
		s.logger.Error("%s: failed to get policy for captain=%s: %v", op, captainID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return policy, nil
}

// buildSettings дополняет политику окнами и blackout датами в пределах горизонта
func (s *Service) buildSettings(ctx context.Context, op string, policy *domain.CaptainPolicy) (*models.SettingsResponse, error) {
	windows, err := s.availabilityRepo.ListWindows(ctx, policy.CaptainID)
	if err != nil {
		s.logger.Error("%s: failed to list windows: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	loc, err := timezone.LoadLocation(policy.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - invalid stored timezone: %v", ErrInternal, op, err)
	}
	today := timezone.Today(s.now(), loc)
	horizon := today.AddDate(0, 0, policy.EffectiveAdvanceDays())

	blackouts, err := s.availabilityRepo.GetBlackoutsInRange(ctx, policy.CaptainID, today, horizon)
	if err != nil {
		s.logger.Error("%s: failed to list blackouts: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return models.FromDomainSettings(policy, windows, blackouts), nil
}
