package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	publisher   EventPublisher
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может только его гость или капитан
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !isParticipant(booking, userID) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetGuestBookings получает бронирования гостя, только своих
func (s *Service) GetGuestBookings(ctx context.Context, req *models.GetGuestBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetGuestBookings: fetching bookings for guest=%s, status=%v", req.GuestID, req.Status)

	if req.UserID != req.GuestID {
		s.logger.Warn("GetGuestBookings: user=%s requested bookings of guest=%s", req.UserID, req.GuestID)
		return nil, ErrAccessDenied
	}

	filter := domain.BookingsFilter{
		GuestID:         &req.GuestID,
		IncludeInactive: req.IncludeInactive,
	}
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetGuestBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
		if !status.IsActive() {
			filter.IncludeInactive = true
		}
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetGuestBookings: repository error for guest=%s: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: GetGuestBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuestBookings: successfully fetched %d bookings for guest=%s", len(bookings), req.GuestID)
	return models.FromDomainBookingList(bookings), nil
}

// GetCaptainBookings получает бронирования капитана с фильтрацией
// по периоду, статусу и включению неактивных. Доступно только самому капитану.
func (s *Service) GetCaptainBookings(ctx context.Context, req *models.GetCaptainBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetCaptainBookings: fetching bookings for captain=%s", req.CaptainID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(time.RFC3339), req.EndDate.Format(time.RFC3339))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info("%s", logMsg)

	if req.UserID != req.CaptainID {
		s.logger.Warn("GetCaptainBookings: user=%s is not captain=%s", req.UserID, req.CaptainID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCaptainBookings: invalid filter for captain=%s: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetCaptainBookings: repository error for captain=%s: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: GetCaptainBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCaptainBookings: successfully fetched %d bookings for captain=%s", len(bookings), req.CaptainID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отменить может гость или капитан, пока бронирование активно
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, req.UserID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	var (
		booking        *domain.Booking
		previousStatus domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.getBooking(txCtx, "Cancel", bookingID)
		if err != nil {
			return err
		}

		if !isParticipant(booking, req.UserID) {
			s.logger.Warn("Cancel: access denied for user=%s to cancel booking id=%s", req.UserID, bookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		now := s.now()
		previousStatus = booking.Status
		booking.Status = domain.StatusCancelled
		booking.CancellationReason = req.CancellationReason
		booking.CancelledAt = &now
		booking.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventBookingCancelled, booking, previousStatus)

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return models.FromDomainBooking(booking), nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только капитану, переход проверяется по таблице статусов
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s",
		bookingID, req.Status, req.UserID)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	var (
		booking        *domain.Booking
		previousStatus domain.BookingStatus
	)

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.getBooking(txCtx, "UpdateStatus", bookingID)
		if err != nil {
			return err
		}

		if booking.CaptainID != req.UserID {
			s.logger.Warn("UpdateStatus: user=%s is not captain of booking id=%s", req.UserID, bookingID)
			return ErrAccessDenied
		}

		if !booking.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%s",
				booking.Status, newStatus, bookingID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		previousStatus = booking.Status
		booking.Status = newStatus
		booking.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.EventBookingStatusChanged, booking, previousStatus)

	s.logger.Info("UpdateStatus: successfully updated booking id=%s to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(booking), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// publish отправляет событие после коммита, ошибка только логируется
func (s *Service) publish(ctx context.Context, eventType domain.BookingEventType, booking *domain.Booking, previous domain.BookingStatus) {
	event := domain.NewBookingEvent(eventType, booking, s.now())
	event.PreviousStatus = &previous
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish: failed to publish %s for booking id=%s: %v", eventType, booking.ID, err)
	}
}

// isParticipant гость или капитан бронирования
func isParticipant(booking *domain.Booking, userID uuid.UUID) bool {
	return booking.GuestID == userID || booking.CaptainID == userID
}
