package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/course_shop/internal/logging"
	"github.com/Skotchmaster/course_shop/internal/models"
	"github.com/Skotchmaster/course_shop/internal/repo"
)

const (
	EventUserCreated = "user_created"
	EventUserUpdated = "user_updated"
	EventUserDeleted = "user_deleted"
)

type UserEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	UserID     uint      `json:"user_id"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type UserService struct {
	Repo   repo.UserRepository
	Events EventPublisher
	Topic  string
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetAll(ctx)
}

func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "user", id)
	}
	return u, nil
}

func (s *UserService) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	created, err := s.Repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, EventUserCreated, created)
	return created, nil
}

// Update copies name, email and phone onto the stored user. The password
// and the id are never changed here.
func (s *UserService) Update(ctx context.Context, id uint, u *models.User) (*models.User, error) {
	entity, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "user", id)
	}
	entity.Name = u.Name
	entity.Email = u.Email
	entity.Phone = u.Phone

	updated, err := s.Repo.Update(ctx, id, entity)
	if err != nil {
		return nil, mapNotFound(err, "user", id)
	}
	s.publish(ctx, EventUserUpdated, updated)
	return updated, nil
}

// Delete refuses to remove a user that still owns orders.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	n, err := s.Repo.CountOrders(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: user %d owns %d orders", ErrConflict, id, n)
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "user", id)
	}
	s.publish(ctx, EventUserDeleted, &models.User{ID: id})
	return nil
}

func (s *UserService) publish(ctx context.Context, eventType string, u *models.User) {
	if s.Events == nil {
		return
	}
	event := UserEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		OccurredAt: time.Now().UTC(),
	}
	key := strconv.FormatUint(uint64(u.ID), 10)
	if err := s.Events.PublishEvent(ctx, s.Topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "type", eventType, "user_id", u.ID, "error", err)
	}
}
