package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/linguamate/core/internal/models"
	"github.com/linguamate/core/internal/modules/gateway"
	"github.com/linguamate/core/internal/pkg/assets"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	errEmptyMessage = errors.New("message must contain text or an image")
	errUserNotFound = errors.New("user not found")
)

// Notifier delivers realtime events to a user's sockets; the gateway hub
// satisfies it.
type Notifier interface {
	EmitToUser(userID, event string, payload interface{})
}

type Service struct {
	db       *gorm.DB
	assets   assets.Store
	notifier Notifier
	logger   *zap.Logger
}

func NewService(db *gorm.DB, store assets.Store, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{db: db, assets: store, notifier: notifier, logger: logger}
}

// Contacts returns every other onboarded user.
func (s *Service) Contacts(ctx context.Context, userID string) ([]models.UserModel, error) {
	var out []models.UserModel
	err := s.db.WithContext(ctx).
		Where("id <> ? AND is_onboarded = ?", userID, true).
		Find(&out).Error
	return out, err
}

// Partners returns users the caller has exchanged messages with.
func (s *Service) Partners(ctx context.Context, userID string) ([]models.UserModel, error) {
	var msgs []models.MessageModel
	err := s.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		other := m.SenderID
		if other == userID {
			other = m.ReceiverID
		}
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	if len(ids) == 0 {
		return []models.UserModel{}, nil
	}

	var out []models.UserModel
	return out, s.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
}

// Conversation returns the message history with otherID, oldest first.
func (s *Service) Conversation(ctx context.Context, userID, otherID string) ([]models.MessageModel, error) {
	if err := s.mustExist(ctx, otherID); err != nil {
		return nil, err
	}

	var out []models.MessageModel
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

// Send persists a message and emits it to the receiver's sockets. Image
// upload failures are logged and the image dropped; the message still goes
// through as long as text remains.
func (s *Service) Send(ctx context.Context, senderID, receiverID, text, image string) (*models.MessageModel, error) {
	text = strings.TrimSpace(text)
	if text == "" && strings.TrimSpace(image) == "" {
		return nil, errEmptyMessage
	}
	if err := s.mustExist(ctx, receiverID); err != nil {
		return nil, err
	}

	imageURL := s.resolveImage(ctx, image)
	if text == "" && imageURL == "" {
		return nil, errEmptyMessage
	}

	msg := models.MessageModel{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		Image:      imageURL,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}

	s.notifier.EmitToUser(receiverID, gateway.EventNewMessage, &msg)
	return &msg, nil
}

func (s *Service) mustExist(ctx context.Context, userID string) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", userID).Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errUserNotFound
	}
	return nil
}

func (s *Service) resolveImage(ctx context.Context, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "data:") {
		return raw
	}
	url, err := s.assets.UploadDataURI(ctx, "chat_images", raw)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("chat image upload failed", zap.Error(err))
		}
		return ""
	}
	return url
}
