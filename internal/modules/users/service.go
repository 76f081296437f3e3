package users

import (
	"context"
	"errors"

	"github.com/linguamate/core/internal/models"
	"gorm.io/gorm"
)

var (
	errSelfRequest       = errors.New("cannot send a friend request to yourself")
	errRecipientNotFound = errors.New("recipient not found")
	errAlreadyFriends    = errors.New("already friends")
	errRequestExists     = errors.New("friend request already exists")
	errRequestNotFound   = errors.New("friend request not found")
	errNotRecipient      = errors.New("not the recipient of this request")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Recommended returns onboarded users who are neither the caller nor already
// their friends.
func (s *Service) Recommended(ctx context.Context, userID string) ([]models.UserModel, error) {
	friendIDs, err := s.friendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).
		Where("id <> ?", userID).
		Where("is_onboarded = ?", true)
	if len(friendIDs) > 0 {
		q = q.Where("id NOT IN ?", friendIDs)
	}

	var out []models.UserModel
	return out, q.Find(&out).Error
}

// Friends returns the caller's friend list.
func (s *Service) Friends(ctx context.Context, userID string) ([]models.UserModel, error) {
	u := models.UserModel{Base: models.Base{ID: userID}}
	var out []models.UserModel
	err := s.db.WithContext(ctx).Model(&u).Association("Friends").Find(&out)
	return out, err
}

// SendRequest creates a pending friend request from sender to recipient.
func (s *Service) SendRequest(ctx context.Context, senderID, recipientID string) (*models.FriendRequestModel, error) {
	if senderID == recipientID {
		return nil, errSelfRequest
	}

	var recipient models.UserModel
	if err := s.db.WithContext(ctx).First(&recipient, "id = ?", recipientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errRecipientNotFound
		}
		return nil, err
	}

	friends, err := s.areFriends(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, errAlreadyFriends
	}

	// A pending request in either direction blocks a new one.
	var count int64
	err = s.db.WithContext(ctx).Model(&models.FriendRequestModel{}).
		Where("status = ?", models.FriendRequestPending).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			senderID, recipientID, recipientID, senderID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errRequestExists
	}

	req := models.FriendRequestModel{
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      models.FriendRequestPending,
	}
	if err := s.db.WithContext(ctx).Create(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// AcceptRequest marks the request accepted and links both users as friends.
// Only the recipient may accept.
func (s *Service) AcceptRequest(ctx context.Context, userID, requestID string) error {
	var req models.FriendRequestModel
	if err := s.db.WithContext(ctx).First(&req, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errRequestNotFound
		}
		return err
	}
	if req.RecipientID != userID {
		return errNotRecipient
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&req).Update("status", models.FriendRequestAccepted).Error; err != nil {
			return err
		}

		sender := models.UserModel{Base: models.Base{ID: req.SenderID}}
		recipient := models.UserModel{Base: models.Base{ID: req.RecipientID}}
		if err := tx.Model(&sender).Association("Friends").Append(&recipient); err != nil {
			return err
		}
		return tx.Model(&recipient).Association("Friends").Append(&sender)
	})
}

// Incoming returns pending requests addressed to the caller plus the caller's
// outgoing requests that were recently accepted (for notifications).
func (s *Service) Incoming(ctx context.Context, userID string) (pending, accepted []models.FriendRequestModel, err error) {
	err = s.db.WithContext(ctx).Preload("Sender").
		Where("recipient_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at DESC").
		Find(&pending).Error
	if err != nil {
		return nil, nil, err
	}

	err = s.db.WithContext(ctx).Preload("Recipient").
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestAccepted).
		Order("updated_at DESC").
		Find(&accepted).Error
	if err != nil {
		return nil, nil, err
	}
	return pending, accepted, nil
}

// Outgoing returns the caller's pending outgoing requests.
func (s *Service) Outgoing(ctx context.Context, userID string) ([]models.FriendRequestModel, error) {
	var out []models.FriendRequestModel
	err := s.db.WithContext(ctx).Preload("Recipient").
		Where("sender_id = ? AND status = ?", userID, models.FriendRequestPending).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *Service) friendIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Table("user_friends").
		Where("user_model_id = ?", userID).
		Pluck("friend_id", &ids).Error
	return ids, err
}

func (s *Service) areFriends(ctx context.Context, a, b string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Table("user_friends").
		Where("user_model_id = ? AND friend_id = ?", a, b).
		Count(&count).Error
	return count > 0, err
}
