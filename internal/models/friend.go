package models

const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
)

// FriendRequestModel tracks a friend request between two users.
type FriendRequestModel struct {
	Base
	SenderID    string `json:"-"      gorm:"not null;index:idx_sender_recipient,composite:1"`
	RecipientID string `json:"-"      gorm:"not null;index;index:idx_sender_recipient,composite:2"`
	Status      string `json:"status" gorm:"default:'pending';index"`

	Sender    UserModel `json:"sender"    gorm:"foreignKey:SenderID"`
	Recipient UserModel `json:"recipient" gorm:"foreignKey:RecipientID"`
}

func (FriendRequestModel) TableName() string { return "friend_requests" }
