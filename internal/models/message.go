package models

// MessageModel is a direct message between two users.
type MessageModel struct {
	Base
	SenderID   string `json:"senderId"       gorm:"not null;index:idx_conversation,composite:1"`
	ReceiverID string `json:"receiverId"     gorm:"not null;index;index:idx_conversation,composite:2"`
	Text       string `json:"text,omitempty" gorm:"type:text"`
	Image      string `json:"image,omitempty"`
}

func (MessageModel) TableName() string { return "messages" }
