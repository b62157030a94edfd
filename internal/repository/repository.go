package repository

import "gorm.io/gorm"

type Repositories struct {
	User         UserRepository
	Listing      ListingRepository
	Conversation ConversationRepository
	Message      MessageRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Listing:      NewListingRepository(db),
		Conversation: NewConversationRepository(db),
		Message:      NewMessageRepository(db),
	}
}
