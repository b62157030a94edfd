package service

import (
	"roommate_finder/internal/repository"
)

type Services struct {
	User         *UserService
	Listing      *ListingService
	Conversation *ConversationService
	Message      *MessageService
}

func NewServices(repos *repository.Repositories) *Services {
	userService := NewUserService(repos.User)
	listingService := NewListingService(repos.Listing)
	conversationService := NewConversationService(repos.Conversation, repos.User, repos.Listing)
	messageService := NewMessageService(repos.Message, repos.Conversation, conversationService)

	return &Services{
		User:         userService,
		Listing:      listingService,
		Conversation: conversationService,
		Message:      messageService,
	}
}
