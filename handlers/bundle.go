package handlers

import (
	businessRepoPkg "imara/database/repository/business"
	userRepoPkg "imara/database/repository/user"
	bookingSvc "imara/services/booking"
	chatSvc "imara/services/chat"
	mediaSvc "imara/services/media"
)

// HandlerBundle groups the services every endpoint handler needs.
type HandlerBundle struct {
	Bookings   bookingSvc.BookingService
	Chat       chatSvc.ChatService
	Media      mediaSvc.MediaService
	Businesses businessRepoPkg.BusinessRepository
	Users      userRepoPkg.UserRepository
}
