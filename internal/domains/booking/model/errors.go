package model

import (
	"hotel/shared/failure"
	"net/http"
)

var (
	ErrMissingDates     = &failure.Failure{Code: http.StatusBadRequest, Message: "check-in and check-out dates are required"}
	ErrInvalidDate      = &failure.Failure{Code: http.StatusBadRequest, Message: "invalid date format"}
	ErrInvalidRange     = &failure.Failure{Code: http.StatusBadRequest, Message: "check-out date must be after check-in date"}
	ErrPastDate         = &failure.Failure{Code: http.StatusBadRequest, Message: "check-in date cannot be in the past"}
	ErrUnavailable      = &failure.Failure{Code: http.StatusBadRequest, Message: "room is not available for booking"}
	ErrCapacity         = &failure.Failure{Code: http.StatusBadRequest, Message: "guest count exceeds room capacity"}
	ErrInvalidStatus    = &failure.Failure{Code: http.StatusBadRequest, Message: "invalid booking status"}
	ErrInvalidPayment   = &failure.Failure{Code: http.StatusBadRequest, Message: "invalid payment status"}
	ErrAlreadyCancelled = &failure.Failure{Code: http.StatusBadRequest, Message: "booking is already cancelled"}
	ErrConflict         = &failure.Failure{Code: http.StatusConflict, Message: "room is already booked for the selected dates"}
	ErrNotFound         = &failure.Failure{Code: http.StatusNotFound, Message: "booking not found"}
	ErrRoomNotFound     = &failure.Failure{Code: http.StatusNotFound, Message: "room not found"}
)
