package domain

import "errors"

var (
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrInvalidOTP      = errors.New("invalid OTP")
	ErrInvalidOTPEmail = errors.New("invalid OTP email")
	ErrOTPExpired      = errors.New("OTP has expired")
	ErrOTPNotFound     = errors.New("OTP not found")
	ErrTooManyRequests = errors.New("too many requests")

	ErrInvalidListingTitle = errors.New("invalid listing title")
	ErrInvalidListingPrice = errors.New("invalid listing price")
	ErrInvalidListingID    = errors.New("invalid listing ID")
	ErrTooManyPictures     = errors.New("a listing may have at most three pictures")

	ErrInvalidAmount   = errors.New("invalid exchange amount")
	ErrInvalidCurrency = errors.New("invalid currency code")

	ErrInvalidRent        = errors.New("invalid rent amount")
	ErrInvalidLeasePeriod = errors.New("lease end date must be after start date")
)
