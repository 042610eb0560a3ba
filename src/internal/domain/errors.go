package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrInvalidAmount = errors.New("Amount must be greater than zero")
var ErrSelfTransfer = errors.New("Cannot transfer to your own account")
var ErrOTPExpired = errors.New("OTP has expired")
var ErrOTPMismatch = errors.New("Invalid OTP")
var ErrOTPAttemptsExhausted = errors.New("Maximum verification attempts exceeded")
var ErrAlreadyCompleted = errors.New("Transfer already completed")
var ErrTransferNotPending = errors.New("Transfer is no longer pending")
var ErrConcurrencyConflict = errors.New("Record was modified concurrently")
