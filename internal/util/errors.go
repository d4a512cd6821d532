package util

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrEmailRegistered   = errors.New("email already registered")
	ErrInvalidCredential = errors.New("incorrect username or password")
	ErrPermissionDenied  = errors.New("permission denied")

	ErrMCQNotFound       = errors.New("mcq not found")
	ErrDuplicateQuestion = errors.New("question already exists")
	ErrInvalidMCQType    = errors.New("invalid mcq type input")

	ErrAttemptNotFound   = errors.New("no attempt found for user")
	ErrHistoryNotFound   = errors.New("history not found")
	ErrNoCertificate     = errors.New("no certificate generated for this history")
	ErrCertificateIssuer = errors.New("certificate issuer unavailable")
)
