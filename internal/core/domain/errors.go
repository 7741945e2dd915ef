package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrBadCredential   = errors.New("incorrect username or password")
	ErrSessionExpired  = errors.New("session expired")
	ErrCommentNotFound = errors.New("comment not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrMessageRejected = errors.New("message contains characters outside latin-1")
)
