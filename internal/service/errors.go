package service

import "errors"

var (
	ErrUnknownPlatform  = errors.New("platform is not supported")
	ErrUnknownStrategy  = errors.New("strategy must be immediate, spread or optimal")
	ErrEmptyBatch       = errors.New("no content ids provided")
	ErrContentNotFound  = errors.New("content doesn't exist")
	ErrAlreadyPublished = errors.New("content is already published")
)
