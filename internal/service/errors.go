package service

import "errors"

// Ошибки сервисного слоя, контроллер сопоставляет их с HTTP статусами
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrUpstream         = errors.New("upstream call failed")
	ErrUnsupportedMedia = errors.New("only PDF files are allowed")
	ErrFileTooLarge     = errors.New("file is too large")
)
