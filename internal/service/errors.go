package service

import (
	"errors"

	"github.com/jaekwang-park/reminder-api/internal/extract"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrStoreRead    = errors.New("store read failed")
	ErrStoreWrite   = errors.New("store write failed")

	ErrNoDateFound    = extract.ErrNoDateFound
	ErrDateResolution = extract.ErrDateResolution
)
