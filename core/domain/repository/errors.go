package repository

import "errors"

var (
	ErrInvalidLimit = errors.New("invalid history limit")

	ErrMongodb = errors.New("mongodb error happen")
	ErrRedis   = errors.New("redis error happen")
)
