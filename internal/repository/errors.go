package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	//一意制約違反（注文番号の重複など）
	ErrConflict = errors.New("conflict")
)
