package graph

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrSelfFollow        = errors.New("cannot follow self")
	ErrAlreadyFollowing  = errors.New("already following")
	ErrNotFollowing      = errors.New("not following")
	ErrAlreadyLiked      = errors.New("already liked")
	ErrNotLiked          = errors.New("not liked")
	ErrBodyTooLong       = errors.New("content must not exceed 280 characters")
	ErrInvalidInput      = errors.New("invalid input")
)

// EntityKind 标识未找到的实体类别
type EntityKind string

const (
	EntityUser EntityKind = "user"
	EntityPost EntityKind = "tweet"
)

// NotFoundError 实体不存在；errors.Is(err, ErrNotFound) 成立
type NotFoundError struct {
	Kind EntityKind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func userNotFound(id string) error { return &NotFoundError{Kind: EntityUser, ID: id} }

func postNotFound(id string) error { return &NotFoundError{Kind: EntityPost, ID: id} }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
