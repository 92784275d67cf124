package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误分类
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindInvalidState
	KindForbidden
	KindStorage
)

// Error 业务错误,携带分类和可读原因
type Error struct {
	Kind    Kind
	Field   string // 校验错误对应的字段,其他分类为空
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation 校验错误
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NotFound 资源不存在
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// InvalidState 当前状态下不允许该操作
func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// Forbidden 调用者无权执行该操作
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Storage 存储层意外失败,不允许吞掉后返回空结果
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage failure", Err: err}
}

// KindOf 取错误分类,非业务错误返回 KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
