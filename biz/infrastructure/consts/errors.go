package consts

import (
	"errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

// Code 返回错误码
func (en *Errno) Code() int { return int(en.code) }

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// 定义常量错误
var (
	ErrForbidden = NewErrno(codes.PermissionDenied, errors.New("forbidden"))
	ErrWsUpgrade = NewErrno(codes.Code(1000), errors.New("websocket协议升级失败"))

	// ErrInvalidInput 入参校验失败, 如必填文本为空
	ErrInvalidInput = NewErrno(codes.InvalidArgument, errors.New("输入参数不合法"))

	// ErrSessionNotFound 干预会话不存在
	ErrSessionNotFound = NewErrno(codes.NotFound, errors.New("干预会话不存在"))

	// ErrStepOutOfRange 干预步骤下标越界
	ErrStepOutOfRange = NewErrno(codes.OutOfRange, errors.New("干预步骤下标越界"))

	// ErrSessionFinished 会话已终止, 不允许继续操作
	ErrSessionFinished = NewErrno(codes.FailedPrecondition, errors.New("会话已结束或取消"))
)
