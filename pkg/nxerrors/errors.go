package nxerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the high level class of an error surfaced by sfbootconfig.
type Kind string

const (
	// KindValidation indicates caller supplied attribute data was rejected before running sfboot.
	KindValidation Kind = "validation"
	// KindParse indicates the sfboot report could not be decoded.
	KindParse Kind = "parse"
	// KindRender indicates the sfboot argument list could not be built.
	KindRender Kind = "render"
	// KindExec indicates sfboot could not be started or exited non-zero.
	KindExec Kind = "exec"
	// KindTarget 表示操作目标与资源的固定名称不符。
	KindTarget Kind = "target"
	// KindUnsupported 表示暂不支持的功能。
	KindUnsupported Kind = "unsupported"
	// KindInternal 表示未知或内部错误。
	KindInternal Kind = "internal"
)

// Error 包装底层错误并附加 Kind，方便调用方根据类型处理。
type Error struct {
	Kind Kind
	Err  error
}

// Error 实现 error 接口。
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap 允许 errors.Is/As 访问底层错误。
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New 创建指定 Kind 的错误。
func New(kind Kind, err error) error {
	if err == nil {
		err = errors.New(string(kind))
	}
	return &Error{Kind: kind, Err: err}
}

// DecodeError reports a report value that does not fit its attribute's rule.
type DecodeError struct {
	Section string
	Label   string
	Value   string
	Err     error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode")
	if e.Section != "" {
		fmt.Fprintf(&b, " section %q", e.Section)
	}
	fmt.Fprintf(&b, " %q value %q", e.Label, e.Value)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind reports KindParse.
func (e *DecodeError) Kind() Kind { return KindParse }

// ExecError reports a failed sfboot invocation. Output of a failed run is never parsed.
type ExecError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("sfboot %s", strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	} else if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ExecError) Unwrap() error { return e.Err }

// Kind reports KindExec.
func (e *ExecError) Kind() Kind { return KindExec }

// InvalidTargetError is returned when a resource bound to a fixed name is addressed by another one.
type InvalidTargetError struct {
	Want string
	Got  string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("only %q title is allowed, got %q", e.Want, e.Got)
}

// Kind reports KindTarget.
func (e *InvalidTargetError) Kind() Kind { return KindTarget }

// KindOf returns the Kind carried by err or any error it wraps, and KindInternal otherwise.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	var kinded interface{ Kind() Kind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return KindInternal
}

var (
	// ErrNotImplemented 统一指示功能尚未实现。
	ErrNotImplemented = errors.New("sfbootconfig: not implemented")
	// ErrNoSections is returned when a report that must describe at least one section describes none.
	ErrNoSections = errors.New("sfboot report has no sections")
)
