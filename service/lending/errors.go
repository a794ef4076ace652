package lending

import "errors"

// errors used by controllers

type ErrCode string

const (
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrNotLendable     ErrCode = "NOT_LENDABLE"
	ErrSelfBorrow      ErrCode = "SELF_BORROW"
	ErrAlreadyBorrowed ErrCode = "ALREADY_BORROWED"
	ErrNoActiveLoan    ErrCode = "NO_ACTIVE_LOAN"
	ErrNotReturnedYet  ErrCode = "NOT_RETURNED_YET"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts the business fault code, "" for unanticipated errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
