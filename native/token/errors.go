package token

import "errors"

var (
	ErrInvalidAmount         = errors.New("token: invalid amount")
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
	ErrBalanceOverflow       = errors.New("token: balance overflow")
)
