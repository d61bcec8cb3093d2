package expire_approvals

import "errors"

var (
	// ErrInternal внутренняя ошибка при обработке просроченных подтверждений
	ErrInternal = errors.New("expire_approvals: internal error")
)
