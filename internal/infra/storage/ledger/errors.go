package ledger

import "errors"

var (
	// ErrCommissionNotFound возвращается, когда расчет комиссии не найден
	ErrCommissionNotFound = errors.New("ledger.repository: commission not found")

	// ErrOperationalFeeNotFound возвращается, когда расчет сбора не найден
	ErrOperationalFeeNotFound = errors.New("ledger.repository: operational fee not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ledger.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ledger.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ledger.repository: failed to scan row")
)
