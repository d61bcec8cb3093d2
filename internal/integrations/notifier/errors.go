package notifier

import "errors"

var (
	// ErrInternal возвращается при ошибках создания или выполнения запроса
	ErrInternal = errors.New("notifier.client: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе сервиса уведомлений
	ErrInvalidResponse = errors.New("notifier.client: invalid response")
)
