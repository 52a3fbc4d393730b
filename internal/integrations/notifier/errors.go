package notifier

import "errors"

var (
	// ErrUnknownDriver возвращается для неизвестного драйвера уведомлений
	ErrUnknownDriver = errors.New("notifier: unknown driver")

	// ErrMisconfigured возвращается, если для драйвера не хватает настроек
	ErrMisconfigured = errors.New("notifier: driver is misconfigured")

	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("notifier: failed to encode event")

	// ErrPublish возвращается при ошибке отправки события
	ErrPublish = errors.New("notifier: failed to publish event")
)
