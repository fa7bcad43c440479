package create_appointment

import "errors"

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrWorkshopNotFound возвращается, когда мастерская не найдена
	ErrWorkshopNotFound = errors.New("create_appointment: workshop not found")

	// ErrInvalidWorkshopForDealership возвращается, когда мастерская не принадлежит дилерскому центру клиента
	ErrInvalidWorkshopForDealership = errors.New("create_appointment: invalid workshop for dealership")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrDateInPast возвращается, когда дата или время записи уже прошли
	ErrDateInPast = errors.New("create_appointment: appointment time is in the past")

	// ErrSlotNotAvailable возвращается, когда выбранное время не входит в список доступных слотов
	ErrSlotNotAvailable = errors.New("create_appointment: time slot not available")

	// ErrDailyServiceLimitReached возвращается, когда исчерпан дневной лимит записей на услугу
	ErrDailyServiceLimitReached = errors.New("create_appointment: daily limit reached for this service")

	// ErrSlotTaken возвращается, когда слот заняли параллельным запросом (можно повторить)
	ErrSlotTaken = errors.New("create_appointment: slot no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
