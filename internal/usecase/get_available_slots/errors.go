package get_available_slots

import "errors"

var (
	// ErrWorkshopNotFound возвращается, когда мастерская не найдена
	ErrWorkshopNotFound = errors.New("workshop not found")

	// ErrInvalidWorkshopForDealership возвращается, когда мастерская не принадлежит дилерскому центру
	ErrInvalidWorkshopForDealership = errors.New("invalid workshop for dealership")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrDateInPast возвращается для дат раньше сегодняшней в часовом поясе мастерской
	ErrDateInPast = errors.New("date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
