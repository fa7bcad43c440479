package availability

import "errors"

var (
	// ErrWorkshopNotFound возвращается, когда мастерская не найдена
	ErrWorkshopNotFound = errors.New("availability: workshop not found")

	// ErrWorkshopNotInDealership возвращается, когда мастерская принадлежит другому дилерскому центру
	ErrWorkshopNotInDealership = errors.New("availability: workshop does not belong to dealership")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("availability: service not found")

	// ErrInternal возвращается при ошибках чтения конфигурации
	ErrInternal = errors.New("availability: internal error")
)
