package config

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация смен не найдена
	ErrConfigNotFound = errors.New("config.repository: config not found")

	// ErrOperatingHoursNotFound возвращается, когда для дня недели не задан график работы
	ErrOperatingHoursNotFound = errors.New("config.repository: operating hours not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("config.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("config.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("config.repository: failed to scan row")
)
