package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	base *zap.Logger
	once sync.Once

	serviceName = "pump_bot"
)

func SetServiceName(newName string) string {
	oldName := serviceName
	serviceName = newName

	return oldName
}

func get() *zap.Logger {
	once.Do(func() {
		l, err := zap.NewProduction(zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
		base = l
	})
	return base
}

// Sync сбрасывает буферы zap, дергается при остановке приложения.
func Sync() {
	_ = get().Sync()
}

func Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	get().With(
		zap.String("service", serviceName),
	).Info(msg)
}

func Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	get().With(
		zap.String("service", serviceName),
	).Error(msg)
}

func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	get().With(
		zap.String("service", serviceName),
	).Fatal(msg)
}
