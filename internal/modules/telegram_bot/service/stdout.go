package service

import (
	"fmt"

	"pump_bot/pkg/logger"
)

// Stdout — заглушка, когда токен телеграма не задан: всё в лог.
type Stdout struct{}

func NewStdout() *Stdout                           { return &Stdout{} }
func (s *Stdout) Send(msg string)                  { logger.Info("%s", msg) }
func (s *Stdout) Sendf(format string, args ...any) { s.Send(fmt.Sprintf(format, args...)) }
func (s *Stdout) SendPhoto(caption string, png []byte) {
	logger.Info("chart %d bytes: %s", len(png), caption)
}
