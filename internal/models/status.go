package models

import (
	"sync"
	"time"
)

// ScannerStatus — разделяемое состояние для команды /status.
// Пишет пайплайн, читает телеграм-бот.
type ScannerStatus struct {
	mu sync.RWMutex

	universeSize int
	openRecords  int
	signalsSent  int
	lastTick     time.Time
}

func NewScannerStatus() *ScannerStatus { return &ScannerStatus{} }

func (s *ScannerStatus) SetTick(universeSize, openRecords int, at time.Time) {
	s.mu.Lock()
	s.universeSize = universeSize
	s.openRecords = openRecords
	s.lastTick = at
	s.mu.Unlock()
}

func (s *ScannerStatus) IncSignals() {
	s.mu.Lock()
	s.signalsSent++
	s.mu.Unlock()
}

func (s *ScannerStatus) Snapshot() (universeSize, openRecords, signalsSent int, lastTick time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.universeSize, s.openRecords, s.signalsSent, s.lastTick
}
