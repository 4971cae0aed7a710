package storage

import (
	"sync"

	"github.com/BetterCallFirewall/Certscope/internal/models"
)

// MemoryStorage - потокобезопасное in-memory хранилище отчетов.
// Состояние живет только в памяти процесса, персистентности нет.
type MemoryStorage struct {
	reports map[string]*models.SummaryReport
	order   []string
	mu      sync.RWMutex
}

// Stats - сводная статистика по накопленным отчетам
type Stats struct {
	TotalReports int                     `json:"total_reports"`
	BySeverity   map[models.Severity]int `json:"by_severity"`
	HighRisk     int                     `json:"high_risk"`
	AvgAttempts  float64                 `json:"avg_attempts"`
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		reports: make(map[string]*models.SummaryReport),
	}
}

func (s *MemoryStorage) Store(report *models.SummaryReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[report.ID]; !exists {
		s.order = append(s.order, report.ID)
	}
	s.reports[report.ID] = report
}

func (s *MemoryStorage) Get(id string) (*models.SummaryReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	return report, ok
}

// GetAll возвращает отчеты в порядке добавления
func (s *MemoryStorage) GetAll() []*models.SummaryReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]*models.SummaryReport, 0, len(s.order))
	for _, id := range s.order {
		reports = append(reports, s.reports[id])
	}
	return reports
}

// GetHighRisk возвращает только отчеты с severity high или critical
func (s *MemoryStorage) GetHighRisk() []*models.SummaryReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reports []*models.SummaryReport
	for _, id := range s.order {
		report := s.reports[id]
		if report.Summary != nil && report.Summary.Severity.AtLeast(models.SeverityHigh) {
			reports = append(reports, report)
		}
	}
	return reports
}

func (s *MemoryStorage) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.reports[id]; !exists {
		return
	}
	delete(s.reports, id)
	for i, storedID := range s.order {
		if storedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *MemoryStorage) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TotalReports: len(s.reports),
		BySeverity:   make(map[models.Severity]int),
	}

	totalAttempts := 0
	for _, report := range s.reports {
		totalAttempts += report.Attempts
		if report.Summary == nil {
			continue
		}
		stats.BySeverity[report.Summary.Severity]++
		if report.Summary.Severity.AtLeast(models.SeverityHigh) {
			stats.HighRisk++
		}
	}
	if stats.TotalReports > 0 {
		stats.AvgAttempts = float64(totalAttempts) / float64(stats.TotalReports)
	}
	return stats
}
