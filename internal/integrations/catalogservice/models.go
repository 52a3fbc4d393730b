package catalogservice

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Service модель услуги из каталога
type Service struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"isActive"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (s *Service) ToDomain() *domain.Service {
	return &domain.Service{
		ID:              s.ID,
		BusinessID:      s.BusinessID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
	}
}

// Staff модель сотрудника из каталога
type Staff struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
}

// ToDomain конвертирует ответ каталога в доменную модель
func (s *Staff) ToDomain() *domain.Staff {
	return &domain.Staff{
		ID:         s.ID,
		BusinessID: s.BusinessID,
		Name:       s.Name,
		IsActive:   s.IsActive,
	}
}
