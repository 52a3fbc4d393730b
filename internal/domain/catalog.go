package domain

// Service услуга из каталога
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
}

// Snapshot фиксирует длительность и цену услуги для записи
func (s *Service) Snapshot() BookedService {
	return BookedService{
		ServiceID:       s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// Staff сотрудник
type Staff struct {
	ID         int64
	BusinessID int64
	Name       string
	IsActive   bool
}
