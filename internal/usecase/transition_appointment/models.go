package transition_appointment

// Request запрос на смену статуса записи сотрудником бизнеса
type Request struct {
	BusinessID    int64
	AppointmentID int64
	Action        string
	Tip           *float64 // только для complete
	Reason        *string  // только для cancel
}
