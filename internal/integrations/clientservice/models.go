package clientservice

// CancellationStats ответ сервиса клиентов после инкремента счетчика
type CancellationStats struct {
	ClientID       int64 `json:"clientId"`
	CancelledCount int   `json:"cancelledCount"`
}
