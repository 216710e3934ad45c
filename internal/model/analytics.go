package model

import "time"

// AnalyticsLog describes one request observed by the service.
type AnalyticsLog struct {
	ID             string            `json:"id"`
	Endpoint       string            `json:"endpoint"`
	Method         string            `json:"method"`
	IPAddress      string            `json:"ip_address"`
	Params         map[string]string `json:"params"`
	ResponseStatus int               `json:"response_status"`
	Timestamp      time.Time         `json:"timestamp"`
}
