package amqp

import (
	"encoding/json"
	"time"
)

// ReportRequestMessage asks the report worker to generate the analysis
// report for one month. The worker fetches the month's transactions and
// goals from the database itself.
type ReportRequestMessage struct {
	Month     string    `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewReportRequestMessage(month string) *ReportRequestMessage {
	return &ReportRequestMessage{
		Month:     month,
		Timestamp: time.Now(),
	}
}

func (m *ReportRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportRequestMessageFromJSON(data []byte) (*ReportRequestMessage, error) {
	var msg ReportRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
