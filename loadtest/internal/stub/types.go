package stub

import "time"

// MessageRequest mirrors the payload the reminder service posts to a relay.
type MessageRequest struct {
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
	ToName  string `json:"to_name,omitempty"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body"`
}

type MessageResponse struct {
	ID string `json:"id"`
}

type StoredMessage struct {
	ID         string    `json:"id"`
	RunID      string    `json:"run_id"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	ReceivedAt time.Time `json:"received_at"`
}

type MessagesResponse struct {
	Messages []StoredMessage `json:"messages"`
	Count    int             `json:"count"`
}

// Stats reports how many messages a run received and how many of them
// repeated an earlier (recipient, subject) pair.
type Stats struct {
	RunID      string `json:"run_id"`
	Accepted   int    `json:"accepted"`
	Rejected   int    `json:"rejected"`
	Unique     int    `json:"unique"`
	Duplicates int    `json:"duplicates"`
}

type FailureRequest struct {
	Rate float64 `json:"rate"`
}
