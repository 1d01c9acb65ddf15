package mq

// Exchange Names
const (
	ExchangeNotifyEvents = "notify_events"
	ExchangeLog          = "log_events"
)

// Exchange Types
const (
	ExchangeTypeTopic  = "topic"
	ExchangeTypeFanout = "fanout"
)

// Queue Names
const (
	QueueNotify = "notify_queue"
	QueueLog    = "log_queue"
)
