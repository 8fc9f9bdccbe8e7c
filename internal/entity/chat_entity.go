package entity

// ChatLogEntry is one appended line of a conversation log.
type ChatLogEntry struct {
	Timestamp  int64
	SenderId   string
	ReceiverId string
	Content    string
}
