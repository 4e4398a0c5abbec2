package models

type MessageType int

const (
	User MessageType = iota
	Assistant
	Program
)

func (t MessageType) String() string {
	switch t {
	case User:
		return "user"
	case Assistant:
		return "assistant"
	case Program:
		return "program"
	}
	return "unknown"
}

// Message is one entry of the chat log
type Message struct {
	ID      string
	Content string
	Type    MessageType
}
