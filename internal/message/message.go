package message

import (
	"time"

	"github.com/google/uuid"
)

// TimestampFormat keeps message timestamps as fixed-width RFC 3339 UTC
// strings, so lexicographic order is chronological order. The thread sort
// depends on this.
const TimestampFormat = "2006-01-02T15:04:05Z"

func Now() string {
	return time.Now().UTC().Format(TimestampFormat)
}

// Message is one entry in a transaction's chat thread. Append-only.
type Message struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Username      string
	Role          string
	Content       string
	Timestamp     string
}

// DirectMessage is a user-to-user inbox message, the only message kind with
// read receipts.
type DirectMessage struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Content     string
	Read        bool
	Timestamp   string
}

// Recipient summarizes one inbox conversation for the recipients list.
type Recipient struct {
	UserID   uuid.UUID
	Username string
	Unread   int
}
