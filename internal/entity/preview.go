package entity

// Preview is the derived read-state summary of a conversation for one viewer.
// It is computed from messages and receipts on every read and never persisted.
type Preview struct {
	LatestMessageText  string
	UnreadMessageCount int64
	LastReadMessage    *int64
}

// ComputePreview derives the preview for viewerId from the conversation's
// messages. The ReadAt on each message is the non-sender participant's
// receipt, so for a message the viewer sent it confirms the peer has seen it,
// and for a message the peer sent it is the viewer's own receipt.
//
// Rules:
//   - latest text comes from the message with the greatest CreatedAt
//     (greater Id breaks ties);
//   - a message counts as unread only if it has no receipt and the viewer is
//     not its sender;
//   - the last-read marker is the viewer-sent message with a receipt that has
//     the greatest CreatedAt, greater Id breaking ties; nil when none exists.
//
// Messages may be passed in any order. The caller must not pass an empty
// slice; conversations without messages have no preview.
func ComputePreview(messages []*MessageInfo, viewerId int64) Preview {
	var p Preview
	var latest *MessageInfo
	var lastRead *MessageInfo

	for _, msg := range messages {
		if newer(msg, latest) {
			latest = msg
		}

		if msg.ReadAt == nil && msg.SenderId != viewerId {
			p.UnreadMessageCount++
		}

		if msg.ReadAt != nil && msg.SenderId == viewerId && newer(msg, lastRead) {
			lastRead = msg
		}
	}

	if latest != nil {
		p.LatestMessageText = latest.Text
	}
	if lastRead != nil {
		id := lastRead.Id
		p.LastReadMessage = &id
	}

	return p
}

// newer reports whether a was created after b, falling back to the larger Id
// on equal timestamps so the result is deterministic
func newer(a, b *MessageInfo) bool {
	if b == nil {
		return true
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt > b.CreatedAt
	}
	return a.Id > b.Id
}

// LatestMessage returns the newest message of an ascending-ordered slice, or
// nil for an empty one. Used for the conversation list sort key.
func LatestMessage(messages []*MessageInfo) *MessageInfo {
	if len(messages) == 0 {
		return nil
	}
	return messages[len(messages)-1]
}
