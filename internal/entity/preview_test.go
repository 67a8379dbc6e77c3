package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(v int64) *int64 {
	return &v
}

func TestComputePreview_Scenario(t *testing.T) {
	// Conversation between user 1 and user 2:
	// m1 sent by 1 at t=10, m2 sent by 2 at t=20, no receipts yet.
	messages := []*MessageInfo{
		{Id: 1, Text: "hi", SenderId: 1, CreatedAt: 10},
		{Id: 2, Text: "hey", SenderId: 2, CreatedAt: 20},
	}

	p := ComputePreview(messages, 2)
	assert.Equal(t, "hey", p.LatestMessageText)
	assert.Equal(t, int64(1), p.UnreadMessageCount, "m1 unread, sent by the other user")
	assert.Nil(t, p.LastReadMessage)

	// User 2 reads m1 at t=30. From user 1's point of view m1 now carries the
	// peer's receipt and m2 is still unread.
	messages[0].ReadAt = ts(30)

	p = ComputePreview(messages, 1)
	assert.Equal(t, "hey", p.LatestMessageText)
	assert.Equal(t, int64(1), p.UnreadMessageCount, "m2 unread for user 1")
	require.NotNil(t, p.LastReadMessage)
	assert.Equal(t, int64(1), *p.LastReadMessage)
}

func TestComputePreview_UnreadNeverCountsOwnMessages(t *testing.T) {
	messages := []*MessageInfo{
		{Id: 1, SenderId: 7, CreatedAt: 10},
		{Id: 2, SenderId: 7, CreatedAt: 20},
		{Id: 3, SenderId: 8, CreatedAt: 30},
	}

	p := ComputePreview(messages, 7)
	assert.Equal(t, int64(1), p.UnreadMessageCount)

	p = ComputePreview(messages, 8)
	assert.Equal(t, int64(2), p.UnreadMessageCount)
}

func TestComputePreview_LastReadIsViewerAuthored(t *testing.T) {
	messages := []*MessageInfo{
		{Id: 1, SenderId: 1, CreatedAt: 10, ReadAt: ts(15)},
		{Id: 2, SenderId: 2, CreatedAt: 20, ReadAt: ts(25)},
		{Id: 3, SenderId: 1, CreatedAt: 30},
	}

	// Only id=1 qualifies for viewer 1: sent by them and carrying a receipt.
	p := ComputePreview(messages, 1)
	require.NotNil(t, p.LastReadMessage)
	assert.Equal(t, int64(1), *p.LastReadMessage)

	// Viewer 2's marker points at their own read message, id=2.
	p = ComputePreview(messages, 2)
	require.NotNil(t, p.LastReadMessage)
	assert.Equal(t, int64(2), *p.LastReadMessage)
}

func TestComputePreview_LastReadTieBreakByLargerId(t *testing.T) {
	messages := []*MessageInfo{
		{Id: 5, SenderId: 1, CreatedAt: 100, ReadAt: ts(110)},
		{Id: 9, SenderId: 1, CreatedAt: 100, ReadAt: ts(120)},
		{Id: 3, SenderId: 1, CreatedAt: 100, ReadAt: ts(130)},
	}

	p := ComputePreview(messages, 1)
	require.NotNil(t, p.LastReadMessage)
	assert.Equal(t, int64(9), *p.LastReadMessage)
}

func TestComputePreview_LatestTextTieBreakByLargerId(t *testing.T) {
	messages := []*MessageInfo{
		{Id: 2, Text: "second", SenderId: 1, CreatedAt: 50},
		{Id: 1, Text: "first", SenderId: 2, CreatedAt: 50},
	}

	p := ComputePreview(messages, 1)
	assert.Equal(t, "second", p.LatestMessageText)
}

func TestComputePreview_OrderIndependent(t *testing.T) {
	asc := []*MessageInfo{
		{Id: 1, Text: "a", SenderId: 1, CreatedAt: 10},
		{Id: 2, Text: "b", SenderId: 2, CreatedAt: 20},
		{Id: 3, Text: "c", SenderId: 2, CreatedAt: 30},
	}
	desc := []*MessageInfo{asc[2], asc[1], asc[0]}

	assert.Equal(t, ComputePreview(asc, 1), ComputePreview(desc, 1))
}

func TestLatestMessage(t *testing.T) {
	assert.Nil(t, LatestMessage(nil))
	assert.Nil(t, LatestMessage([]*MessageInfo{}))

	messages := []*MessageInfo{
		{Id: 1, CreatedAt: 10},
		{Id: 2, CreatedAt: 20},
	}
	latest := LatestMessage(messages)
	require.NotNil(t, latest)
	assert.Equal(t, int64(2), latest.Id)
}

func TestNormalizePair(t *testing.T) {
	a, b := NormalizePair(2, 1)
	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(2), b)

	a, b = NormalizePair(1, 2)
	assert.Equal(t, int64(1), a)
	assert.Equal(t, int64(2), b)
}

func TestConversation_OtherParticipant(t *testing.T) {
	conv := &Conversation{Id: 1, User1Id: 1, User2Id: 2}

	other, ok := conv.OtherParticipant(1)
	assert.True(t, ok)
	assert.Equal(t, int64(2), other)

	other, ok = conv.OtherParticipant(2)
	assert.True(t, ok)
	assert.Equal(t, int64(1), other)

	_, ok = conv.OtherParticipant(99)
	assert.False(t, ok)

	assert.True(t, conv.HasParticipant(1))
	assert.False(t, conv.HasParticipant(99))
}
