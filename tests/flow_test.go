package tests

import (
	"fmt"
	"testing"
	"time"
)

// TestFullFlow walks a complete two-user journey: register, exchange
// messages, inspect the conversation list, mark read and verify receipts.
func TestFullFlow_Conversation(t *testing.T) {
	t.Log("Step 1: Register users")
	aliceClient, _, aliceId := RegisterAndLogin(t, generateUsername("flow_alice"), "password123")
	bobClient, _, bobId := RegisterAndLogin(t, generateUsername("flow_bob"), "password123")

	t.Log("Step 2: Alice sends messages to Bob")
	var conversationId int64
	sentIds := make([]int64, 0, 5)
	for i := 1; i <= 5; i++ {
		msg := SendText(t, aliceClient, bobId, fmt.Sprintf("Hello %d from Alice!", i))
		sentIds = append(sentIds, msg.Id)
		if i == 1 {
			conversationId = msg.ConversationId
			t.Logf("Conversation ID: %d", conversationId)
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Log("Step 3: Bob checks his conversation list")
	views := GetConversations(t, bobClient)
	view := findView(views, conversationId)
	if view == nil {
		t.Fatal("conversation not in bob's list")
	}
	if view.UnreadMessageCount != 5 {
		t.Errorf("expected 5 unread, got %d", view.UnreadMessageCount)
	}
	if view.LatestMessageText != "Hello 5 from Alice!" {
		t.Errorf("unexpected latest text: %q", view.LatestMessageText)
	}
	if view.OtherUser.Id != aliceId {
		t.Errorf("expected other user %d, got %d", aliceId, view.OtherUser.Id)
	}

	t.Log("Step 4: Bob replies")
	reply := SendText(t, bobClient, aliceId, "Hi Alice!")
	if reply.ConversationId != conversationId {
		t.Errorf("reply should land in conversation %d, got %d", conversationId, reply.ConversationId)
	}

	t.Log("Step 5: Bob marks Alice's messages read")
	result := MarkRead(t, bobClient, MarkReadRequest{
		ConversationId: conversationId,
		ReadMessages:   sentIds,
	})
	if len(result.Messages) != 5 {
		t.Errorf("expected 5 updated messages, got %d", len(result.Messages))
	}

	t.Log("Step 6: Alice sees the receipts")
	views = GetConversations(t, aliceClient)
	view = findView(views, conversationId)
	if view == nil {
		t.Fatal("conversation not in alice's list")
	}
	if view.UnreadMessageCount != 1 {
		t.Errorf("alice should have bob's reply unread, got %d", view.UnreadMessageCount)
	}
	if view.LastReadMessage == nil || *view.LastReadMessage != sentIds[4] {
		t.Errorf("alice's last read marker should be her newest message")
	}

	t.Log("Step 7: Alice marks the reply read")
	result = MarkRead(t, aliceClient, MarkReadRequest{
		ConversationId: conversationId,
		ReadMessages:   []int64{reply.Id},
	})
	if len(result.Messages) != 1 {
		t.Errorf("expected 1 updated message, got %d", len(result.Messages))
	}

	t.Log("Step 8: Everything is read on both sides")
	for name, client := range map[string]*APIClient{"alice": aliceClient, "bob": bobClient} {
		views := GetConversations(t, client)
		view := findView(views, conversationId)
		if view == nil {
			t.Fatalf("conversation not in %s's list", name)
		}
		if view.UnreadMessageCount != 0 {
			t.Errorf("%s should have 0 unread, got %d", name, view.UnreadMessageCount)
		}
		for _, msg := range view.Messages {
			if msg.ReadAt == nil {
				t.Errorf("%s sees message %d unread", name, msg.Id)
			}
		}
	}
}
