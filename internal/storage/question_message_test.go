package storage

import "testing"

// TestQuestionMessagesSwap verifies the previous message is handed back once.
func TestQuestionMessagesSwap(t *testing.T) {
	s := NewQuestionMessages()

	if _, had := s.Swap(1, 10); had {
		t.Fatalf("expected no previous message")
	}
	prev, had := s.Swap(1, 11)
	if !had || prev != 10 {
		t.Fatalf("expected previous 10, got %d, %v", prev, had)
	}
	if id, ok := s.Get(1); !ok || id != 11 {
		t.Fatalf("expected 11, got %d, %v", id, ok)
	}

	if _, had := s.Swap(2, 20); had {
		t.Fatalf("chats must not share messages")
	}

	s.Delete(1)
	if _, ok := s.Get(1); ok {
		t.Fatalf("expected message to be deleted")
	}
}
