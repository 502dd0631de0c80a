package memory

import (
	"sync"
	"time"

	"nexus-ems-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ConversationRepository keeps assistant transcripts in process memory.
// Entries expire after an hour without activity.
type ConversationRepository struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	return &ConversationRepository{
		cache: cache.New(1*time.Hour, 10*time.Minute),
	}
}

// Append adds messages to the conversation, creating it on first use, and
// returns a copy of the full transcript.
func (r *ConversationRepository) Append(conversationID, userID string, msgs ...store.Message) store.Conversation {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv := &store.Conversation{ID: conversationID, UserID: userID}
	if x, found := r.cache.Get(conversationID); found {
		conv = x.(*store.Conversation)
	}
	conv.Messages = append(conv.Messages, msgs...)
	r.cache.Set(conversationID, conv, cache.DefaultExpiration)

	return copyConversation(conv)
}

func (r *ConversationRepository) Get(conversationID string) (store.Conversation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(conversationID); found {
		return copyConversation(x.(*store.Conversation)), true
	}
	return store.Conversation{}, false
}

func (r *ConversationRepository) Delete(conversationID string) {
	r.cache.Delete(conversationID)
}

func copyConversation(c *store.Conversation) store.Conversation {
	out := *c
	out.Messages = append([]store.Message(nil), c.Messages...)
	return out
}
