package stub

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

type runState struct {
	messages []StoredMessage
	seen     map[string]int // recipient+subject -> count
	rejected int
}

type MessageStorage struct {
	mu   sync.RWMutex
	runs map[string]*runState // runID -> state
}

func NewMessageStorage() *MessageStorage {
	return &MessageStorage{
		runs: make(map[string]*runState),
	}
}

func (s *MessageStorage) Reset(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
}

func (s *MessageStorage) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = make(map[string]*runState)
}

func (s *MessageStorage) state(runID string) *runState {
	st, ok := s.runs[runID]
	if !ok {
		st = &runState{seen: make(map[string]int)}
		s.runs[runID] = st
	}
	return st
}

func (s *MessageStorage) Accept(runID string, req MessageRequest, now time.Time) StoredMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(runID)
	key := req.To + "\x00" + req.Subject
	st.seen[key]++

	msg := StoredMessage{
		ID:         generateMessageID(runID, key, st.seen[key]),
		RunID:      runID,
		To:         req.To,
		Subject:    req.Subject,
		ReceivedAt: now,
	}
	st.messages = append(st.messages, msg)

	return msg
}

func (s *MessageStorage) Reject(runID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(runID).rejected++
}

func (s *MessageStorage) Messages(runID string) []StoredMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.runs[runID]
	if !ok {
		return []StoredMessage{}
	}
	out := make([]StoredMessage, len(st.messages))
	copy(out, st.messages)
	return out
}

func (s *MessageStorage) Stats(runID string) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{RunID: runID}
	st, ok := s.runs[runID]
	if !ok {
		return stats
	}

	stats.Accepted = len(st.messages)
	stats.Rejected = st.rejected
	stats.Unique = len(st.seen)
	stats.Duplicates = stats.Accepted - stats.Unique
	return stats
}

func generateMessageID(runID, key string, seq int) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s-%s-%d", runID, key, seq)))
	return fmt.Sprintf("%s-%s", runID, hex.EncodeToString(hash[:8]))
}
