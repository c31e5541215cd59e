package histstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/finbuddy/finance-advisor/internal/domain/advisor"
)

// ValkeyStore keeps per-user conversation history in Valkey lists so
// multiple instances share one conversation view. Each list is trimmed
// to the most-recent-N entries on every append.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	maxLen int
}

// NewValkeyStore constructs a store bounded at maxLen messages per user.
func NewValkeyStore(client valkey.Client, prefix string, maxLen int) *ValkeyStore {
	if prefix == "" {
		prefix = "chat"
	}
	if maxLen <= 0 {
		maxLen = 50
	}
	return &ValkeyStore{client: client, prefix: prefix, maxLen: maxLen}
}

// Append implements advisor.HistoryStore.
func (s *ValkeyStore) Append(ctx context.Context, userID string, msg advisor.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := s.historyKey(userID)
	if err := s.client.Do(ctx, s.client.B().Rpush().Key(key).Element(string(payload)).Build()).Error(); err != nil {
		return err
	}
	return s.client.Do(ctx, s.client.B().Ltrim().Key(key).Start(int64(-s.maxLen)).Stop(-1).Build()).Error()
}

// List implements advisor.HistoryStore.
func (s *ValkeyStore) List(ctx context.Context, userID string, limit int) ([]advisor.Message, error) {
	if limit <= 0 || limit > s.maxLen {
		limit = s.maxLen
	}
	resp := s.client.Do(ctx, s.client.B().Lrange().Key(s.historyKey(userID)).Start(int64(-limit)).Stop(-1).Build())
	entries, err := resp.AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]advisor.Message, 0, len(entries))
	for _, entry := range entries {
		var msg advisor.Message
		if err := json.Unmarshal([]byte(entry), &msg); err != nil {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

// Clear implements advisor.HistoryStore.
func (s *ValkeyStore) Clear(ctx context.Context, userID string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.historyKey(userID)).Build()).Error()
}

func (s *ValkeyStore) historyKey(userID string) string {
	return fmt.Sprintf("%s:history:%s", s.prefix, userID)
}

var _ advisor.HistoryStore = (*ValkeyStore)(nil)
