package segment

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a message block.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusStreaming Status = "streaming"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

// BlockKind is the content type of a message block. Only text kinds are
// produced by SplitIntoRecords; the others are rendered by the UI layer.
type BlockKind string

const (
	KindMainText    BlockKind = "main_text"
	KindCodeBlock   BlockKind = "code"
	KindImage       BlockKind = "image"
	KindFile        BlockKind = "file"
	KindTool        BlockKind = "tool"
	KindCitation    BlockKind = "citation"
	KindTranslation BlockKind = "translation"
	KindThinking    BlockKind = "thinking"
	KindVideo       BlockKind = "video"
	KindError       BlockKind = "error"
	KindUnknown     BlockKind = "unknown"
)

// Record is one block of a message together with its bookkeeping fields.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	MessageID string    `json:"message_id" yaml:"message_id"`
	Kind      BlockKind `json:"type" yaml:"type"`
	Status    Status    `json:"status" yaml:"status"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// IDGenerator hands out record identities.
type IDGenerator interface {
	NextID() string
}

// CounterIDs generates "prefix-N" identities from a monotonic counter.
// It is safe for concurrent use.
type CounterIDs struct {
	prefix string
	n      atomic.Uint64
}

func NewCounterIDs(prefix string) *CounterIDs {
	return &CounterIDs{prefix: prefix}
}

func (c *CounterIDs) NextID() string {
	return c.prefix + "-" + strconv.FormatUint(c.n.Add(1), 10)
}

// UUIDs generates random version 4 UUIDs.
type UUIDs struct{}

func (UUIDs) NextID() string {
	return uuid.NewString()
}

// RecordOptions configures SplitIntoRecords.
type RecordOptions struct {
	MessageID string
	Status    Status           // default StatusIdle
	IDs       IDGenerator      // default UUIDs{}
	Now       func() time.Time // default time.Now
}

// SplitIntoRecords segments markdown and wraps every block in a Record.
// Identities are never reused: each call draws fresh IDs for every block,
// so callers replace the full record set of a message on each update.
func SplitIntoRecords(markdown string, opts RecordOptions) []Record {
	blocks := Segment(markdown)
	if len(blocks) == 0 {
		return nil
	}
	if opts.Status == "" {
		opts.Status = StatusIdle
	}
	if opts.IDs == nil {
		opts.IDs = UUIDs{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	created := opts.Now()
	records := make([]Record, len(blocks))
	for i, content := range blocks {
		records[i] = Record{
			ID:        opts.IDs.NextID(),
			MessageID: opts.MessageID,
			Kind:      KindMainText,
			Status:    opts.Status,
			Content:   content,
			CreatedAt: created,
		}
	}
	return records
}
