package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/warp/careerpath/session"
)

// MaxHistory caps the stored conversation; the oldest messages are dropped.
const MaxHistory = 200

// ErrEmptyMessage is returned when a question is blank.
var ErrEmptyMessage = errors.New("message is empty")

// Sender marks who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message is one entry of the conversation history.
type Message struct {
	ID          string    `json:"id"`
	Sender      Sender    `json:"type"`
	Content     string    `json:"content"`
	Topic       Topic     `json:"topic,omitempty"`
	Suggestions []string  `json:"suggestions,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Conversation is the advisor history of one role, stored in its session.
type Conversation struct {
	sess *session.Context
	now  func() time.Time

	mu       sync.Mutex
	messages []Message
}

// Open loads the history from the session. An empty history starts with the
// role's welcome message, which is saved immediately.
func Open(ctx context.Context, sess *session.Context) (*Conversation, error) {
	c := &Conversation{sess: sess, now: time.Now}

	var history []Message
	if _, err := sess.Get(session.KeyAdvisorHistory, &history); err != nil {
		return nil, err
	}
	if len(history) > 0 {
		c.messages = history
		return c, nil
	}

	if err := c.reset(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// History returns a copy of the messages, oldest first.
func (c *Conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

// Ask records the question and the canned reply, then saves the history.
func (c *Conversation) Ask(ctx context.Context, text string) (Message, Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	question := Message{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Content:   text,
		Timestamp: c.now().UTC(),
	}
	reply := c.aiMessage(Respond(c.sess.Role(), text))

	next := append(append([]Message(nil), c.messages...), question, reply)
	if len(next) > MaxHistory {
		next = next[len(next)-MaxHistory:]
	}
	if err := c.sess.Set(ctx, session.KeyAdvisorHistory, next); err != nil {
		return Message{}, Message{}, fmt.Errorf("saving advisor history: %w", err)
	}
	c.messages = next
	return question, reply, nil
}

// Clear drops the history and starts over with the welcome message.
func (c *Conversation) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reset(ctx)
}

func (c *Conversation) reset(ctx context.Context) error {
	fresh := []Message{c.aiMessage(Welcome(c.sess.Role()))}
	if err := c.sess.Set(ctx, session.KeyAdvisorHistory, fresh); err != nil {
		return fmt.Errorf("saving advisor history: %w", err)
	}
	c.messages = fresh
	return nil
}

func (c *Conversation) aiMessage(r Reply) Message {
	return Message{
		ID:          uuid.NewString(),
		Sender:      SenderAI,
		Content:     r.Content,
		Topic:       r.Topic,
		Suggestions: r.Suggestions,
		Timestamp:   c.now().UTC(),
	}
}
