package mailservice

import (
	"sync"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"

	"github.com/sushihentaime/cmsblog/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) Render(name string, data any) (*message, error) {
	args := m.Called(name, data)
	if msg := args.Get(0); msg != nil {
		return msg.(*message), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

// MockMailer fails the first failures sends and records the rest.
type MockMailer struct {
	mu         sync.Mutex
	failures   int
	attempts   int
	recipients []string
	sent       []any
	done       chan struct{}
}

func newMockMailer(failures int) *MockMailer {
	return &MockMailer{failures: failures, done: make(chan struct{}, 1)}
}

func (m *MockMailer) send(recipient string, data any, templateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	if m.attempts <= m.failures {
		return errSendFailed
	}

	m.recipients = append(m.recipients, recipient)
	m.sent = append(m.sent, data)
	m.done <- struct{}{}
	return nil
}

type MockMessageConsumer struct {
	mock.Mock
	msgs chan amqp.Delivery
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	args := m.Called(key, exchange, queue)
	return m.msgs, args.Error(0)
}

// MockAcknowledger records acks on deliveries built in tests.
type MockAcknowledger struct {
	mu    sync.Mutex
	acked []uint64
}

func (a *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked = append(a.acked, tag)
	return nil
}

func (a *MockAcknowledger) Nack(tag uint64, multiple, requeue bool) error { return nil }

func (a *MockAcknowledger) Reject(tag uint64, requeue bool) error { return nil }

func (a *MockAcknowledger) Acked() []uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]uint64(nil), a.acked...)
}
