// Package events публикует события бронирований в NATS для сервиса уведомлений.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Conn минимальный интерфейс соединения NATS
type Conn interface {
	Publish(subject string, data []byte) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Connect подключается к NATS с бесконечным переподключением
func Connect(url string, log Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("charter-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return nc, nil
}

// Publisher публикует события в subject "<prefix>.<type>"
type Publisher struct {
	conn   Conn
	prefix string
	log    Logger
}

// NewPublisher создает новый экземпляр публикатора
func NewPublisher(conn Conn, subjectPrefix string, log Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		prefix: subjectPrefix,
		log:    log,
	}
}

// Subject возвращает subject для типа события
func (p *Publisher) Subject(eventType domain.BookingEventType) string {
	if p.prefix == "" {
		return string(eventType)
	}
	return p.prefix + "." + string(eventType)
}

// Publish сериализует событие в JSON и отправляет его.
// nats.Conn буферизует сообщения, поэтому контекст не используется.
func (p *Publisher) Publish(_ context.Context, event domain.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	subject := p.Subject(event.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("%w: subject=%s: %v", ErrPublish, subject, err)
	}

	p.log.Info("Published %s for booking=%s", subject, event.BookingID)
	return nil
}

// NopPublisher используется, когда NATS выключен в конфигурации
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, domain.BookingEvent) error {
	return nil
}
