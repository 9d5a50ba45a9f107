package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jupiterclapton/cenackle/services/blog-service/internal/core/domain"
)

const (
	StreamName = "BLOG"

	SubjectAccountRegistered = "identity.account.registered"
	SubjectPostCreated       = "post.created"
	SubjectPostDeleted       = "post.deleted"
)

var streamSubjects = []string{"identity.>", "post.>"}

// --- PAYLOADS (contrat implicite avec les consommateurs) ---

type AccountRegisteredEvent struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

type PostCreatedEvent struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type PostDeletedEvent struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
}

// NatsBroker publie les événements du domaine sur JetStream.
type NatsBroker struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// NewNatsBroker initialise la connexion et s'assure que le Stream existe (idempotent).
func NewNatsBroker(ctx context.Context, url string) (*NatsBroker, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: streamSubjects,
		Storage:  jetstream.FileStorage,
		Replicas: 1,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create stream: %w", err)
	}

	return &NatsBroker{nc: nc, js: js}, nil
}

func (n *NatsBroker) Close() {
	n.nc.Close()
}

func (n *NatsBroker) PublishAccountRegistered(ctx context.Context, a *domain.Account) error {
	return n.publish(ctx, SubjectAccountRegistered, AccountRegisteredEvent{AccountID: a.ID, Email: a.Email})
}

func (n *NatsBroker) PublishPostCreated(ctx context.Context, p *domain.Post) error {
	return n.publish(ctx, SubjectPostCreated, PostCreatedEvent{
		ID:        p.ID,
		AuthorID:  p.CreatorID,
		Title:     p.Title,
		CreatedAt: p.CreatedAt,
	})
}

func (n *NatsBroker) PublishPostDeleted(ctx context.Context, postID, creatorID string) error {
	return n.publish(ctx, SubjectPostDeleted, PostDeletedEvent{ID: postID, AuthorID: creatorID})
}

func (n *NatsBroker) publish(ctx context.Context, subject string, payload any) error {
	msg, err := newMessage(ctx, subject, payload)
	if err != nil {
		return err
	}

	ack, err := n.js.PublishMsg(ctx, msg)
	if err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	slog.DebugContext(ctx, "event published", "subject", subject, "seq", ack.Sequence)
	return nil
}

// newMessage encode le payload et injecte le contexte de trace dans les headers NATS.
func newMessage(ctx context.Context, subject string, payload any) (*nats.Msg, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	msg := &nats.Msg{
		Subject: subject,
		Data:    data,
		Header:  nats.Header{},
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))
	return msg, nil
}

// NoopPublisher est utilisé quand NATS n'est pas configuré.
type NoopPublisher struct{}

func (NoopPublisher) PublishAccountRegistered(context.Context, *domain.Account) error { return nil }
func (NoopPublisher) PublishPostCreated(context.Context, *domain.Post) error          { return nil }
func (NoopPublisher) PublishPostDeleted(context.Context, string, string) error        { return nil }
