package eventbroker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestNewMessageCarriesPayloadAndTraceContext(t *testing.T) {
	previous := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(previous) })

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	msg, err := newMessage(ctx, SubjectPostCreated, PostCreatedEvent{ID: "p1", AuthorID: "a1", Title: "Hello", CreatedAt: created})
	require.NoError(t, err)

	assert.Equal(t, SubjectPostCreated, msg.Subject)

	// Côté consommateur, le contexte extrait des headers rattache le traitement à la même trace
	consumed := otel.GetTextMapPropagator().Extract(context.Background(), propagation.HeaderCarrier(msg.Header))
	remote := trace.SpanContextFromContext(consumed)
	require.True(t, remote.IsValid())
	assert.True(t, remote.IsRemote())
	assert.Equal(t, span.SpanContext().TraceID(), remote.TraceID())
	assert.Equal(t, span.SpanContext().SpanID(), remote.SpanID())

	var got PostCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "a1", got.AuthorID)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishPostDeleted(context.Background(), "p1", "a1"))
	assert.NoError(t, p.PublishPostCreated(context.Background(), nil))
	assert.NoError(t, p.PublishAccountRegistered(context.Background(), nil))
}
