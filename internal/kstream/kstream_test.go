package kstream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-search/internal/model"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestSearchPublisher_PublishSearch(t *testing.T) {
	w := &fakeWriter{}
	p := NewSearchPublisher(w, nil)

	p.PublishSearch(context.Background(), model.SearchPerformed{
		RequestID:   "req-1",
		Operation:   "transport",
		Categories:  []string{"transport"},
		ResultCount: 3,
	})

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "req-1", string(w.msgs[0].Key))

	var got model.SearchPerformed
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "transport", got.Operation)
	assert.Equal(t, 3, got.ResultCount)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestSearchPublisher_GeneratesKeyAndSwallowsErrors(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := NewSearchPublisher(w, nil)

	assert.NotPanics(t, func() {
		p.PublishSearch(context.Background(), model.SearchPerformed{Operation: "multi"})
	})
	require.Len(t, w.msgs, 1)
	assert.Len(t, string(w.msgs[0].Key), 36)
}

type fakeReader struct {
	msgs []kafka.Message
	err  error
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, r.err
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) Close() error { return nil }

type recordingInvalidator struct {
	calls [][]model.Category
}

func (i *recordingInvalidator) Invalidate(_ context.Context, categories ...model.Category) error {
	i.calls = append(i.calls, categories)
	return nil
}

func TestConsumeListingChanges(t *testing.T) {
	r := &fakeReader{
		msgs: []kafka.Message{
			{Value: []byte(`{"category":"ACCOMMODATION","listing_ids":["A001"]}`)},
			{Value: []byte(`not json`)},
			{Value: []byte(`{"category":"items"}`)},
			{Value: []byte(`{"listing_ids":["X"]}`)},
		},
		err: context.Canceled,
	}
	inv := &recordingInvalidator{}

	err := ConsumeListingChanges(context.Background(), r, inv, nil)
	require.NoError(t, err)

	require.Len(t, inv.calls, 3)
	assert.Equal(t, []model.Category{model.CategoryAccommodation}, inv.calls[0])
	assert.Equal(t, []model.Category{model.CategoryItem}, inv.calls[1])
	assert.Empty(t, inv.calls[2])
}

func TestConsumeListingChanges_ReaderError(t *testing.T) {
	boom := errors.New("group coordinator unavailable")
	err := ConsumeListingChanges(context.Background(), &fakeReader{err: boom}, &recordingInvalidator{}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	p.PublishSearch(context.Background(), model.SearchPerformed{})
	assert.NoError(t, p.Close())
}
