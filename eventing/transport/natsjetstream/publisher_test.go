package natsjetstream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gorecord/eventing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ts := time.Unix(0, 1700000000000000000).UTC()
	event := eventing.Event{
		ID:         "evt-1",
		Type:       eventing.TypeCreated,
		EntityType: "note",
		EntityID:   "42",
		Actor:      "alice",
		Timestamp:  ts,
		Metadata:   map[string]any{"source": "api"},
	}

	data, err := encodeEvent(event)
	require.NoError(t, err)

	decoded, err := decodeEvent(data)
	require.NoError(t, err)
	require.Equal(t, event.ID, decoded.ID)
	require.Equal(t, event.Type, decoded.Type)
	require.Equal(t, event.EntityID, decoded.EntityID)
	require.Equal(t, ts.UnixNano(), decoded.Timestamp.UnixNano())
	require.Equal(t, "api", decoded.Metadata["source"])
}

func TestEncodeRejectsMissingID(t *testing.T) {
	_, err := encodeEvent(eventing.Event{Type: eventing.TypeCreated})
	require.Error(t, err)
}

func TestSubjectName(t *testing.T) {
	p := &Publisher{cfg: Config{SubjectPrefix: "records."}}

	event := eventing.Event{Type: eventing.TypeSoftDeleted, EntityType: "note"}
	require.Equal(t, "records.note.soft_deleted", p.subjectName(event))

	event = eventing.Event{Type: eventing.TypeCreated, EntityType: "person"}
	require.Equal(t, "records.person.created", p.subjectName(event))
}
