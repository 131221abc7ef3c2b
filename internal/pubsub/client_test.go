package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDecode_LeagueLoaded(t *testing.T) {
	in := LeagueLoaded{RunID: "run-1", League: "england", Teams: 20, Events: 1000, Players: 300, LoadedAt: 1700000000}
	data, err := msgpack.Marshal(in)
	require.NoError(t, err)

	var out LeagueLoaded
	require.NoError(t, Decode(data, &out))
	assert.Equal(t, in, out)
}

func TestDecode_RejectsGarbage(t *testing.T) {
	var out LeagueLoaded
	assert.Error(t, Decode([]byte{0xc1}, &out))
}

func TestMock_RecordsCalls(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.SendMessage(EventLeagueLoaded, LeagueLoaded{League: "italy"}))
	require.Len(t, m.SendMessageCalls, 1)
	assert.Equal(t, EventLeagueLoaded, m.SendMessageCalls[0].Topic)

	m.Reset()
	assert.Empty(t, m.SendMessageCalls)
}
