//nolint:paralleltest
package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/philippgille/redisdata/encoding"
)

type payload struct {
	Foo string
	Bar int
}

func TestImplements(t *testing.T) {
	require.Implements(t, (*encoding.Codec)(nil), new(encoding.JSONcodec))
	require.Implements(t, (*encoding.Codec)(nil), new(encoding.GobCodec))
	require.Implements(t, (*encoding.Codec)(nil), new(encoding.MsgPackCodec))
	require.Implements(t, (*encoding.Codec)(nil), new(encoding.TOMLcodec))
}

func TestJSONMarshal(t *testing.T) {
	require := require.New(t)

	tables := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{
			"string string map",
			map[string]string{"foo": "bar"},
			`{"foo":"bar"}`,
		},
		{
			"struct",
			payload{"foo", 7},
			`{"Foo":"foo","Bar":7}`,
		},
		{
			"slice of string",
			[]string{"foo", "bar"},
			`["foo","bar"]`,
		},
	}

	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			r, err := encoding.JSON.Marshal(table.input)
			require.NoError(err)

			require.Equal(table.expected, string(r))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	codecs := []struct {
		name  string
		codec encoding.Codec
	}{
		{"JSON", encoding.JSON},
		{"gob", encoding.Gob},
		{"msgpack", encoding.MsgPack},
	}

	for _, table := range codecs {
		table := table
		t.Run(table.name, func(t *testing.T) {
			require := require.New(t)

			expected := payload{"foo", 7}
			data, err := table.codec.Marshal(expected)
			require.NoError(err)

			var actual payload
			err = table.codec.Unmarshal(data, &actual)
			require.NoError(err)

			require.Equal(expected, actual)
		})
	}
}

func TestTOMLMarshal(t *testing.T) {
	require := require.New(t)

	tables := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{
			"string string map",
			map[string]string{"foo": "bar"},
			"foo = \"bar\"\n",
		},
		{
			"struct",
			payload{"foo", 7},
			"Foo = \"foo\"\nBar = 7\n",
		},
	}

	for _, table := range tables {
		table := table
		t.Run(table.name, func(t *testing.T) {
			r, err := encoding.TOML.Marshal(table.input)
			require.NoError(err)

			require.Equal(table.expected, string(r))
		})
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	require := require.New(t)

	expected := payload{"foo", 7}
	data, err := encoding.TOML.Marshal(expected)
	require.NoError(err)

	var actual payload
	err = encoding.TOML.Unmarshal(data, &actual)
	require.NoError(err)

	require.Equal(expected, actual)
}
