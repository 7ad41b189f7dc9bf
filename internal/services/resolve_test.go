package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveNamePrefersQuery(t *testing.T) {
	name, ok := ResolveName(url.Values{"name": {"alice"}}, []byte(`{"name":"bob"}`))
	require.True(t, ok)
	require.Equal(t, "alice", name)
}

func TestResolveNameFallsBackToBody(t *testing.T) {
	name, ok := ResolveName(url.Values{}, []byte(`{"name": "x"}`))
	require.True(t, ok)
	require.Equal(t, "x", name)

	// 空查询参数同样回退到请求体
	name, ok = ResolveName(url.Values{"name": {""}}, []byte(`{"name":"y"}`))
	require.True(t, ok)
	require.Equal(t, "y", name)
}

func TestResolveNameMissing(t *testing.T) {
	cases := map[string][]byte{
		"no body":        nil,
		"malformed body": []byte(`{"name":`),
		"not json":       []byte(`name=x`),
		"absent field":   []byte(`{"title":"t"}`),
		"empty field":    []byte(`{"name":""}`),
		"non-string":     []byte(`{"name":42}`),
		"array body":     []byte(`["x"]`),
	}
	for label, body := range cases {
		t.Run(label, func(t *testing.T) {
			name, ok := ResolveName(url.Values{}, body)
			require.False(t, ok)
			require.Empty(t, name)
		})
	}
}

func TestEncodeQueueMessage(t *testing.T) {
	msg, err := EncodeQueueMessage(`a "quoted" name`)
	require.NoError(t, err)
	require.Equal(t, `{"name":"a \"quoted\" name"}`, msg)
}

func TestEncodeQueueMessageKeepsHTMLCharacters(t *testing.T) {
	msg, err := EncodeQueueMessage("<b>&")
	require.NoError(t, err)
	require.Equal(t, `{"name":"<b>&"}`, msg)
}
