package xip

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddrJSON(t *testing.T) {
	type host struct {
		IP Addr `json:"ip"`
	}

	data, err := json.Marshal(host{IP: MustParseAddr("192.168.1.1")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ip":"192.168.1.1"}`, string(data))

	var h host
	require.NoError(t, json.Unmarshal([]byte(`{"ip":"2001:db8::1"}`), &h))
	assert.Equal(t, MustParseAddr("2001:db8::1"), h.IP)

	// 非法文本报 ErrParse
	err = json.Unmarshal([]byte(`{"ip":"not an ip"}`), &h)
	assert.ErrorIs(t, err, ErrParse)

	// 空字符串还原为零值
	require.NoError(t, json.Unmarshal([]byte(`{"ip":""}`), &h))
	assert.False(t, h.IP.IsValid())

	// 零值序列化为空字符串
	data, err = json.Marshal(host{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ip":""}`, string(data))
}

func TestAddrAsMapKey(t *testing.T) {
	// TextMarshaler 让 Addr 可以直接做 JSON map key
	m := map[Addr]int{
		MustParseAddr("10.0.0.1"): 1,
		MustParseAddr("10.0.0.2"): 2,
	}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"10.0.0.1":1,"10.0.0.2":2}`, string(data))
}

func TestCIDRJSON(t *testing.T) {
	type route struct {
		Dst CIDR `json:"dst"`
	}

	data, err := json.Marshal(route{Dst: MustParseCIDR("10.0.0.0/8")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dst":"10.0.0.0/8"}`, string(data))

	var r route
	require.NoError(t, json.Unmarshal(data, &r))
	assert.True(t, r.Dst.Equal(MustParseCIDR("10.0.0.0/8")))

	err = json.Unmarshal([]byte(`{"dst":"10.0.0.0/99"}`), &r)
	assert.ErrorIs(t, err, ErrParse)
}

func TestRangeJSON(t *testing.T) {
	type block struct {
		Span Range `json:"span"`
	}

	data, err := json.Marshal(block{Span: MustParseRange("10.0.0.1-10.0.0.9")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"span":"10.0.0.1-10.0.0.9"}`, string(data))

	var b block
	require.NoError(t, json.Unmarshal(data, &b))
	assert.Equal(t, "10.0.0.1-10.0.0.9", b.Span.String())

	err = json.Unmarshal([]byte(`{"span":"10.0.0.9-10.0.0.1"}`), &b)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestWireRange(t *testing.T) {
	r := MustParseRange("10.0.0.1-10.0.0.100")

	w, err := WireRangeFrom(r)
	require.NoError(t, err)
	assert.Equal(t, WireRange{Start: "10.0.0.1", End: "10.0.0.100"}, w)

	back, err := w.ToRange()
	require.NoError(t, err)
	assert.True(t, r.Equal(back))

	// 结构化 JSON 形式
	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"10.0.0.1","end":"10.0.0.100"}`, string(data))

	_, err = WireRangeFrom(Range{})
	assert.ErrorIs(t, err, ErrInvariant)

	_, err = WireRange{Start: "bad", End: "10.0.0.1"}.ToRange()
	assert.ErrorIs(t, err, ErrParse)

	_, err = WireRange{Start: "10.0.0.9", End: "10.0.0.1"}.ToRange()
	assert.ErrorIs(t, err, ErrInvariant)
}
