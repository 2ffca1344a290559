package xip

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go4.org/netipx"
)

func TestAddrNetipRoundTrip(t *testing.T) {
	inputs := []string{"192.168.1.1", "0.0.0.0", "::1", "2001:db8::42"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			a := MustParseAddr(in)
			na, ok := a.Netip()
			require.True(t, ok)
			assert.Equal(t, in, na.String())

			back, err := AddrFromNetip(na)
			require.NoError(t, err)
			assert.Equal(t, a, back)
		})
	}

	_, ok := Addr{}.Netip()
	assert.False(t, ok)
}

func TestAddrFromNetipMapped(t *testing.T) {
	// netip 的 4in6 地址归一化为纯 IPv4
	mapped := netip.MustParseAddr("::ffff:192.0.2.1")
	a, err := AddrFromNetip(mapped)
	require.NoError(t, err)
	assert.True(t, a.Is4())
	assert.Equal(t, "192.0.2.1", a.String())

	// 对照：本库自己解析同一文本保持 IPv6
	own := MustParseAddr("::ffff:192.0.2.1")
	assert.True(t, own.Is6())
}

func TestAddrFromNetipErrors(t *testing.T) {
	_, err := AddrFromNetip(netip.Addr{})
	assert.ErrorIs(t, err, ErrParse)

	_, err = AddrFromNetip(netip.MustParseAddr("fe80::1%eth0"))
	assert.ErrorIs(t, err, ErrParse)
}

func TestCIDRPrefixRoundTrip(t *testing.T) {
	c := MustParseCIDR("192.168.1.7/24")
	p, ok := c.NetipPrefix()
	require.True(t, ok)
	assert.Equal(t, "192.168.1.7/24", p.String())

	back, err := CIDRFromPrefix(p)
	require.NoError(t, err)
	assert.True(t, c.Equal(back))

	_, err = CIDRFromPrefix(netip.Prefix{})
	assert.ErrorIs(t, err, ErrParse)

	_, ok = CIDR{}.NetipPrefix()
	assert.False(t, ok)
}

func TestRangeIPRangeRoundTrip(t *testing.T) {
	r := MustParseRange("10.0.0.1-10.0.0.100")
	ir, ok := r.IPRange()
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", ir.From().String())
	assert.Equal(t, "10.0.0.100", ir.To().String())

	back, err := RangeFromIPRange(ir)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))

	_, err = RangeFromIPRange(netipx.IPRange{})
	assert.ErrorIs(t, err, ErrParse)

	_, ok = Range{}.IPRange()
	assert.False(t, ok)
}

func TestRangeSetIPSetRoundTrip(t *testing.T) {
	set, err := ParseRangeSet([]string{"10.0.0.1-10.0.0.100", "192.168.1.0/24"})
	require.NoError(t, err)

	ipset, err := set.IPSet()
	require.NoError(t, err)
	require.NotNil(t, ipset)

	back, err := RangeSetFromIPSet(ipset)
	require.NoError(t, err)
	assert.True(t, set.Equal(back))

	// nil IPSet → 空集合
	empty, err := RangeSetFromIPSet(nil)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestRangeToCIDRsMatchesNetipx(t *testing.T) {
	// 最小 CIDR 覆盖与 netipx.IPRange.Prefixes 交叉校验
	spans := []string{
		"10.0.0.1-10.0.0.254",
		"192.168.0.0-192.168.1.255",
		"10.0.0.3-10.0.2.200",
		"2001:db8::1-2001:db8::ff",
	}
	for _, span := range spans {
		t.Run(span, func(t *testing.T) {
			r := MustParseRange(span)
			ir, ok := r.IPRange()
			require.True(t, ok)

			want := ir.Prefixes()
			got := r.ToCIDRs()
			require.Len(t, got, len(want))
			for i, c := range got {
				p, ok := c.NetipPrefix()
				require.True(t, ok)
				assert.Equal(t, want[i], p)
			}
		})
	}
}

func TestRangeSetOpsMatchNetipx(t *testing.T) {
	// 集合代数与 netipx.IPSetBuilder 交叉校验
	a, err := ParseRangeSet([]string{"10.0.0.0/24", "10.0.2.0/24"})
	require.NoError(t, err)
	b, err := ParseRangeSet([]string{"10.0.0.128-10.0.2.127"})
	require.NoError(t, err)

	union, err := a.Union(b)
	require.NoError(t, err)
	inter, err := a.Intersect(b)
	require.NoError(t, err)
	diff, err := a.Subtract(b)
	require.NoError(t, err)

	aSet, err := a.IPSet()
	require.NoError(t, err)
	bSet, err := b.IPSet()
	require.NoError(t, err)

	var ub netipx.IPSetBuilder
	ub.AddSet(aSet)
	ub.AddSet(bSet)
	wantUnion, err := ub.IPSet()
	require.NoError(t, err)
	wantSet, err := RangeSetFromIPSet(wantUnion)
	require.NoError(t, err)
	assert.True(t, union.Equal(wantSet))

	var ib netipx.IPSetBuilder
	ib.AddSet(aSet)
	ib.Intersect(bSet)
	wantInter, err := ib.IPSet()
	require.NoError(t, err)
	wantSet, err = RangeSetFromIPSet(wantInter)
	require.NoError(t, err)
	assert.True(t, inter.Equal(wantSet))

	var db netipx.IPSetBuilder
	db.AddSet(aSet)
	db.RemoveSet(bSet)
	wantDiff, err := db.IPSet()
	require.NoError(t, err)
	wantSet, err = RangeSetFromIPSet(wantDiff)
	require.NoError(t, err)
	assert.True(t, diff.Equal(wantSet))
}
