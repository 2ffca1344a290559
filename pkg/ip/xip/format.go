package xip

import (
	"strconv"
	"strings"
)

// String 返回地址的规范文本表示。
//
// IPv4 输出点分十进制；IPv6 输出 RFC 5952 规范形式
// （小写十六进制、最长零组串压缩，IPv4-mapped/IPv4-compatible
// 地址输出混合写法，详见 [formatV6] 的规则）。
// 无效地址返回空字符串 ""。
//
// 规范形式是不动点：ParseAddr(a.String()) 与 a 数值相等，
// 且再次 String() 输出完全相同的字符串。
func (a Addr) String() string {
	switch a.version {
	case V4:
		return formatV4(uint32(a.value.lo))
	case V6:
		return formatV6(a.value)
	default:
		return ""
	}
}

// formatV4 输出点分十进制。
func formatV4(v uint32) string {
	var b strings.Builder
	b.Grow(15)
	for shift := 24; shift >= 0; shift -= 8 {
		if shift < 24 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(uint64(v>>shift&0xff), 10))
	}
	return b.String()
}

// formatV6 输出 IPv6 规范文本，作用于解码出的 8 个 16 位组：
//
//  1. 组 0–4 全零且组 5 为 0xffff（IPv4-mapped）：输出 "::ffff:" 加低
//     32 位的点分十进制形式。
//  2. 组 0–5 全零（IPv4-compatible）且低 32 位既不是 0 也不是 1：
//     输出 "::" 加点分十进制形式（0 与 1 仍保持 "::" 和 "::1"）。
//  3. 其他：每组小写十六进制，将最长的 >= 2 个连续零组串替换为 "::"
//     （并列时取最左），单个零组从不压缩。
func formatV6(v Uint128) string {
	var g [8]uint16
	for i := 0; i < 4; i++ {
		g[i] = uint16(v.hi >> (48 - 16*i))
	}
	for i := 0; i < 4; i++ {
		g[4+i] = uint16(v.lo >> (48 - 16*i))
	}

	lo32 := uint32(v.lo)
	headZero := g[0] == 0 && g[1] == 0 && g[2] == 0 && g[3] == 0 && g[4] == 0
	if headZero && g[5] == 0xffff {
		return "::ffff:" + formatV4(lo32)
	}
	if headZero && g[5] == 0 && lo32 > 1 {
		return "::" + formatV4(lo32)
	}

	runStart, runLen := longestZeroRun(g)
	var b strings.Builder
	b.Grow(39)
	if runLen >= 2 {
		for i := 0; i < runStart; i++ {
			if i > 0 {
				b.WriteByte(':')
			}
			b.WriteString(strconv.FormatUint(uint64(g[i]), 16))
		}
		b.WriteString("::")
		for i := runStart + runLen; i < 8; i++ {
			if i > runStart+runLen {
				b.WriteByte(':')
			}
			b.WriteString(strconv.FormatUint(uint64(g[i]), 16))
		}
		return b.String()
	}
	for i := 0; i < 8; i++ {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(strconv.FormatUint(uint64(g[i]), 16))
	}
	return b.String()
}

// longestZeroRun 返回最长连续零组串的起点和长度，并列时取最左。
// 没有零组时长度为 0。
func longestZeroRun(g [8]uint16) (start, length int) {
	bestStart, bestLen := 0, 0
	i := 0
	for i < 8 {
		if g[i] != 0 {
			i++
			continue
		}
		j := i
		for j < 8 && g[j] == 0 {
			j++
		}
		if j-i > bestLen {
			bestStart, bestLen = i, j-i
		}
		i = j
	}
	return bestStart, bestLen
}
