package xip

import (
	"fmt"
	"strings"
)

// ParseAddr 从字符串解析 IP 地址。
//
// 支持的格式：
//   - 点分十进制 IPv4："192.168.1.1"（每段 0–255，除 "0" 外不允许前导零）
//   - 冒号十六进制 IPv6："2001:db8::1"（至多一个 "::"，每组 1–4 位十六进制）
//   - 混合写法 IPv6："::ffff:192.0.2.1"（末段为点分十进制 IPv4 尾巴）
//
// 输入会自动去除首尾空白字符。所有解析失败返回 [ErrParse] 并说明违反的约束。
//
// 设计决策: 拒绝包含 IPv6 zone ID 的输入（如 fe80::1%eth0）。
// 本库的范围/集合运算无法保留 zone 信息，静默丢弃会导致后续匹配误判。
// 在 IP 地址字符串中 '%' 仅用作 zone 分隔符，因此检查 '%' 即可。
func ParseAddr(s string) (Addr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Addr{}, errParse("empty address")
	}
	if strings.Contains(s, "%") {
		return Addr{}, errParse("IPv6 zone ID is not supported: %q", s)
	}
	if strings.Contains(s, ":") {
		return parseIPv6(s)
	}
	if strings.Contains(s, ".") {
		v, err := parseIPv4(s)
		if err != nil {
			return Addr{}, err
		}
		return AddrFromUint32(v), nil
	}
	return Addr{}, errParse("unrecognized address %q", s)
}

// MustParseAddr 类似 [ParseAddr]，但解析失败时 panic。
// 仅用于包级变量初始化或测试。
func MustParseAddr(s string) Addr {
	addr, err := ParseAddr(s)
	if err != nil {
		panic(fmt.Sprintf("xip.MustParseAddr(%q): %v", s, err))
	}
	return addr
}

// parseIPv4 解析严格的点分十进制 IPv4，返回 uint32 数值。
//
// 严格模式：恰好 4 段，每段仅含十进制数字（拒绝正负号、空白），
// 除字面 "0" 外不允许前导零，数值 0–255。
func parseIPv4(s string) (uint32, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return 0, errParse("IPv4 address %q must have 4 octets, got %d", s, len(parts))
	}
	var v uint32
	for _, p := range parts {
		n, err := parseOctet(p)
		if err != nil {
			return 0, err
		}
		v = v<<8 | uint32(n)
	}
	return v, nil
}

// parseOctet 解析单个十进制八位段。
func parseOctet(p string) (int, error) {
	if p == "" {
		return 0, errParse("empty octet")
	}
	if len(p) > 3 {
		return 0, errParse("octet %q too long", p)
	}
	if len(p) > 1 && p[0] == '0' {
		return 0, errParse("octet %q has a leading zero", p)
	}
	n := 0
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c < '0' || c > '9' {
			return 0, errParse("octet %q contains non-digit character %q", p, c)
		}
		n = n*10 + int(c-'0')
	}
	if n > 255 {
		return 0, errParse("octet %q out of range (must be 0-255)", p)
	}
	return n, nil
}

// parseIPv6 按冒号十六进制文法解析 IPv6 地址。
//
// 文法规则（按顺序检查）：
//  1. 连续 3 个及以上冒号直接拒绝。
//  2. 至多一个 "::" 压缩，出现第二个即拒绝。
//  3. 末段含 '.' 时按混合写法处理：尾巴必须是严格的 4 段点分十进制，
//     头部经至多一次 "::" 展开后恰好 6 组；IPv4 尾巴折算为 2 组。
//  4. 否则整体展开为恰好 8 组，每组 1–4 位十六进制。
//  5. 8 组按高位在前拼成 128 位数值。
func parseIPv6(s string) (Addr, error) {
	if strings.Contains(s, ":::") {
		return Addr{}, errParse("address %q has 3 or more consecutive colons", s)
	}
	// 已排除 ":::"，各 "::" 互不重叠，Count 统计可靠。
	if strings.Count(s, "::") > 1 {
		return Addr{}, errParse("address %q has more than one \"::\"", s)
	}

	var groups []uint16
	lastColon := strings.LastIndexByte(s, ':')
	if tail := s[lastColon+1:]; strings.Contains(tail, ".") {
		// 混合写法：尾巴是 IPv4，头部展开为 6 组。
		v4, err := parseIPv4(tail)
		if err != nil {
			return Addr{}, err
		}
		head := s[:lastColon]
		// "::" 恰好紧贴尾巴时（如 "::1.2.3.4"），截断丢掉了压缩的
		// 第二个冒号，这里补回。
		if strings.HasSuffix(head, ":") {
			head += ":"
		}
		hg, err := expandGroups(head, 6)
		if err != nil {
			return Addr{}, err
		}
		groups = append(hg, uint16(v4>>16), uint16(v4))
	} else {
		var err error
		groups, err = expandGroups(s, 8)
		if err != nil {
			return Addr{}, err
		}
	}

	var hi, lo uint64
	for i := 0; i < 4; i++ {
		hi = hi<<16 | uint64(groups[i])
	}
	for i := 4; i < 8; i++ {
		lo = lo<<16 | uint64(groups[i])
	}
	return Addr{value: Uint128{hi: hi, lo: lo}, version: V6}, nil
}

// expandGroups 将冒号分隔的十六进制组列表展开为恰好 n 组。
// 至多一个 "::"（调用方已保证），压缩必须至少顶替一组零。
func expandGroups(s string, n int) ([]uint16, error) {
	if s == "::" {
		return make([]uint16, n), nil
	}
	if i := strings.Index(s, "::"); i >= 0 {
		var leftParts, rightParts []string
		if left := s[:i]; left != "" {
			leftParts = strings.Split(left, ":")
		}
		if right := s[i+2:]; right != "" {
			rightParts = strings.Split(right, ":")
		}
		if len(leftParts)+len(rightParts) >= n {
			return nil, errParse("%q: \"::\" must stand for at least one zero group", s)
		}
		groups := make([]uint16, 0, n)
		for _, p := range leftParts {
			g, err := parseHexGroup(p)
			if err != nil {
				return nil, err
			}
			groups = append(groups, g)
		}
		for j := len(leftParts) + len(rightParts); j < n; j++ {
			groups = append(groups, 0)
		}
		for _, p := range rightParts {
			g, err := parseHexGroup(p)
			if err != nil {
				return nil, err
			}
			groups = append(groups, g)
		}
		return groups, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != n {
		return nil, errParse("%q has %d groups, want %d", s, len(parts), n)
	}
	groups := make([]uint16, n)
	for i, p := range parts {
		g, err := parseHexGroup(p)
		if err != nil {
			return nil, err
		}
		groups[i] = g
	}
	return groups, nil
}

// parseHexGroup 解析单个 1–4 位十六进制组，大小写不敏感。
func parseHexGroup(p string) (uint16, error) {
	if p == "" {
		return 0, errParse("empty hex group")
	}
	if len(p) > 4 {
		return 0, errParse("hex group %q too long (max 4 digits)", p)
	}
	var v uint16
	for i := 0; i < len(p); i++ {
		c := p[i]
		var d uint16
		switch {
		case c >= '0' && c <= '9':
			d = uint16(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint16(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint16(c-'A') + 10
		default:
			return 0, errParse("hex group %q contains invalid character %q", p, c)
		}
		v = v<<4 | d
	}
	return v, nil
}
