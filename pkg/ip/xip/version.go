package xip

// Version 表示 IP 协议版本。
type Version uint8

const (
	// V0 表示无效或未知的 IP 版本。
	V0 Version = 0
	// V4 表示 IPv4。
	V4 Version = 4
	// V6 表示 IPv6。
	V6 Version = 6
)

// 地址位宽常量。
const (
	// BitsV4 是 IPv4 地址的位宽。
	BitsV4 = 32
	// BitsV6 是 IPv6 地址的位宽。
	BitsV6 = 128
)

// String 返回版本的字符串表示。
func (v Version) String() string {
	switch v {
	case V4:
		return "IPv4"
	case V6:
		return "IPv6"
	default:
		return "unknown"
	}
}

// IsValid 报告 v 是否为 V4 或 V6。
func (v Version) IsValid() bool {
	return v == V4 || v == V6
}

// Bits 返回该版本的地址位宽（V4 为 32，V6 为 128）。
// 无效版本返回 0。
func (v Version) Bits() int {
	switch v {
	case V4:
		return BitsV4
	case V6:
		return BitsV6
	default:
		return 0
	}
}
