package validator

import (
	"net"
	"strings"
)

// NormalizeIP 去掉 IPv6 zone (fe80::1%eth0 -> fe80::1) 并转为规范格式；非法地址返回 false
func NormalizeIP(ip string) (string, bool) {
	ip = strings.TrimSpace(ip)
	if idx := strings.IndexByte(ip, '%'); idx != -1 {
		ip = ip[:idx]
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", false
	}
	return parsed.String(), true
}

// ClientIPKey 限流等场景使用的客户端标识，无法解析时归入 fallback
func ClientIPKey(ip, fallback string) string {
	if normalized, ok := NormalizeIP(ip); ok {
		return normalized
	}
	return fallback
}
