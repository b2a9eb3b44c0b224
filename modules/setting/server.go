// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"net"
	"strings"
	"time"
)

var (
	// HTTPAddr is the address the web command listens on
	HTTPAddr string
	// HTTPPort is the port the web command listens on
	HTTPPort string
	// MediaURLPrefix is prepended to media paths in generated <img> tags. It always ends with '/'
	MediaURLPrefix string
	// MaxRequestBodySize limits the size of chart definitions and documents accepted over HTTP
	MaxRequestBodySize int64
	// RenderTimeout bounds a single render request
	RenderTimeout time.Duration

	// ReverseProxyLimit is the number of X-Forwarded-For hops trusted, 0 disables the header handling
	ReverseProxyLimit int
	// ReverseProxyTrustedProxies lists the addresses or CIDR networks allowed to set forwarded headers
	ReverseProxyTrustedProxies []string
)

func loadServerFrom(rootCfg ConfigProvider) {
	sec := rootCfg.Section("server")
	HTTPAddr = sec.Key("HTTP_ADDR").MustString("0.0.0.0")
	HTTPPort = sec.Key("HTTP_PORT").MustString("3000")
	MediaURLPrefix = sec.Key("MEDIA_URL_PREFIX").MustString("/media/")
	if !strings.HasSuffix(MediaURLPrefix, "/") {
		MediaURLPrefix += "/"
	}
	MaxRequestBodySize = sec.Key("MAX_REQUEST_BODY_SIZE").MustInt64(1 << 20)
	RenderTimeout = time.Duration(sec.Key("RENDER_TIMEOUT_SECONDS").MustInt(30)) * time.Second

	ReverseProxyLimit = sec.Key("REVERSE_PROXY_LIMIT").MustInt(1)
	ReverseProxyTrustedProxies = sec.Key("REVERSE_PROXY_TRUSTED_PROXIES").Strings(",")
	if len(ReverseProxyTrustedProxies) == 0 {
		ReverseProxyTrustedProxies = []string{"127.0.0.0/8", "::1/128"}
	}
}

// ListenAddr is HTTPAddr and HTTPPort joined for net.Listen
func ListenAddr() string {
	return net.JoinHostPort(HTTPAddr, HTTPPort)
}
