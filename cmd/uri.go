package cmd

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

const defaultPort = "5683"

// target is the parsed form of a coap:// URL.
type target struct {
	hostport string
	path     string
	queries  []string
}

func parseTarget(raw string) (*target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("cannot parse url %q: %w", raw, err)
	}
	if u.Scheme != "coap" {
		return nil, fmt.Errorf("unsupported scheme %q, only coap is supported", u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("url %q has no host", raw)
	}
	port := u.Port()
	if port == "" {
		port = defaultPort
	}
	var queries []string
	if u.RawQuery != "" {
		queries = strings.Split(u.RawQuery, "&")
	}
	return &target{
		hostport: net.JoinHostPort(host, port),
		path:     u.Path,
		queries:  queries,
	}, nil
}
