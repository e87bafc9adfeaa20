package api

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"massnet.org/hashlookup/errors"
	"massnet.org/hashlookup/logging"
)

var (
	rfc1918_10  = net.IPNet{IP: net.ParseIP("10.0.0.0"), Mask: net.CIDRMask(8, 32)}
	rfc1918_192 = net.IPNet{IP: net.ParseIP("192.168.0.0"), Mask: net.CIDRMask(16, 32)}
	rfc1918_172 = net.IPNet{IP: net.ParseIP("172.16.0.0"), Mask: net.CIDRMask(12, 32)}
	lanRules    = map[string]net.IPNet{"10": rfc1918_10, "192": rfc1918_192, "172": rfc1918_172}
)

// getIPAccessControlFunc allows loopback, the whitelisted addresses and the
// selected private LANs. A "*" whitelist entry allows every address.
func getIPAccessControlFunc(whitelist []string, lanPrefix []string) (func(addr string) bool, error) {
	allowedIPs := make([]net.IP, 0, len(whitelist))
	var allowAllIP bool
	for i, addr := range whitelist {
		if addr == "*" {
			allowAllIP = true
			continue
		}
		tcpIP := net.ParseIP(addr)
		if tcpIP == nil {
			return nil, errors.New(fmt.Sprintln("invalid whitelist", i, addr))
		}
		allowedIPs = append(allowedIPs, tcpIP)
	}

	allowedLANs := make([]net.IPNet, 0, len(lanRules))
	for i, lan := range lanPrefix {
		netRule, ok := lanRules[lan]
		if !ok {
			logging.CPrint(logging.ERROR, "invalid lan prefix", logging.LogFormat{"index": i, "prefix": lan})
			continue
		}
		allowedLANs = append(allowedLANs, netRule)
	}

	var fn = func(addr string) bool {
		if allowAllIP {
			return true
		}

		tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
		if err != nil {
			logging.CPrint(logging.WARN, "api fail to resolve http request.RemoteAddr", logging.LogFormat{"request_addr": addr, "err": err})
			return false
		}

		if tcpAddr.IP.IsLoopback() {
			return true
		}
		for _, ip := range allowedIPs {
			if ip.Equal(tcpAddr.IP) {
				return true
			}
		}
		for _, rule := range allowedLANs {
			if rule.Contains(tcpAddr.IP) {
				return true
			}
		}
		return false
	}

	return fn, nil
}

func accessControlHandler(h http.Handler, isAllowedAddress func(addr string) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !isAllowedAddress(req.RemoteAddr) {
			logging.CPrint(logging.WARN, "api received request from forbidden address", logging.LogFormat{"remote_addr": req.RemoteAddr, "url_path": req.URL.Path})
			writeError(w, http.StatusForbidden, http.StatusText(http.StatusForbidden))
			return
		}
		h.ServeHTTP(w, req)
	})
}

func concurrentRequestHandler(h http.Handler, limit int) http.Handler {
	httpCh := make(chan struct{}, limit)
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		select {
		case httpCh <- struct{}{}:
			defer func() { <-httpCh }()
			h.ServeHTTP(w, req)

		default:
			logging.CPrint(logging.WARN, "too many concurrent requests", logging.LogFormat{"address": req.RemoteAddr, "path": req.URL.Path})
			writeError(w, http.StatusServiceUnavailable, "Sorry, we received too many simultaneous requests. Please try again later.")
		}
	})
}

func maxBytesHandler(h http.Handler, limit int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		req.Body = http.MaxBytesReader(w, req.Body, limit)
		h.ServeHTTP(w, req)
	})
}

// corsHandler sets the cross-origin headers on every response and answers
// preflight requests itself.
func corsHandler(h http.Handler, allowedOrigins []string) http.Handler {
	allowAll := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[strings.ToLower(origin)] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		switch {
		case allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[strings.ToLower(origin)]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}

		if req.Method == http.MethodOptions && req.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			if headers := req.Header.Get("Access-Control-Request-Headers"); headers != "" {
				w.Header().Set("Access-Control-Allow-Headers", headers)
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, req)
	})
}
