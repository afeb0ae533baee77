package server

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

var remoteAddrHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, r.RemoteAddr)
})

func startServer(t *testing.T, opts ServerOpts) (*Server, string, chan error) {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := NewServer(opts)
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.ServeHTTP(l)
	}()
	return s, l.Addr().String(), errChan
}

func Test_Server_ServeHTTP(t *testing.T) {
	s, addr, errChan := startServer(t, ServerOpts{Handler: remoteAddrHandler, MaxConns: 4})

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	host, _, err := net.SplitHostPort(string(b))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", host)

	s.Close()
	require.ErrorIs(t, <-errChan, ErrServerClosed)
	require.True(t, s.Closed())
	s.Close()
}

func Test_Server_proxyProtocol(t *testing.T) {
	s, addr, errChan := startServer(t, ServerOpts{Handler: remoteAddrHandler, ProxyProtocol: true})
	defer func() {
		s.Close()
		<-errChan
	}()

	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()
	_, err = fmt.Fprintf(c, "PROXY TCP4 192.0.2.1 127.0.0.1 40000 80\r\nGET / HTTP/1.1\r\nHost: x\r\nConnection: close\r\n\r\n")
	require.NoError(t, err)

	resp, err := http.ReadResponse(bufio.NewReader(c), nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "192.0.2.1:40000", string(b))
}

func Test_Server_errors(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.ErrorIs(t, NewServer(ServerOpts{}).ServeHTTP(l), errMissingHandler)

	l, err = net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := NewServer(ServerOpts{Handler: remoteAddrHandler})
	s.Close()
	require.ErrorIs(t, s.ServeHTTP(l), ErrServerClosed)
}
