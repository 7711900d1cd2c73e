package proc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunydepalpur/reaper/pkg/model"
)

const sampleLsof = `COMMAND     PID   USER   FD   TYPE             DEVICE SIZE/OFF NODE NAME
rapportd    512 alice    9u  IPv4 0x1a2b3c4d5e6f7a81      0t0  TCP *:49152 (LISTEN)
rapportd    512 alice   10u  IPv6 0x1a2b3c4d5e6f7a82      0t0  TCP *:49152 (LISTEN)
postgres    811 alice    7u  IPv6 0x1a2b3c4d5e6f7a83      0t0  TCP [::1]:5432 (LISTEN)
nginx       100 root     6u  IPv4 0x1a2b3c4d5e6f7a84      0t0  TCP 127.0.0.1:80 (LISTEN)
mDNSRespo   301 _mdns    8u  IPv4 0x1a2b3c4d5e6f7a85      0t0  UDP *:5353
`

func TestParseLsof(t *testing.T) {
	res := ParseLsof(sampleLsof)

	assert.Equal(t, 0, res.Skipped)
	require.Len(t, res.Listeners, 5)

	assert.Equal(t, model.Listener{
		PID:      512,
		Process:  "rapportd",
		User:     "alice",
		Protocol: model.ProtocolTCP,
		Address:  "*",
		Port:     49152,
		State:    model.StateListen,
	}, res.Listeners[0])

	assert.Equal(t, "::1", res.Listeners[2].Address)
	assert.Equal(t, 5432, res.Listeners[2].Port)

	udp := res.Listeners[4]
	assert.Equal(t, model.ProtocolUDP, udp.Protocol)
	assert.Equal(t, model.StateNone, udp.State)
	assert.Equal(t, 5353, udp.Port)
}

func TestParseLsofSkipsMalformedLines(t *testing.T) {
	out := `COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME
nginx 100 root 6u IPv4 0x1 0t0 TCP *:80 (LISTEN)
garbage line
nginx abc root 6u IPv4 0x1 0t0 TCP *:81 (LISTEN)
nginx 101 root 6u IPv4 0x1 0t0 TCP *:http (LISTEN)
nginx 102 root 6u IPv4 0x1 0t0 TCP *:70000 (LISTEN)
sshd 200 root 3u IPv4 0x2 0t0 TCP *:22 (LISTEN)
`
	res := ParseLsof(out)

	assert.Equal(t, 4, res.Skipped)
	require.Len(t, res.Listeners, 2)
	assert.Equal(t, 100, res.Listeners[0].PID)
	assert.Equal(t, 200, res.Listeners[1].PID)
}

func TestParseLsofEmpty(t *testing.T) {
	assert.Empty(t, ParseLsof("").Listeners)
	assert.Empty(t, ParseLsof("COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME\n").Listeners)
}

func TestParseName(t *testing.T) {
	tests := []struct {
		in    string
		addr  string
		port  int
		state model.SocketState
		ok    bool
	}{
		{"*:8080 (LISTEN)", "*", 8080, model.StateListen, true},
		{"127.0.0.1:631 (LISTEN)", "127.0.0.1", 631, model.StateListen, true},
		{"[::1]:5432 (LISTEN)", "::1", 5432, model.StateListen, true},
		{"[fe80::1%lo0]:7000 (LISTEN)", "fe80::1%lo0", 7000, model.StateListen, true},
		{"*:5353", "*", 5353, model.StateNone, true},
		{"10.0.0.2:5353->10.0.0.9:5353", "10.0.0.2", 5353, model.StateNone, true},
		{"10.0.0.2:52000->1.1.1.1:443 (ESTABLISHED)", "10.0.0.2", 52000, "ESTABLISHED", true},
		{"*:*", "", 0, model.StateNone, false},
		{"[::1]", "", 0, model.StateNone, false},
		{":80", "", 0, model.StateNone, false},
		{"localhost", "", 0, model.StateNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			addr, port, state, ok := parseName(tt.in)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.addr, addr)
			assert.Equal(t, tt.port, port)
			assert.Equal(t, tt.state, state)
		})
	}
}
