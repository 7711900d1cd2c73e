package proc

import (
	"strconv"
	"strings"

	"github.com/sunydepalpur/reaper/pkg/model"
)

// lsof prints: COMMAND PID USER FD TYPE DEVICE SIZE/OFF NODE NAME
const (
	colCommand = 0
	colPID     = 1
	colUser    = 2
	colNode    = 7
	colName    = 8
)

// ParseLsof parses the column output of `lsof -i -P -n`. The header row is
// ignored and malformed lines are counted in Skipped instead of failing the scan.
func ParseLsof(out string) ScanResult {
	var res ScanResult
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if isHeader(fields) {
			continue
		}
		l, ok := parseLsofLine(fields)
		if !ok {
			res.Skipped++
			continue
		}
		res.Listeners = append(res.Listeners, l)
	}
	return res
}

func isHeader(fields []string) bool {
	return len(fields) > colPID && fields[colCommand] == "COMMAND" && fields[colPID] == "PID"
}

func parseLsofLine(fields []string) (model.Listener, bool) {
	if len(fields) <= colName {
		return model.Listener{}, false
	}
	pid, err := strconv.Atoi(fields[colPID])
	if err != nil || pid <= 0 {
		return model.Listener{}, false
	}
	addr, port, state, ok := parseName(strings.Join(fields[colName:], " "))
	if !ok {
		return model.Listener{}, false
	}
	return model.Listener{
		PID:      pid,
		Process:  fields[colCommand],
		User:     fields[colUser],
		Protocol: model.ParseProtocol(fields[colNode]),
		Address:  addr,
		Port:     port,
		State:    state,
	}, true
}

// parseName splits lsof's NAME column, e.g. "*:8080 (LISTEN)",
// "[::1]:5432 (LISTEN)" or "10.0.0.2:5353->10.0.0.9:5353".
// Only the local side of a connected socket is kept.
func parseName(name string) (string, int, model.SocketState, bool) {
	state := model.StateNone
	if i := strings.LastIndex(name, " ("); i != -1 && strings.HasSuffix(name, ")") {
		state = model.SocketState(name[i+2 : len(name)-1])
		name = name[:i]
	}
	if i := strings.Index(name, "->"); i != -1 {
		name = name[:i]
	}
	addr, port, ok := splitAddrPort(strings.TrimSpace(name))
	return addr, port, state, ok
}

// splitAddrPort parses "*:8080", "127.0.0.1:8080" and "[::1]:8080".
// The wildcard address is kept as "*".
func splitAddrPort(s string) (string, int, bool) {
	var addr, portStr string
	if strings.HasPrefix(s, "[") {
		end := strings.LastIndex(s, "]")
		if end == -1 || end+1 >= len(s) || s[end+1] != ':' {
			return "", 0, false
		}
		addr = s[1:end]
		portStr = s[end+2:]
	} else {
		idx := strings.LastIndex(s, ":")
		if idx == -1 {
			return "", 0, false
		}
		addr = s[:idx]
		portStr = s[idx+1:]
	}
	if addr == "" {
		return "", 0, false
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return "", 0, false
	}
	return addr, port, true
}
