package app

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/sunydepalpur/reaper/internal/proc"
	"github.com/sunydepalpur/reaper/pkg/model"
)

var keyPool = []Key{
	{Code: KeyUp}, {Code: KeyDown}, {Code: KeyPgUp}, {Code: KeyPgDown},
	{Code: KeyHome}, {Code: KeyEnd}, {Code: KeyEnter}, {Code: KeyEsc}, {Code: KeyBackspace},
	Rune('j'), Rune('k'), Rune('/'), Rune('s'), Rune('r'), Rune('y'), Rune('n'),
	Rune('1'), Rune('3'), Rune('6'), Rune('n'), Rune('g'), Rune('x'), Rune('2'),
}

func genScan(t *rapid.T, label string) proc.ScanResult {
	n := rapid.IntRange(0, 6).Draw(t, label+"_n")
	ls := make([]model.Listener, n)
	for i := range ls {
		ls[i] = model.Listener{
			PID:     rapid.IntRange(1, 5).Draw(t, label+"_pid"),
			Process: rapid.SampledFrom([]string{"nginx", "sshd", "node"}).Draw(t, label+"_name"),
			Address: "*",
			Port:    rapid.IntRange(1, 9).Draw(t, label+"_port"),
		}
	}
	return proc.ScanResult{Listeners: ls}
}

func TestPropertyControllerInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := &fakeSource{}
		for i := 0; i < 4; i++ {
			src.scans = append(src.scans, genScan(t, "scan"))
		}
		term := &fakeTerminator{err: rapid.SampledFrom([]error{nil, proc.ErrProcessGone}).Draw(t, "termErr")}
		c := NewController(src, term)
		s := NewState()
		if err := c.Refresh(s); err != nil {
			t.Fatal(err)
		}

		keys := rapid.SliceOfN(rapid.SampledFrom(keyPool), 1, 60).Draw(t, "keys")
		for i, k := range keys {
			prevMode := s.Mode
			prevTarget := s.PendingKill
			calls := len(term.pids)

			if c.Handle(s, k).Quit {
				return
			}

			if len(term.pids) > calls {
				if prevMode != ModeConfirmingKill {
					t.Fatalf("key %d (%+v): termination requested from mode %s", i, k, prevMode)
				}
				if term.pids[len(term.pids)-1] != prevTarget {
					t.Fatalf("key %d: terminated %d, pending was %d", i, term.pids[len(term.pids)-1], prevTarget)
				}
			}

			if len(s.View) == 0 {
				if s.Selected != -1 {
					t.Fatalf("key %d: empty view but Selected=%d", i, s.Selected)
				}
			} else if s.Selected < 0 || s.Selected >= len(s.View) {
				t.Fatalf("key %d: Selected=%d outside view of %d", i, s.Selected, len(s.View))
			}

			if (s.Mode == ModeConfirmingKill) != (s.PendingKill != 0) {
				t.Fatalf("key %d: mode %s with pending kill %d", i, s.Mode, s.PendingKill)
			}
		}
	})
}
