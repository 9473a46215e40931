package directory

import "testing"

func TestMemberRoundTrip(t *testing.T) {
	m := member("proc-1", "sess-abc")
	processID, sessionID, ok := splitMember(m)
	if !ok {
		t.Fatalf("expected member %q to split", m)
	}
	if processID != "proc-1" || sessionID != "sess-abc" {
		t.Fatalf("unexpected split: %q %q", processID, sessionID)
	}
}

func TestSplitMemberRejectsMalformed(t *testing.T) {
	for _, m := range []string{"", "noslash", "/leading", "trailing/"} {
		if _, _, ok := splitMember(m); ok {
			t.Fatalf("expected %q to be rejected", m)
		}
	}
}

func TestKeyLayout(t *testing.T) {
	if got := userKey("u1"); got != "chat:dir:user:u1" {
		t.Fatalf("unexpected user key %q", got)
	}
	if got := processKey("p1"); got != "chat:dir:process:p1" {
		t.Fatalf("unexpected process key %q", got)
	}
}
