package jobs

import (
	"strings"
	"testing"
)

func TestBuildMessageNeutralizesHeaderInjection(t *testing.T) {
	msg := buildMessage(
		"noreply@lawfirm.com",
		"ops@lawfirm.com",
		"New enquiry from X\r\nBcc: evil@example.com Y",
		"body",
	)

	headers, _, ok := strings.Cut(msg, "\r\n\r\n")
	if !ok {
		t.Fatalf("no header/body separator in %q", msg)
	}
	for _, line := range strings.Split(headers, "\r\n") {
		if strings.HasPrefix(line, "Bcc:") {
			t.Fatalf("injected header survived: %q", line)
		}
	}
	if !strings.Contains(headers, "Subject: New enquiry from X Bcc: evil@example.com Y") {
		t.Fatalf("subject not flattened onto one line: %q", headers)
	}
}

func TestBuildMessageLayout(t *testing.T) {
	msg := buildMessage("noreply@lawfirm.com", "ops@lawfirm.com", "Hello", "line one\nline two")

	want := "From: noreply@lawfirm.com\r\n" +
		"To: ops@lawfirm.com\r\n" +
		"Subject: Hello\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		"line one\nline two"
	if msg != want {
		t.Fatalf("unexpected message:\n%q\nwant:\n%q", msg, want)
	}
}
