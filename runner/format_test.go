package runner

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTerseFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	f := NewTerseFormatter(&buf, Palette{})

	_ = f.Format(Event{Action: ActionRun}, nil)

	if buf.Len() != 0 {
		t.Error("Non-terminal should produce no output")
	}

	_ = f.Format(Event{Action: ActionPass}, nil)
	_ = f.Format(Event{Action: ActionFail}, nil)
	_ = f.Format(Event{Action: ActionIgnore}, nil)

	if got := buf.String(); got != ".Fi" {
		t.Errorf("got %q, want %q", got, ".Fi")
	}
}

func TestTerseFormatter_Summary(t *testing.T) {
	var buf bytes.Buffer

	f := NewTerseFormatter(&buf, Palette{})

	result := NewResult()
	result.Add(Event{Action: ActionPass, Name: "Test1"})
	result.Add(Event{Action: ActionFail, Name: "Test2", Error: errors.New("boom")})
	result.SetFilteredOut(3)
	result.Finish()

	_ = f.Summary(result)

	got := buf.String()

	if !strings.Contains(got, "---- Test2 ----\nboom\n") {
		t.Errorf("missing failure details in:\n%s", got)
	}

	if !strings.Contains(got, "test result: FAILED. 1 passed; 1 failed; 0 ignored; 0 measured; 3 filtered out") {
		t.Errorf("missing summary counts in:\n%s", got)
	}
}

func TestPrettyFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	f := NewPrettyFormatter(&buf, Palette{})

	_ = f.Plan(1)

	if got, want := buf.String(), "\nrunning 1 test\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()

	_ = f.Format(Event{Action: ActionRun, Name: "foo::bar"}, nil)
	_ = f.Format(Event{Action: ActionPass, Name: "foo::bar", Elapsed: 10 * time.Millisecond}, nil)

	if got, want := buf.String(), "test foo::bar ... ok\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()

	_ = f.Format(Event{Action: ActionIgnore, Name: "why", Message: "why not?"}, nil)

	if got, want := buf.String(), "test why ... ignored, why not?\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()

	_ = f.Format(Event{Action: ActionFail, Name: "x", Error: errTestFail}, nil)

	if got, want := buf.String(), "test x ... FAILED\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrettyFormatter_SummaryOk(t *testing.T) {
	var buf bytes.Buffer

	f := NewPrettyFormatter(&buf, Palette{})

	result := NewResult()
	result.Add(Event{Action: ActionPass, Name: "a"})
	result.Add(Event{Action: ActionIgnore, Name: "b"})
	result.Finish()

	_ = f.Summary(result)

	got := buf.String()

	if strings.Contains(got, "failures:") {
		t.Errorf("unexpected failures section in:\n%s", got)
	}

	if !strings.Contains(got, "test result: ok. 1 passed; 0 failed; 1 ignored; 0 measured; 0 filtered out") {
		t.Errorf("missing summary line in:\n%s", got)
	}
}

func TestPalette_Always(t *testing.T) {
	var buf bytes.Buffer

	p, err := NewPalette(&buf, ColorAlways)
	if err != nil {
		t.Fatal(err)
	}

	if got := p.paint(p.ok, "ok"); !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escape in %q", got)
	}

	p, err = NewPalette(&buf, ColorAuto)
	if err != nil {
		t.Fatal(err)
	}

	if got := p.paint(p.ok, "ok"); got != "ok" {
		t.Errorf("non-terminal writer should not be coloured, got %q", got)
	}

	if _, err := NewPalette(&buf, "sometimes"); !errors.Is(err, ErrUnknownColor) {
		t.Errorf("err = %v, want ErrUnknownColor", err)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	f := NewJSONFormatter(&buf)

	_ = f.Format(Event{
		Time:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Action:  ActionFail,
		Name:    "foo::bar",
		Elapsed: 50 * time.Millisecond,
		Error:   errTestFail,
	}, nil)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if got["type"] != "test" {
		t.Errorf("type = %v, want test", got["type"])
	}

	if got["event"] != "failed" {
		t.Errorf("event = %v, want failed", got["event"])
	}

	if got["name"] != "foo::bar" {
		t.Errorf("name = %v, want foo::bar", got["name"])
	}

	if got["stdout"] != "test: fail\n" {
		t.Errorf("stdout = %q, want %q", got["stdout"], "test: fail\n")
	}
}

func TestJSONFormatter_Summary(t *testing.T) {
	var buf bytes.Buffer

	f := NewJSONFormatter(&buf)

	result := NewResult()
	result.Add(Event{Action: ActionPass, Name: "Test1"})
	result.Add(Event{Action: ActionFail, Name: "Test2"})
	result.SetFilteredOut(1)
	result.Finish()

	_ = f.Summary(result)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if got["type"] != "suite" || got["event"] != "failed" {
		t.Errorf("got type=%v event=%v, want suite/failed", got["type"], got["event"])
	}

	for key, want := range map[string]float64{"passed": 1, "failed": 1, "ignored": 0, "filtered_out": 1} {
		if v, ok := got[key].(float64); !ok || v != want {
			t.Errorf("%s = %v, want %v", key, got[key], want)
		}
	}
}

func TestNewFormatter_Unknown(t *testing.T) {
	_, err := NewFormatter("xml", &bytes.Buffer{}, Palette{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}
