package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/datekey"
)

func TestGetOn(t *testing.T) {
	now := time.Date(2023, time.June, 15, 10, 0, 0, 0, time.Local)
	tests := []struct {
		in      string
		want    datekey.Key
		wantErr bool
	}{
		{in: "", want: "2023-06-15"},
		{in: "today", want: "2023-06-15"},
		{in: "yesterday", want: "2023-06-14"},
		{in: "2024-03-05", want: "2024-03-05"},
		{in: "2024-3-5", want: "2024-03-05"},
		{in: "3/5", want: "2023-03-05"},
		{in: "12/31", want: "2023-12-31"},
		{in: "2/29", wantErr: true},
		{in: "2024-02-30", wantErr: true},
		{in: "someday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			o := OnOptions{OnString: tt.in}
			got, err := o.GetOn(now)
			if tt.wantErr {
				if !errors.Is(err, datekey.ErrInvalid) {
					t.Fatalf("expected ErrInvalid, got %v (%q)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetMonth(t *testing.T) {
	o := MonthOptions{Month: "2024-02"}
	y, m, ok, err := o.GetMonth()
	if err != nil || !ok || y != 2024 || m != 2 {
		t.Fatalf("got %d-%d ok=%v err=%v", y, m, ok, err)
	}
	o = MonthOptions{}
	if _, _, ok, err := o.GetMonth(); ok || err != nil {
		t.Fatalf("unset month: ok=%v err=%v", ok, err)
	}
	o = MonthOptions{Month: "March"}
	if _, _, _, err := o.GetMonth(); err == nil {
		t.Fatal("expected error")
	}
}

func TestWrapKeepsParagraphs(t *testing.T) {
	in := "one two three four\n\nfive six"
	got := Wrap(in, 9)
	want := "one two\nthree\nfour\n\nfive six"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !strings.Contains(Wrap80(in), "\n\n") {
		t.Fatal("paragraph break lost")
	}
}

func TestHandleError(t *testing.T) {
	cause := errors.New("boom")

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	plain := &OutputOptions{}
	if err := plain.HandleError(cmd, cause); err != cause || IsReported(err) {
		t.Fatalf("plain mode = %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("plain mode wrote %q", out.String())
	}

	js := &OutputOptions{JSON: true}
	err := js.HandleError(cmd, cause)
	if !IsReported(err) || !errors.Is(err, cause) {
		t.Fatalf("json mode = %v", err)
	}
	if !strings.Contains(out.String(), `"error": "boom"`) {
		t.Fatalf("json body = %q", out.String())
	}

	if err := js.HandleError(cmd, nil); err != nil {
		t.Fatalf("nil error = %v", err)
	}
}
