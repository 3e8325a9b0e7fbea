package intparse

import (
	"errors"
	"iter"
	"os"
	"testing"

	"pairmax/internal/adapters/lines"
	"pairmax/internal/core/normalize"
	perr "pairmax/internal/platform/errors"
	kit "pairmax/internal/platform/testkit"
)

type item struct {
	pos int
	out Outcome
}

func drain(seq iter.Seq2[int, Outcome]) []item {
	var out []item
	for p, o := range seq {
		out = append(out, item{p, o})
	}
	return out
}

func openTestdata(t *testing.T, name string) iter.Seq2[lines.Line, error] {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return lines.New(f).All()
}

func TestStrict_EmitsEveryLine(t *testing.T) {
	got := drain(New(Strict()).Parse(lines.FromStrings("1", "1.2")))
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(got), got)
	}
	if got[0].pos != 0 || !got[0].out.OK() || got[0].out.Value != 1 {
		t.Fatalf("first = %+v, want (0, 1)", got[0])
	}
	if got[1].pos != 1 || !perr.IsCode(got[1].out.Err, perr.ErrorCodeParse) {
		t.Fatalf("second = %+v, want parse failure at 1", got[1])
	}
	e, _ := perr.As(got[1].out.Err)
	if e.Field() != "1.2" || e.Op() != "intparse" {
		t.Fatalf("failure metadata field=%q op=%q", e.Field(), e.Op())
	}
}

func TestLenient_DropsFailures(t *testing.T) {
	got := drain(New(Lenient()).Parse(lines.FromStrings("1", "1.2")))
	if len(got) != 1 || got[0].out.Value != 1 || got[0].pos != 0 {
		t.Fatalf("got %+v, want single value 1", got)
	}
}

func TestLenient_KeepsOriginalPositions(t *testing.T) {
	got := drain(New(Lenient()).Parse(lines.FromStrings("1", "a", "", "3", "x")))
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].pos != 0 || got[1].pos != 3 || got[1].out.Value != 3 {
		t.Fatalf("positions = %+v", got)
	}
}

func TestEmptyLineIsParseFailure(t *testing.T) {
	got := drain(New(Strict()).Parse(lines.FromStrings("")))
	if len(got) != 1 || !perr.IsCode(got[0].out.Err, perr.ErrorCodeParse) {
		t.Fatalf("got %+v", got)
	}
}

func TestParseText(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"0", 0, true},
		{"+5", 5, true},
		{"-2147483648", -2147483648, true},
		{"2147483647", 2147483647, true},
		{"2147483648", 0, false},
		{" 1", 0, false},
		{"1 ", 0, false},
		{"u123", 0, false},
		{"32.22", 0, false},
		{"1_000", 0, false},
		{"0x10", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		v, err := ParseText(c.in)
		if (err == nil) != c.ok || v != c.want {
			t.Fatalf("ParseText(%q) = %d, %v; want %d ok=%v", c.in, v, err, c.want, c.ok)
		}
	}
}

func TestReadFailure_EndsStreamUnderBothPolicies(t *testing.T) {
	boom := errors.New("io broke")
	for _, p := range []Policy{Strict(), Lenient()} {
		t.Run(p.Name(), func(t *testing.T) {
			var got []item
			kit.MustNotPanic(t, func() {
				got = drain(New(p).Parse(lines.New(kit.FailingReader("5\nbad\n", boom)).All()))
			})
			last := got[len(got)-1]
			if !perr.IsCode(last.out.Err, perr.ErrorCodeSourceRead) || !errors.Is(last.out.Err, boom) {
				t.Fatalf("last = %+v, want source read failure", last)
			}
			if last.pos != 2 {
				t.Fatalf("failure pos = %d, want 2", last.pos)
			}
			if !IsFatal(last.out.Err) {
				t.Fatalf("read failure should be fatal")
			}
		})
	}
}

func TestForeignReadErrorIsWrapped(t *testing.T) {
	src := func(yield func(lines.Line, error) bool) {
		yield(lines.Line{Pos: 0}, errors.New("raw"))
	}
	got := drain(New(Strict()).Parse(src))
	if len(got) != 1 || !perr.IsCode(got[0].out.Err, perr.ErrorCodeSourceRead) {
		t.Fatalf("got %+v", got)
	}
}

func TestMaxSkipRun(t *testing.T) {
	in := []string{"x", "y", "z", "4"}

	got := drain(New(Lenient(), WithMaxSkipRun(2)).Parse(lines.FromStrings(in...)))
	if len(got) != 1 || !perr.IsCode(got[0].out.Err, perr.ErrorCodeSkipLimit) || got[0].pos != 2 {
		t.Fatalf("max 2: got %+v", got)
	}

	got = drain(New(Lenient(), WithMaxSkipRun(3)).Parse(lines.FromStrings(in...)))
	if len(got) != 1 || got[0].out.Value != 4 || got[0].pos != 3 {
		t.Fatalf("max 3: got %+v", got)
	}

	// a success resets the run
	got = drain(New(Lenient(), WithMaxSkipRun(1)).Parse(lines.FromStrings("a", "1", "b", "2")))
	if len(got) != 2 {
		t.Fatalf("reset: got %+v", got)
	}

	// strict never drops so the bound never trips
	got = drain(New(Strict(), WithMaxSkipRun(1)).Parse(lines.FromStrings("a", "b", "c")))
	if len(got) != 3 {
		t.Fatalf("strict: got %+v", got)
	}
}

func TestLenient_AllInvalidUnbounded(t *testing.T) {
	in := make([]string, 1000)
	for i := range in {
		in[i] = "nope"
	}
	if got := drain(New(Lenient()).Parse(lines.FromStrings(in...))); len(got) != 0 {
		t.Fatalf("got %d outcomes, want 0", len(got))
	}
}

func TestOnDrop_SeesDroppedPositions(t *testing.T) {
	var dropped []int
	a := New(Lenient(), WithOnDrop(func(l lines.Line, err error) {
		if !perr.IsCode(err, perr.ErrorCodeParse) {
			t.Fatalf("drop err code = %v", perr.CodeOf(err))
		}
		dropped = append(dropped, l.Pos)
	}))
	_ = drain(a.Parse(lines.FromStrings("1", "a", "2", "b", "c")))
	if len(dropped) != 3 || dropped[0] != 1 || dropped[1] != 3 || dropped[2] != 4 {
		t.Fatalf("dropped = %v", dropped)
	}
}

func TestWithNormalizer(t *testing.T) {
	in := lines.FromStrings("\uff11\uff12", "\ufeff7")
	if got := drain(New(Strict()).Parse(in)); got[0].out.OK() || got[1].out.OK() {
		t.Fatalf("without normalizer fullwidth should fail: %+v", got)
	}
	got := drain(New(Strict(), WithNormalizer(normalize.New())).Parse(in))
	if got[0].out.Value != 12 || got[1].out.Value != 7 {
		t.Fatalf("normalized = %+v", got)
	}
}

func TestEarlyBreak(t *testing.T) {
	n := 0
	for range New(Strict()).Parse(lines.FromStrings("1", "2", "3")) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("n = %d", n)
	}
}

func TestNilPolicyIsStrict(t *testing.T) {
	if New(nil).Policy().Name() != PolicyStrict {
		t.Fatalf("nil policy should default to strict")
	}
}

func TestByName(t *testing.T) {
	for name, want := range map[string]string{"strict": PolicyStrict, " Lenient ": PolicyLenient} {
		p, err := ByName(name)
		if err != nil || p.Name() != want {
			t.Fatalf("ByName(%q) = %v, %v", name, p, err)
		}
	}
	if _, err := ByName("sloppy"); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("unknown policy err = %v", err)
	}
}

// file-backed cases

func TestFile_Empty(t *testing.T) {
	if got := drain(New(Strict()).Parse(openTestdata(t, "empty_file"))); len(got) != 0 {
		t.Fatalf("empty file yielded %+v", got)
	}
}

func TestFile_OneLine(t *testing.T) {
	got := drain(New(Strict()).Parse(openTestdata(t, "one_line_file")))
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].pos != 0 || got[0].out.Value != 1234 {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].pos != 1 || got[1].out.OK() {
		t.Fatalf("second = %+v", got[1])
	}
}

func TestFile_OddLines(t *testing.T) {
	index := 0
	for pos, o := range New(Strict()).Parse(openTestdata(t, "odd_lines")) {
		if pos != index {
			t.Fatalf("pos = %d, want %d", pos, index)
		}
		if (index%2 == 0) != o.OK() {
			t.Fatalf("line %d ok=%v", index, o.OK())
		}
		index++
	}
	if index != 10 {
		t.Fatalf("lines = %d, want 10", index)
	}
}

func TestValues(t *testing.T) {
	var got []int64
	for v, err := range Values(New(Strict()).Parse(lines.FromStrings("1", "x", "3"))) {
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		got = append(got, v)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("Values = %v", got)
	}

	var fatal error
	n := 0
	for _, err := range Values(New(Lenient()).Parse(lines.New(kit.FailingReader("1\n2\n", errors.New("gone"))).All())) {
		if err != nil {
			fatal = err
			continue
		}
		n++
	}
	if n != 2 || !perr.IsCode(fatal, perr.ErrorCodeSourceRead) {
		t.Fatalf("n=%d fatal=%v", n, fatal)
	}
}

func TestFromValues(t *testing.T) {
	got := drain(FromValues(3, 1, 2))
	if len(got) != 3 || got[2].pos != 2 || got[2].out.Value != 2 {
		t.Fatalf("FromValues = %+v", got)
	}
}
