package sim

import "testing"

var beatParseTests = map[string]Beat{
	"0":     0,
	"4":     768,
	"4.000": 768,
	"0.005": 1,
	"0.5":   96,
	"1.5":   288,
	"-1":    -192,
}

func TestBeatFromString(t *testing.T) {
	for in, expected := range beatParseTests {
		out, err := BeatFromString(in)
		if nil != err {
			t.Log("error for", in, err)
			t.Fail()
			continue
		}
		if out != expected {
			t.Log("in      ", in)
			t.Log("out     ", int64(out))
			t.Log("expected", int64(expected))
			t.Fail()
		}
	}
}

func TestBeatFromStringInvalid(t *testing.T) {
	for _, in := range []string{"", "x", "1.2.3"} {
		if _, err := BeatFromString(in); nil == err {
			t.Log("expected error for", in)
			t.Fail()
		}
	}
}

var beatStringTests = map[Beat]string{
	0:       "0",
	1:       "0.005",
	96:      "0.5",
	768:     "4",
	768 + 1: "4.005",
	-192:    "-1",
}

func TestBeatString(t *testing.T) {
	for in, expected := range beatStringTests {
		if out := in.String(); out != expected {
			t.Log("in      ", int64(in))
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

// Every tick within a few beats must survive a format/parse cycle
// exactly, or stored fake regions would drift between runs.
func TestBeatStringRoundTrip(t *testing.T) {
	for tick := Beat(0); tick < 4*TicksPerBeat; tick++ {
		out, err := BeatFromString(tick.String())
		if nil != err {
			t.Fatal(err)
		}
		if out != tick {
			t.Log("tick    ", int64(tick), tick.String())
			t.Log("reparsed", int64(out))
			t.Fail()
		}
	}
}
