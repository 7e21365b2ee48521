package parser

import (
	"reflect"
	"testing"

	"git.lost.host/meutraa/minefix/internal/sim"
	"git.lost.host/meutraa/minefix/internal/testdata"
)

func TestParse(t *testing.T) {
	psr := &DefaultParser{}
	s, err := psr.Parse([]byte(testdata.Document))
	if nil != err {
		t.Fatal(err)
	}
	if s.Format != sim.FormatSSC {
		t.Log("format", s.Format)
		t.Fail()
	}
	if title, _ := s.Get("TITLE"); title != "Test Song" {
		t.Log("title", title)
		t.Fail()
	}
	if len(s.Charts) != 2 {
		t.Fatal("charts", len(s.Charts))
	}
	if s.Charts[0].Difficulty() != "Easy" || s.Charts[1].Difficulty() != "Hard" {
		t.Log("difficulties", s.Charts[0].Difficulty(), s.Charts[1].Difficulty())
		t.Fail()
	}
	if s.Charts[0].HasTiming() || !s.Charts[1].HasTiming() {
		t.Log("timing", s.Charts[0].HasTiming(), s.Charts[1].HasTiming())
		t.Fail()
	}
	bpms, err := sim.ParseBeatValues(mustGet(t, s, "BPMS"))
	if nil != err {
		t.Fatal(err)
	}
	if len(bpms) != 2 || bpms[1].Beat != sim.WholeBeat(4) || bpms[1].Value != "60.000" {
		t.Log("bpms", bpms)
		t.Fail()
	}
}

func mustGet(t *testing.T, holder sim.PropertyHolder, key string) string {
	t.Helper()
	v, ok := holder.Get(key)
	if !ok {
		t.Fatal("missing property", key)
	}
	return v
}

// Serializing and reparsing must reproduce the same object graph, or
// fields the transforms never touched would not round-trip.
func TestRoundTrip(t *testing.T) {
	psr := &DefaultParser{}
	first, err := psr.Parse([]byte(testdata.Document))
	if nil != err {
		t.Fatal(err)
	}
	second, err := psr.Parse(psr.Serialize(first))
	if nil != err {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Properties, second.Properties) {
		t.Log("first ", first.Properties)
		t.Log("second", second.Properties)
		t.Fail()
	}
	if len(first.Charts) != len(second.Charts) {
		t.Fatal("chart counts differ")
	}
	for i := range first.Charts {
		if !reflect.DeepEqual(first.Charts[i].Properties, second.Charts[i].Properties) {
			t.Log("chart", i)
			t.Log("first ", first.Charts[i].Properties)
			t.Log("second", second.Charts[i].Properties)
			t.Fail()
		}
	}
}

const smDocument = `#TITLE:Old File;
#BPMS:0.000=140.000;
#NOTES:
     dance-single:
     author:
     Medium:
     5:
     0,0,0,0,0:
0000
0000
0000
0000
;
`

func TestParseSMFormat(t *testing.T) {
	psr := &DefaultParser{}
	s, err := psr.Parse([]byte(smDocument))
	if nil != err {
		t.Fatal(err)
	}
	if s.Format != sim.FormatSM {
		t.Log("format", s.Format)
		t.Fail()
	}
	if len(s.Charts) != 1 {
		t.Fatal("charts", len(s.Charts))
	}
	chart := s.Charts[0]
	if chart.Stepstype() != "dance-single" || chart.Difficulty() != "Medium" {
		t.Log("chart", chart.Properties)
		t.Fail()
	}
}

func TestParseEmpty(t *testing.T) {
	psr := &DefaultParser{}
	if _, err := psr.Parse([]byte("not a simfile")); nil == err {
		t.Log("expected error for non-simfile input")
		t.Fail()
	}
}
