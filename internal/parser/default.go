package parser

import (
	"strings"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/minefix/internal/sim"
)

type DefaultParser struct{}

// Parse reads an MSD document (#KEY:VALUE; pairs) into a simfile.
// A #NOTEDATA:; marker opens a new chart; properties after it belong
// to that chart. SM-format files, which carry their charts as a single
// multi-field #NOTES: property, are detected and tagged so callers can
// reject transforms that need SSC-only features.
//
// Escape sequences are not interpreted; values are kept as the exact
// text between the colon and the terminating semicolon.
func (p *DefaultParser) Parse(data []byte) (*sim.Simfile, error) {
	str := strings.ReplaceAll(string(data), "\r", "")

	s := &sim.Simfile{Format: sim.FormatSSC}
	var chart *sim.Chart

	for i := 0; i < len(str); {
		start := strings.IndexByte(str[i:], '#')
		if start < 0 {
			break
		}
		i += start + 1
		colon := strings.IndexByte(str[i:], ':')
		if colon < 0 {
			return nil, errors.Errorf("unterminated property key at offset %d", i)
		}
		key := strings.TrimSpace(str[i : i+colon])
		i += colon + 1
		end := strings.IndexByte(str[i:], ';')
		if end < 0 {
			return nil, errors.Errorf("unterminated value for property %q", key)
		}
		value := str[i : i+end]
		i += end + 1

		if key == "NOTEDATA" {
			chart = &sim.Chart{}
			s.Charts = append(s.Charts, chart)
			continue
		}
		if key == "NOTES" && nil == chart {
			// An SM file: the chart header fields are packed into the
			// NOTES value itself, separated by colons.
			s.Format = sim.FormatSM
			s.Charts = append(s.Charts, parseSMChart(value))
			continue
		}
		if nil != chart {
			chart.Set(key, stripComments(value))
		} else {
			s.Set(key, value)
		}
	}

	if len(s.Properties) == 0 && len(s.Charts) == 0 {
		return nil, errors.New("no properties found; not a simfile")
	}
	return s, nil
}

// parseSMChart maps the colon-separated SM chart fields onto the SSC
// property names so the rest of the model can treat both uniformly.
func parseSMChart(value string) *sim.Chart {
	fields := strings.SplitN(value, ":", 6)
	chart := &sim.Chart{}
	keys := []string{"STEPSTYPE", "DESCRIPTION", "DIFFICULTY", "METER", "RADARVALUES", "NOTES"}
	for i, f := range fields {
		if i < len(keys)-1 {
			f = strings.TrimSpace(f)
		} else {
			f = stripComments(f)
		}
		chart.Set(keys[i], f)
	}
	return chart
}

func stripComments(value string) string {
	if !strings.Contains(value, "//") {
		return value
	}
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if j := strings.Index(line, "//"); j >= 0 {
			lines[i] = line[:j]
		}
	}
	return strings.Join(lines, "\n")
}

// Serialize writes the simfile back out as MSD text. Property order is
// preserved, so fields the transforms never touched come back exactly
// as they were parsed.
func (p *DefaultParser) Serialize(s *sim.Simfile) []byte {
	var b strings.Builder
	for _, prop := range s.Properties {
		writeProperty(&b, prop)
	}
	for _, chart := range s.Charts {
		if s.Format == sim.FormatSSC {
			b.WriteString("\n#NOTEDATA:;\n")
			for _, prop := range chart.Properties {
				writeProperty(&b, prop)
			}
		} else {
			writeSMChart(&b, chart)
		}
	}
	return []byte(b.String())
}

func writeProperty(b *strings.Builder, prop sim.Property) {
	b.WriteString("#")
	b.WriteString(prop.Key)
	b.WriteString(":")
	b.WriteString(prop.Value)
	b.WriteString(";\n")
}

func writeSMChart(b *strings.Builder, chart *sim.Chart) {
	fields := []string{"STEPSTYPE", "DESCRIPTION", "DIFFICULTY", "METER", "RADARVALUES", "NOTES"}
	b.WriteString("\n#NOTES:")
	for i, key := range fields {
		v, _ := chart.Get(key)
		if i < len(fields)-1 {
			b.WriteString("\n     ")
			b.WriteString(v)
			b.WriteString(":")
		} else {
			b.WriteString("\n")
			b.WriteString(v)
		}
	}
	b.WriteString(";\n")
}
