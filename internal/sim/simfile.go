package sim

// Property is one #KEY:VALUE; pair from an SSC file. Order matters for
// round-tripping, so simfiles and charts store their properties as a
// list rather than a map.
type Property struct {
	Key   string
	Value string
}

// PropertyHolder is either a simfile or one of its charts; fake regions
// can be written to both.
type PropertyHolder interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

const (
	FormatSSC = "ssc"
	FormatSM  = "sm"
)

type Simfile struct {
	Format     string
	Properties []Property
	Charts     []*Chart
}

type Chart struct {
	Properties []Property
}

func get(props []Property, key string) (string, bool) {
	for _, p := range props {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

func set(props []Property, key, value string) []Property {
	for i, p := range props {
		if p.Key == key {
			props[i].Value = value
			return props
		}
	}
	return append(props, Property{Key: key, Value: value})
}

func (s *Simfile) Get(key string) (string, bool) { return get(s.Properties, key) }
func (s *Simfile) Set(key, value string)         { s.Properties = set(s.Properties, key, value) }

func (c *Chart) Get(key string) (string, bool) { return get(c.Properties, key) }
func (c *Chart) Set(key, value string)         { c.Properties = set(c.Properties, key, value) }

func (c *Chart) Stepstype() string {
	v, _ := c.Get("STEPSTYPE")
	return v
}

func (c *Chart) Difficulty() string {
	v, _ := c.Get("DIFFICULTY")
	return v
}

func (c *Chart) Notes() string {
	v, _ := c.Get("NOTES")
	return v
}

// HasTiming reports whether the chart carries its own timing data,
// which is signalled by the presence of its own BPMS property.
func (c *Chart) HasTiming() bool {
	_, ok := c.Get("BPMS")
	return ok
}

// TimingProperties are the properties that, copied together from the
// simfile to a chart, give that chart independent (split) timing.
var TimingProperties = []string{
	"STOPS",
	"DELAYS",
	"BPMS",
	"OFFSET",
	"WARPS",
	"LABELS",
	"TIMESIGNATURES",
	"TICKCOUNTS",
	"COMBOS",
	"SPEEDS",
	"SCROLLS",
	"FAKES",
}

// BlankSSC returns a minimal valid SSC simfile, matching what the
// StepMania editor writes for an empty song.
func BlankSSC() *Simfile {
	return &Simfile{
		Format: FormatSSC,
		Properties: []Property{
			{"VERSION", "0.83"},
			{"TITLE", ""},
			{"OFFSET", "0.000000"},
			{"BPMS", "0.000=60.000"},
		},
	}
}

// BlankChart returns a minimal chart with no notes and no own timing.
func BlankChart() *Chart {
	return &Chart{
		Properties: []Property{
			{"STEPSTYPE", "dance-single"},
			{"DIFFICULTY", "Beginner"},
			{"METER", "1"},
			{"NOTES", ""},
		},
	}
}
